package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"horseadmin/api"
	"horseadmin/config"
	"horseadmin/pkg/logger"

	"go.uber.org/zap"
)

// App 应用程序结构体
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	store  *Store
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("dashboard", "/admin/"),
			zap.String("health", "/api/v1/health"))
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !isServerClosed(err) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("Failed to close store", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}

// Handler 获取 HTTP 处理器（用于测试）
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
