package middleware

import (
	"fmt"
	"io"
	"time"

	"horseadmin/api/ctxutil"
	"horseadmin/api/response"
	"horseadmin/pkg/errors"
	"horseadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingMiddleware writes one access log entry per request, at warn for
// 4xx and error for 5xx.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithRequestID(response.GetRequestID(c)).Check(levelFor(status), "HTTP Request")
		if entry == nil {
			return
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.RequestURI()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if user := ctxutil.Session(c).UserID(); user != "" {
			fields = append(fields, zap.String("user_id", user))
		}
		entry.Write(fields...)
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// RecoveryMiddleware turns a panic into a 500 envelope. gin's own stack
// dump is discarded; the stack goes to the zap entry instead.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered",
			zap.String("request_id", response.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("error", recovered),
			zap.Stack("stack"))
		response.HandleAppError(c, errors.Wrap(fmt.Errorf("panic: %v", recovered), errors.CodeInternal, "An unexpected error occurred"))
	})
}
