package api

import (
	"net/http"

	"horseadmin/api/health"
	"horseadmin/api/middleware"
	"horseadmin/config"

	"github.com/gin-gonic/gin"
)

// Registrar is a controller that adds its routes to a group.
type Registrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Router Route configuration
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	verifier         middleware.TokenVerifier
	healthController *health.Controller
	controllers      []Registrar
}

// NewRouter Create route configuration. controllers are mounted under
// /api/v1 behind bearer authentication; health stays public.
func NewRouter(
	cfg *config.Config,
	verifier middleware.TokenVerifier,
	healthController *health.Controller,
	controllers ...Registrar,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// order is important
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 4. Rate limiting

	return &Router{
		engine:           engine,
		config:           cfg,
		verifier:         verifier,
		healthController: healthController,
		controllers:      controllers,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)

		secured := apiGroup.Group("", middleware.AuthMiddleware(r.verifier))
		for _, c := range r.controllers {
			c.RegisterRoutes(secured)
		}
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":      r.config.App.Name,
			"version":   r.config.App.Version,
			"env":       r.config.App.Env,
			"dashboard": "/admin/",
			"health":    "/api/v1/health",
		})
	})
}

// Mount serves h for every path under prefix, e.g. the HTML dashboard.
func (r *Router) Mount(prefix string, h http.Handler) {
	r.engine.Any(prefix+"/*path", gin.WrapH(h))
}

// Handler is the engine wrapped in CORS.
func (r *Router) Handler() http.Handler {
	return middleware.CORS(&r.config.CORS)(r.engine)
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
