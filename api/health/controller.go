// Package health serves the public liveness and readiness probes.
package health

import (
	"context"
	"maps"
	"net/http"
	"runtime"
	"slices"
	"sync"
	"time"

	"horseadmin/config"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Checker probes one dependency; nil means healthy.
type Checker func(ctx context.Context) error

// Controller Health check controller
type Controller struct {
	config    *config.Config
	checks    map[string]Checker
	timeout   time.Duration
	startTime time.Time
}

// NewController checks is keyed by dependency name ("mysql"). The memory
// and DynamoDB stores register none.
func NewController(cfg *config.Config, checks map[string]Checker) *Controller {
	return &Controller{
		config:    cfg,
		checks:    checks,
		timeout:   2 * time.Second,
		startTime: time.Now(),
	}
}

// RegisterRoutes Register health check routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

// HealthResponse Health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Store     string           `json:"store"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check is the outcome of one Checker.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo is reported in development only.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

// Health reports every check plus build and store details.
func (c *Controller) Health(ctx *gin.Context) {
	checks, healthy := c.probe(ctx.Request.Context())

	resp := HealthResponse{
		Status:    statusHealthy,
		Version:   c.config.App.Version,
		Store:     c.config.Database.Type,
		Uptime:    time.Since(c.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if c.config.IsDevelopment() {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		resp.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     mem.Alloc,
		}
	}

	status := http.StatusOK
	if !healthy {
		resp.Status = statusUnhealthy
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}

// Liveness never touches the store.
func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness fails while any check fails, naming the first in name order.
func (c *Controller) Readiness(ctx *gin.Context) {
	checks, healthy := c.probe(ctx.Request.Context())
	if healthy {
		ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		if checks[name].Status != statusHealthy {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"message": name + " not available",
			})
			return
		}
	}
}

// probe runs every check concurrently, each under the controller timeout.
func (c *Controller) probe(ctx context.Context) (map[string]Check, bool) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		healthy = true
		results = make(map[string]Check, len(c.checks))
	)
	for name, check := range c.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := c.run(ctx, check)
			mu.Lock()
			defer mu.Unlock()
			results[name] = res
			healthy = healthy && res.Status == statusHealthy
		}()
	}
	wg.Wait()
	return results, healthy
}

func (c *Controller) run(ctx context.Context, check Checker) Check {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := check(ctx)
	res := Check{Status: statusHealthy, Latency: time.Since(start).String()}
	if err != nil {
		res.Status = statusUnhealthy
		res.Message = err.Error()
	}
	return res
}
