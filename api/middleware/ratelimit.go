package middleware

import (
	"sync"

	"horseadmin/api/response"
	"horseadmin/config"
	"horseadmin/pkg/errors"
	"horseadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters sync.Map // ip -> *rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter Create rate limiter
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{rate: rate.Limit(r), burst: burst}
}

// Allow spends one token of ip's bucket.
func (rl *RateLimiter) Allow(ip string) bool {
	v, ok := rl.limiters.Load(ip)
	if !ok {
		v, _ = rl.limiters.LoadOrStore(ip, rate.NewLimiter(rl.rate, rl.burst))
	}
	return v.(*rate.Limiter).Allow()
}

// RateLimitMiddleware answers 429 once a client IP exhausts its bucket.
func RateLimitMiddleware(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(cfg.Rate, cfg.Burst)

	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		logger.Warn("Rate limit exceeded",
			zap.String("request_id", response.GetRequestID(c)),
			zap.String("client_ip", c.ClientIP()))
		c.Header("Retry-After", "1")
		response.HandleAppError(c, errors.TooManyRequests("Too many requests, please try again later"))
	}
}
