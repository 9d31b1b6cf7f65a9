package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"horseadmin/config"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Config struct {
	Enabled         bool
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	JitterEnabled   bool
	RetryOnDeadlock bool
	RetryPredicate  func(error) bool
}

var DefaultConfig = Config{
	Enabled:         true,
	MaxAttempts:     3,
	InitialDelay:    100 * time.Millisecond,
	MaxDelay:        2 * time.Second,
	BackoffFactor:   2.0,
	JitterEnabled:   true,
	RetryOnDeadlock: true,
}

func FromAppConfig(cfg config.RetryConfig) Config {
	return Config{
		Enabled:         cfg.Enabled,
		MaxAttempts:     cfg.MaxAttempts,
		InitialDelay:    cfg.InitialDelay,
		MaxDelay:        cfg.MaxDelay,
		BackoffFactor:   cfg.BackoffFactor,
		JitterEnabled:   cfg.JitterEnabled,
		RetryOnDeadlock: cfg.RetryOnDeadlock,
	}
}

func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// IsRetryableError reports transient store failures. Authorization and
// context errors are final.
func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrForbidden) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1213, 1205: // deadlock, lock wait timeout
			return config.RetryOnDeadlock
		}
	}
	if errors.Is(err, mysqlDriver.ErrInvalidConn) || errors.Is(err, gorm.ErrInvalidTransaction) {
		return true
	}
	// DynamoDB API errors carry an error code
	var apiErr interface{ ErrorCode() string }
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ProvisionedThroughputExceededException", "ThrottlingException",
			"RequestLimitExceeded", "InternalServerError":
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "deadlock") || strings.Contains(errStr, "lock wait timeout") {
		return config.RetryOnDeadlock
	}
	return strings.Contains(errStr, "connection") &&
		(strings.Contains(errStr, "lost") || strings.Contains(errStr, "reset") || strings.Contains(errStr, "refused"))
}

func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		logger.Warn("retrying store read",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return lastErr
			}
		}
	}
	return lastErr
}

// Gateway retries list and single-record reads of the wrapped gateway.
// Writes pass straight through: a mutation is never repeated.
type Gateway[R resource.Entity] struct {
	resource.Gateway[R]
	schema *resource.Schema[R]
	config Config
}

// Wrap decorates gw with read retries.
func Wrap[R resource.Entity](gw resource.Gateway[R], schema *resource.Schema[R], config Config) *Gateway[R] {
	return &Gateway[R]{Gateway: gw, schema: schema, config: config}
}

// fetchFailure keeps read errors classified: a context that ends before
// or between attempts still surfaces as a list failure.
func (g *Gateway[R]) fetchFailure(err error) error {
	if err == nil || resource.IsFetchError(err) {
		return err
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return resource.NewFetchError(g.schema.Collection, err)
}

func (g *Gateway[R]) List(ctx context.Context, sess shared.Session, opts resource.ListOptions) ([]R, error) {
	var rows []R
	err := ExecuteWithRetry(ctx, g.config, func(ctx context.Context) error {
		var err error
		rows, err = g.Gateway.List(ctx, sess, opts)
		return err
	})
	return rows, g.fetchFailure(err)
}

// Find retries single-record reads. Gateways without one are scanned
// through List.
func (g *Gateway[R]) Find(ctx context.Context, sess shared.Session, id string) (R, error) {
	var rec R
	finder, ok := g.Gateway.(resource.Finder[R])
	if !ok {
		rows, err := g.List(ctx, sess, resource.ListOptions{})
		if err != nil {
			return rec, err
		}
		for _, r := range rows {
			if r.GetID() == id {
				return r, nil
			}
		}
		return rec, shared.NewNotFoundError(g.schema.Entity)
	}
	err := ExecuteWithRetry(ctx, g.config, func(ctx context.Context) error {
		var err error
		rec, err = finder.Find(ctx, sess, id)
		return err
	})
	return rec, g.fetchFailure(err)
}
