package logger

import (
	"context"
	"testing"
	"time"

	"horseadmin/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(Replace(zap.New(core)))
	return logs
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func TestGormAdapter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level gormlogger.LogLevel
		want  []string
	}{
		{"warn", gormlogger.Warn, []string{"warn message", "error message"}},
		{"info", gormlogger.Info, []string{"info message", "warn message", "error message", "SQL query executed"}},
		{"silent", gormlogger.Silent, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)
			adapter := NewGormAdapter(tt.level, DefaultGormConfig())
			ctx := context.Background()

			adapter.Info(ctx, "info message")
			adapter.Warn(ctx, "warn message")
			adapter.Error(ctx, "error message")
			adapter.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT * FROM horses", 3 }, nil)

			assert.Equal(t, tt.want, messages(logs))
		})
	}
}

func TestGormAdapter_SlowQueryCarriesRequestID(t *testing.T) {
	logs := observe(t)
	adapter := NewGormAdapter(gormlogger.Warn, GormConfig{SlowThreshold: time.Millisecond, IgnoreRecordNotFoundError: true})
	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")

	adapter.Trace(ctx, time.Now().Add(-10*time.Millisecond), func() (string, int64) {
		return "SELECT * FROM orders", 1
	}, nil)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = 'x'", 0
	}, gormlogger.ErrRecordNotFound)

	entries := logs.FilterMessage("Slow SQL query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.Zero(t, logs.FilterMessage("Database operation failed").Len())
}

func TestGormAdapter_LogModeReturnsCopy(t *testing.T) {
	observe(t)
	a := NewGormAdapter(gormlogger.Warn, DefaultGormConfig())
	b := a.LogMode(gormlogger.Info).(*GormAdapter)

	assert.Equal(t, gormlogger.Warn, a.level)
	assert.Equal(t, gormlogger.Info, b.level)
	assert.Equal(t, gormlogger.Info, ParseGormLevel("info"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel("bogus"))
}
