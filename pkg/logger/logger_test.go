package logger

import (
	"os"
	"path/filepath"
	"testing"

	"horseadmin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	t.Cleanup(Replace(nil))

	assert.NotPanics(t, func() {
		Debug("dropped")
		Info("dropped")
		Warn("dropped")
		Error("dropped")
		With(zap.String("key", "value")).Info("dropped")
		WithRequestID("req-1").Info("dropped")
	})
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestDynamicLogLevel(t *testing.T) {
	t.Cleanup(Replace(nil))
	require.NoError(t, Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"))

	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	UpdateLevel("info")
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
}

func TestFileOutput(t *testing.T) {
	t.Cleanup(Replace(nil))
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	require.NoError(t, Init(&config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}, "production"))
	for i := 0; i < 10; i++ {
		Info("entry", zap.Int("i", i))
	}
	_ = Sync()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
