package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Type)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, 3, cfg.Database.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Database.Retry.InitialDelay)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Len(t, cfg.Auth.CSRFKey, 32)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: staging
database:
  type: mysql
  mysql:
    host: db.internal
`), 0o600))
	t.Setenv("HORSEADMIN_DATABASE_MYSQL_PORT", "3307")
	t.Chdir(dir)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.MySQL.Host)
	assert.Equal(t, "3307", cfg.Database.MySQL.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Env: "production"},
			Database: DatabaseConfig{Type: "dynamodb"},
			Auth: AuthConfig{
				JWTSecret:     "prod-secret",
				SessionSecret: "prod-session",
				CSRFKey:       "0123456789abcdef0123456789abcdef",
			},
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.Database.Type = "postgres"
	assert.ErrorContains(t, c.Validate(), "unsupported database type")

	c = base()
	c.Auth.CSRFKey = "short"
	assert.ErrorContains(t, c.Validate(), "csrf_key")

	c = base()
	c.Auth.JWTSecret = defaultJWTSecret
	assert.ErrorContains(t, c.Validate(), "jwt_secret")

	c = base()
	c.Auth.SessionSecret = defaultSessionSecret
	assert.ErrorContains(t, c.Validate(), "session_secret")
}
