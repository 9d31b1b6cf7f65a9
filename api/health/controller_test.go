package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horseadmin/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, checks map[string]Checker, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{App: config.AppConfig{Version: "1.2.3", Env: "test"}}
	cfg.Database.Type = "mysql"

	r := gin.New()
	NewController(cfg, checks).RegisterRoutes(r.Group(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHealthReportsChecks(t *testing.T) {
	w, body := serve(t, map[string]Checker{"mysql": ok}, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "mysql", body["store"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Nil(t, body["system"])
}

func TestHealthUnhealthyStore(t *testing.T) {
	w, body := serve(t, map[string]Checker{"mysql": down, "cache": ok}, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "connection refused", checks["mysql"].(map[string]any)["message"])
	assert.Equal(t, "healthy", checks["cache"].(map[string]any)["status"])
}

func TestReadiness(t *testing.T) {
	w, body := serve(t, nil, "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])

	w, body = serve(t, map[string]Checker{"mysql": down}, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "mysql not available", body["message"])
}

func TestLiveness(t *testing.T) {
	w, body := serve(t, map[string]Checker{"mysql": down}, "/health/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", body["status"])
}
