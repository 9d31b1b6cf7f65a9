package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horseadmin/config"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/auth"
	"horseadmin/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildApp(t *testing.T) (*App, *config.Config) {
	t.Helper()
	t.Setenv("HORSEADMIN_DATABASE_TYPE", "memory")
	t.Setenv("HORSEADMIN_APP_ENV", "test")
	cfg, err := config.Load("")
	require.NoError(t, err)

	app, err := NewBuilder(cfg).Build()
	require.NoError(t, err)
	return app, cfg
}

func TestBuildServesSeededCollections(t *testing.T) {
	app, cfg := buildApp(t)
	token, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer).
		Mint(shared.Principal{ID: memory.DemoUserID, Name: "Demo Admin"}, time.Hour)
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/profiles", "/api/v1/horses", "/api/v1/events", "/api/v1/products",
		"/api/v1/orders", "/api/v1/posts", "/api/v1/sellers", "/api/v1/notifications",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		var body struct {
			Data struct {
				Total int `json:"total"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Positive(t, body.Data.Total, path)
	}
}

func TestBuildMountsDashboardAndHealth(t *testing.T) {
	app, _ := buildApp(t)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/horses", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/session", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memory"`)
}

func TestBuildRejectsUnknownStore(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Database.Type = "postgres"

	_, err = NewBuilder(cfg).Build()

	assert.ErrorContains(t, err, "unsupported database type")
}
