package middleware

import (
	"net/http"
	"strings"

	"horseadmin/api/ctxutil"
	"horseadmin/api/response"
	"horseadmin/config"
	"horseadmin/domain/shared"
	"horseadmin/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	Verify(raw string) (*shared.Principal, error)
}

// AuthMiddleware requires a valid bearer token and stores its principal
// for ctxutil.Session.
func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := v.Verify(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			response.HandleAppError(c, errors.Wrap(err, errors.CodeUnauthorized, "invalid or missing access token"))
			return
		}
		ctxutil.SetPrincipal(c, p)
		c.Next()
	}
}

// bearerToken is "" unless header uses the Bearer scheme.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CORS wraps the whole server, dashboard included.
func CORS(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   cfg.AllowMethods,
		AllowedHeaders:   cfg.AllowHeaders,
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}).Handler
}
