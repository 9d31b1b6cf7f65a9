// Package middleware holds the gin middleware chain of the JSON API and the
// CORS wrapper shared with the dashboard.
package middleware

import (
	"horseadmin/api/response"
	"horseadmin/infrastructure/persistence"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader Request ID header
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses the caller's X-Request-ID or mints one, and
// puts it on both the gin context and the request context.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		// SQL logs pick the id up from the request context
		c.Request = c.Request.WithContext(persistence.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
