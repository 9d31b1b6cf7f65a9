// Package ctxutil derives the per-request session handed to services.
package ctxutil

import (
	"context"

	"horseadmin/api/response"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// PrincipalKey 是 gin context 中保存已认证用户的键。
const PrincipalKey = "principal"

// Context returns the request context carrying the request id.
func Context(c *gin.Context) context.Context {
	return persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}

// Session builds the explicit session for gateway calls.
func Session(c *gin.Context) shared.Session {
	sess := shared.Session{RequestID: response.GetRequestID(c)}
	if p, ok := c.Get(PrincipalKey); ok {
		sess.Principal, _ = p.(*shared.Principal)
	}
	return sess
}

// SetPrincipal stores the authenticated principal on c.
func SetPrincipal(c *gin.Context, p *shared.Principal) {
	c.Set(PrincipalKey, p)
}
