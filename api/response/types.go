// Package response writes the JSON envelope every /api/v1 endpoint returns.
package response

import "github.com/gin-gonic/gin"

// RequestIDKey 是 gin context 中保存请求 ID 的键。
const RequestIDKey = "request_id"

// Response 是统一响应结构。Code repeats the HTTP status; Error carries the
// application error code on failure.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Field     string `json:"field,omitempty"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// GetRequestID returns the id RequestIDMiddleware stored, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
