package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandleSuccess(c *gin.Context, data any, message string) {
	succeed(c, http.StatusOK, data, message)
}

func HandleCreated(c *gin.Context, data any, message string) {
	succeed(c, http.StatusCreated, data, message)
}

func succeed(c *gin.Context, status int, data any, message string) {
	c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Code:      status,
		Message:   message,
		RequestID: GetRequestID(c),
	})
}
