package response

import (
	stdErrors "errors"

	"horseadmin/domain/shared"
	"horseadmin/pkg/errors"
	"horseadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleError reports a malformed request, e.g. a body that failed to bind.
func HandleError(c *gin.Context, err error, message string) {
	HandleAppError(c, errors.Wrap(err, errors.CodeBadRequest, message))
}

// HandleAppError 按应用错误码自动映射 HTTP 状态码，并中止后续处理。
func HandleAppError(c *gin.Context, err error) {
	appErr := errors.FromDomainError(err)
	status := appErr.HTTPStatusCode()
	logFailure(c, appErr, status, err)

	message := appErr.Message
	if appErr.Code == errors.CodeInternal {
		// 内部错误细节只写日志
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, &Response{
		Error:     string(appErr.Code),
		Field:     appErr.Field,
		Code:      status,
		Message:   message,
		RequestID: GetRequestID(c),
	})
}

// logFailure logs store and internal failures at error level with their
// stack; client mistakes at warn.
func logFailure(c *gin.Context, appErr *errors.AppError, status int, err error) {
	fields := []zap.Field{
		zap.String("request_id", GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", status),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if status < 500 {
		logger.Warn(appErr.Message, fields...)
		return
	}

	stack := shared.FormatStack(shared.CaptureStack(3))
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) && len(stacker.Stack()) > 0 {
		stack = stacker.Stack()
	}
	logger.Error(appErr.Message, append(fields, zap.Strings("stack", stack))...)
}
