// Package errors 定义 API 层的错误码及其 HTTP 状态映射。
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"horseadmin/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// the store refused or could not be reached
	CodeFetch ErrorCode = "FETCH_ERROR"
	CodeWrite ErrorCode = "WRITE_ERROR"
)

var statusOf = map[ErrorCode]int{
	CodeBadRequest:     http.StatusBadRequest,
	CodeValidation:     http.StatusBadRequest,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeNotFound:       http.StatusNotFound,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeFetch:          http.StatusBadGateway,
	CodeWrite:          http.StatusBadGateway,
}

// classes is checked top to bottom; the first sentinel in the chain wins.
// A write refused because the record belongs to someone else carries both
// ErrWrite and ErrForbidden and reports FORBIDDEN. A zero-row write stays
// WRITE_ERROR even though its cause is ErrNotFound.
var classes = []struct {
	sentinel error
	code     ErrorCode
}{
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrValidation, CodeValidation},
	{shared.ErrWrite, CodeWrite},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrFetch, CodeFetch},
}

// AppError is what the JSON API reports for a failed request.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatusCode 返回对应的HTTP状态码
func (e *AppError) HTTPStatusCode() int {
	if status, ok := statusOf[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func TooManyRequests(message string) *AppError {
	return &AppError{Code: CodeTooManyRequest, Message: message}
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// FromDomainError 将领域错误映射为应用错误。Unclassified errors become
// INTERNAL_ERROR with a generic message.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, c := range classes {
		if !errors.Is(err, c.sentinel) {
			continue
		}
		out := &AppError{Code: c.code, Message: err.Error(), Err: err}
		var de *shared.DomainError
		if errors.As(err, &de) {
			out.Message, out.Field = de.Message, de.Field
		}
		return out
	}
	return Wrap(err, CodeInternal, "internal server error")
}
