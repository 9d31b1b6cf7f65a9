/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
3. 领域错误不包含 HTTP 状态码等传输层概念

A DomainError carries two chains: the sentinel describing the failure class
(ErrFetch, ErrWrite, ErrValidation) and the underlying cause (a driver error,
ErrNotFound for a zero-row update, ...). errors.Is matches either.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// 哨兵错误 (Sentinel Errors)
// ============================================================================

var (
	// ErrFetch a list could not be retrieved from the store
	ErrFetch = errors.New("fetch failed")

	// ErrWrite a create, update or delete was rejected by the store
	ErrWrite = errors.New("write failed")

	// ErrValidation form input could not be turned into a payload
	ErrValidation = errors.New("validation failed")

	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrForbidden the record exists but belongs to another principal
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized no acting principal
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoRowsAffected an id-scoped mutation matched nothing
	ErrNoRowsAffected = errors.New("no rows affected")
)

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err failure class, one of the sentinels above
	Err error

	// Entity 发生错误的实体名称（如 "horse", "order"）
	Entity string

	// Op create, update, delete, list
	Op string

	// Field set for validation errors
	Field string

	// Message 人类可读的错误描述
	Message string

	// Cause underlying error, may be nil
	Cause error

	stack []uintptr
}

// Error 实现 error 接口
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Stack 按需格式化堆栈（只在打印日志时调用）
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack 捕获当前调用栈（导出供子领域包使用）
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片
// 过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewError builds a DomainError, capturing the caller's stack.
// skip counts frames above NewError itself; pass 0 from a direct caller.
func NewError(sentinel error, entity, op, message string, cause error, skip int) *DomainError {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Op:      op,
		Message: message,
		Cause:   cause,
		stack:   CaptureStack(3 + skip),
	}
}

// NewNotFoundError 创建"未找到"领域错误
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError 创建"禁止访问"领域错误
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewUnauthorizedError no principal was supplied for an operation that needs one.
func NewUnauthorizedError(entity string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  entity,
		Message: "no signed-in user",
		stack:   CaptureStack(3),
	}
}

// Stacker 可提供堆栈的错误接口，用于 API 层统一提取堆栈
type Stacker interface {
	Stack() []string
}
