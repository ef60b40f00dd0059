package service

import (
	"errors"
	"fmt"
)

// 业务错误哨兵，handler 层用 errors.Is 映射到 HTTP 状态码。
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInternal           = errors.New("internal error")
)

// NotFoundError 带资源信息的未找到错误
type NotFoundError struct {
	Resource   string
	ResourceID uint
}

func (e *NotFoundError) Error() string {
	if e.ResourceID > 0 {
		return fmt.Sprintf("%s %d not found", e.Resource, e.ResourceID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is 支持 errors.Is(err, ErrNotFound)
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError 创建未找到错误
func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ResourceID: id}
}

// DuplicateEntryError 唯一约束冲突错误
type DuplicateEntryError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// Is 支持 errors.Is(err, ErrDuplicateEntry)
func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

// NewDuplicateEntryError 创建唯一约束冲突错误
func NewDuplicateEntryError(resource, field, value string) *DuplicateEntryError {
	return &DuplicateEntryError{Resource: resource, Field: field, Value: value}
}

// ValidationError 入参校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is 支持 errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError 创建校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InternalError 包装底层错误，不向前端泄漏细节
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("internal error: %v", e.cause)
	}
	return "internal error"
}

// Is 支持 errors.Is(err, ErrInternal)
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// Unwrap 暴露底层错误供日志记录
func (e *InternalError) Unwrap() error {
	return e.cause
}

// NewInternalError 包装底层错误
func NewInternalError(cause error) *InternalError {
	return &InternalError{cause: cause}
}
