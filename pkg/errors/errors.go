package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Preset errors
	ErrPresetNotFound      ErrorCode = "PRESET_NOT_FOUND"
	ErrNoQuicktimeTemplate ErrorCode = "NO_QUICKTIME_TEMPLATE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateInvalid  ErrorCode = "TEMPLATE_INVALID"
	ErrTemplateFields   ErrorCode = "TEMPLATE_FIELDS"
	ErrTemplateApply    ErrorCode = "TEMPLATE_APPLY"
	ErrTemplateKey      ErrorCode = "TEMPLATE_KEY"

	// Hook errors
	ErrHookExecute ErrorCode = "HOOK_EXECUTE"

	// FileSystem errors
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// FlamesetError represents a structured error with code and details
type FlamesetError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FlamesetError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FlamesetError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FlamesetError) Is(target error) bool {
	var targetErr *FlamesetError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FlamesetError with the given code and message
func New(code ErrorCode, message string) *FlamesetError {
	return &FlamesetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FlamesetError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FlamesetError {
	return &FlamesetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FlamesetError
func Wrap(err error, code ErrorCode, message string) *FlamesetError {
	if err == nil {
		return nil
	}
	return &FlamesetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FlamesetError {
	if err == nil {
		return nil
	}
	return &FlamesetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FlamesetError) WithDetail(key string, value interface{}) *FlamesetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fsErr *FlamesetError
	if errors.As(err, &fsErr) {
		return fsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FlamesetError
func GetErrorCode(err error) ErrorCode {
	var fsErr *FlamesetError
	if errors.As(err, &fsErr) {
		return fsErr.Code
	}
	return ErrUnknown
}
