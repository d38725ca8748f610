package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a class of failure
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Handoff errors
	ErrAlreadyInstalled ErrorCode = "CONSUMER_ALREADY_INSTALLED"

	// Fragment errors
	ErrFragmentRead      ErrorCode = "FRAGMENT_READ"
	ErrFragmentParse     ErrorCode = "FRAGMENT_PARSE"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Implementor entry errors
	ErrEntryParse ErrorCode = "ENTRY_PARSE"

	// Output errors
	ErrRender ErrorCode = "RENDER"
)

// ImplxError is a structured error carrying a code and optional details
type ImplxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ImplxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ImplxError) Unwrap() error {
	return e.Wrapped
}

// Is reports a match when target is an ImplxError with the same code
func (e *ImplxError) Is(target error) bool {
	var targetErr *ImplxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ImplxError with the given code and message
func New(code ErrorCode, message string) *ImplxError {
	return &ImplxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ImplxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ImplxError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. Wrapping nil returns nil.
func Wrap(err error, code ErrorCode, message string) *ImplxError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a code and formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ImplxError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *ImplxError) WithDetail(key string, value interface{}) *ImplxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var implxErr *ImplxError
	if errors.As(err, &implxErr) {
		return implxErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ImplxError
func GetErrorCode(err error) ErrorCode {
	var implxErr *ImplxError
	if errors.As(err, &implxErr) {
		return implxErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ImplxError
func GetErrorDetails(err error) map[string]interface{} {
	var implxErr *ImplxError
	if errors.As(err, &implxErr) {
		return implxErr.Details
	}
	return nil
}
