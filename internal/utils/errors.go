// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes failures across the pipeline so callers can react
// without string matching.
type ErrorCode string

const (
	// Provider and resolution errors. These are recovered locally at the
	// resolver boundary and never surface as hard failures.
	ErrCodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
	ErrCodeUnsupportedURL  ErrorCode = "UNSUPPORTED_URL"

	// Input errors.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrCodeInputRead     ErrorCode = "INPUT_READ"

	// Result and output errors.
	ErrCodeNoData       ErrorCode = "NO_DATA"
	ErrCodeOutputFailed ErrorCode = "OUTPUT_FAILED"

	// Anything unexpected during a run.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StructuredError carries an error code alongside the message and the
// wrapped cause.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// NewStructuredError creates an error with the given code and message.
func NewStructuredError(code ErrorCode, format string, args ...interface{}) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps a cause with a code and message.
func WrapError(code ErrorCode, cause error, format string, args ...interface{}) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// CodeOf extracts the error code from an error chain, or ErrCodeInternal
// when no structured error is present.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
