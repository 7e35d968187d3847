package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for sync engine errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// Relational source error codes
const (
	SOURCE_OPEN_FAILED       ErrorCode = "SOURCE_OPEN_FAILED"
	SOURCE_CONNECTION_FAILED ErrorCode = "SOURCE_CONNECTION_FAILED"
	SOURCE_QUERY_FAILED      ErrorCode = "SOURCE_QUERY_FAILED"
	SOURCE_SCAN_FAILED       ErrorCode = "SOURCE_SCAN_FAILED"
)

// Initialization error codes
const (
	INIT_DIRS_FAILED   ErrorCode = "INIT_DIRS_FAILED"
	INIT_CONFIG_FAILED ErrorCode = "INIT_CONFIG_FAILED"
)

// SyncError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type SyncError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a SyncError with the same Code.
func (e *SyncError) Is(target error) bool {
	var syncErr *SyncError
	if errors.As(target, &syncErr) {
		return e.Code == syncErr.Code
	}
	return false
}

// NewError creates a new non-retryable SyncError with the given code and message.
func NewError(code ErrorCode, message string) *SyncError {
	return &SyncError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable SyncError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *SyncError {
	return &SyncError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable SyncError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *SyncError {
	return &SyncError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// WrapRetryableError creates a retryable SyncError that wraps an existing error.
// Use this when a transient failure needs its cause preserved for inspection.
func WrapRetryableError(code ErrorCode, message string, cause error) *SyncError {
	return &SyncError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// IsRetryable reports whether err is a SyncError marked as retryable.
// Non-SyncError values are never considered retryable here; callers that
// need driver-specific transient detection layer it on top of this check.
func IsRetryable(err error) bool {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Retryable
	}
	return false
}
