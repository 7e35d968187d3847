package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCode_Constants(t *testing.T) {
	tests := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		// Configuration errors
		{"CONFIG_LOAD_FAILED", CONFIG_LOAD_FAILED, "CONFIG_LOAD_FAILED"},
		{"CONFIG_PARSE_FAILED", CONFIG_PARSE_FAILED, "CONFIG_PARSE_FAILED"},
		{"CONFIG_VALIDATION_FAILED", CONFIG_VALIDATION_FAILED, "CONFIG_VALIDATION_FAILED"},
		{"CONFIG_NOT_FOUND", CONFIG_NOT_FOUND, "CONFIG_NOT_FOUND"},

		// Source errors
		{"SOURCE_OPEN_FAILED", SOURCE_OPEN_FAILED, "SOURCE_OPEN_FAILED"},
		{"SOURCE_CONNECTION_FAILED", SOURCE_CONNECTION_FAILED, "SOURCE_CONNECTION_FAILED"},
		{"SOURCE_QUERY_FAILED", SOURCE_QUERY_FAILED, "SOURCE_QUERY_FAILED"},
		{"SOURCE_SCAN_FAILED", SOURCE_SCAN_FAILED, "SOURCE_SCAN_FAILED"},

		// Initialization errors
		{"INIT_DIRS_FAILED", INIT_DIRS_FAILED, "INIT_DIRS_FAILED"},
		{"INIT_CONFIG_FAILED", INIT_CONFIG_FAILED, "INIT_CONFIG_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.code) != tt.expected {
				t.Errorf("ErrorCode = %v, want %v", tt.code, tt.expected)
			}
		})
	}
}

func TestSyncError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SyncError
		contains []string
	}{
		{
			name: "simple error without cause",
			err:  NewError(CONFIG_LOAD_FAILED, "failed to load configuration"),
			contains: []string{
				"[CONFIG_LOAD_FAILED]",
				"failed to load configuration",
			},
		},
		{
			name: "error with cause",
			err:  WrapError(SOURCE_QUERY_FAILED, "query execution failed", errors.New("connection timeout")),
			contains: []string{
				"[SOURCE_QUERY_FAILED]",
				"query execution failed",
				"connection timeout",
			},
		},
		{
			name: "retryable error",
			err:  NewRetryableError(SOURCE_CONNECTION_FAILED, "connection refused"),
			contains: []string{
				"[SOURCE_CONNECTION_FAILED]",
				"connection refused",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, substring := range tt.contains {
				if !strings.Contains(errMsg, substring) {
					t.Errorf("Error() = %v, want to contain %v", errMsg, substring)
				}
			}
		})
	}
}

func TestSyncError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(SOURCE_QUERY_FAILED, "wrapped", cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	plain := NewError(CONFIG_NOT_FOUND, "no cause")
	if unwrapped := errors.Unwrap(plain); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestSyncError_Is(t *testing.T) {
	err := NewError(SOURCE_QUERY_FAILED, "first")
	same := NewError(SOURCE_QUERY_FAILED, "second, different message")
	other := NewError(SOURCE_OPEN_FAILED, "different code")

	if !errors.Is(err, same) {
		t.Error("errors with the same code should match via errors.Is")
	}
	if errors.Is(err, other) {
		t.Error("errors with different codes should not match")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("plain errors should never match a SyncError")
	}
}

func TestSyncError_IsThroughWrapping(t *testing.T) {
	inner := NewError(SOURCE_CONNECTION_FAILED, "inner")
	outer := fmt.Errorf("outer context: %w", inner)

	if !errors.Is(outer, NewError(SOURCE_CONNECTION_FAILED, "")) {
		t.Error("errors.Is should match the code through fmt.Errorf wrapping")
	}
}

func TestSyncError_Retryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable constructor", NewRetryableError(SOURCE_CONNECTION_FAILED, "retry me"), true},
		{"retryable wrapper", WrapRetryableError(SOURCE_CONNECTION_FAILED, "retry me", errors.New("timeout")), true},
		{"non-retryable constructor", NewError(CONFIG_VALIDATION_FAILED, "bad config"), false},
		{"non-retryable wrapper", WrapError(SOURCE_QUERY_FAILED, "bad sql", errors.New("syntax")), false},
		{"plain error", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSyncError_RetryableThroughWrapping(t *testing.T) {
	inner := NewRetryableError(SOURCE_CONNECTION_FAILED, "transient")
	outer := fmt.Errorf("batch 3: %w", inner)

	if !IsRetryable(outer) {
		t.Error("IsRetryable should see through fmt.Errorf wrapping")
	}
}
