package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/engine"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitSourceError indicates a relational source error
	ExitSourceError = 11
	// ExitGraphError indicates a graph store error
	ExitGraphError = 12
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// HandleError handles an error and returns the appropriate exit code.
// It also prints the error message to the command's error output.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for context cancellation
	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	// Check for context deadline exceeded
	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	// Check for CLIError
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil {
			verboseFlag := cmd.Flag("verbose")
			if verboseFlag != nil && verboseFlag.Changed {
				cmd.PrintErrln("Cause:", cliErr.Cause)
			}
		}
		return cliErr.Code
	}

	// Check for SyncError
	var syncErr *types.SyncError
	if errors.As(err, &syncErr) {
		cmd.PrintErrln("Error:", syncErr.Error())
		return mapSyncErrorToExitCode(err)
	}

	// Generic error
	cmd.PrintErrln("Error:", err)
	return ExitError
}

// mapSyncErrorToExitCode maps sync error codes to CLI exit codes. The error
// chain is walked so a RUN_ABORTED wrapper maps by the failure underneath it.
func mapSyncErrorToExitCode(err error) int {
	switch {
	case hasCode(err, types.CONFIG_LOAD_FAILED),
		hasCode(err, types.CONFIG_PARSE_FAILED),
		hasCode(err, types.CONFIG_VALIDATION_FAILED),
		hasCode(err, types.CONFIG_NOT_FOUND),
		hasCode(err, types.INIT_DIRS_FAILED),
		hasCode(err, types.INIT_CONFIG_FAILED):
		return ExitConfigError
	case hasCode(err, types.SOURCE_OPEN_FAILED),
		hasCode(err, types.SOURCE_CONNECTION_FAILED),
		hasCode(err, types.SOURCE_QUERY_FAILED),
		hasCode(err, types.SOURCE_SCAN_FAILED):
		return ExitSourceError
	case hasCode(err, graph.ErrCodeGraphConnectionFailed),
		hasCode(err, graph.ErrCodeGraphConnectionClosed),
		hasCode(err, graph.ErrCodeGraphInvalidConfig),
		hasCode(err, graph.ErrCodeGraphQueryFailed),
		hasCode(err, graph.ErrCodeGraphWriteFailed),
		hasCode(err, graph.ErrCodeGraphInvalidQuery),
		hasCode(err, graph.ErrCodeGraphConstraintViolation),
		hasCode(err, graph.ErrCodeGraphSchemaFailed),
		hasCode(err, engine.ErrCodeSchemaViolation),
		hasCode(err, engine.ErrCodeRetriesExhausted),
		hasCode(err, engine.ErrCodeResolveFailed):
		return ExitGraphError
	default:
		return ExitError
	}
}

// hasCode reports whether any error in the chain carries the given code.
func hasCode(err error, code types.ErrorCode) bool {
	return errors.Is(err, types.NewError(code, ""))
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// This is used for panic recovery to determine if stack traces should be shown.
func IsVerbose() bool {
	// Check environment variable
	if os.Getenv("GRAPHSYNC_VERBOSE") != "" {
		return true
	}

	// Check common verbose flag patterns
	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
