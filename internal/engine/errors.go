package engine

import "github.com/TommyNoLimits/GraphRAG-sub001/internal/types"

// Engine error codes
const (
	// ErrCodeSchemaViolation reports a constraint that cannot be created
	// because existing graph data violates it.
	ErrCodeSchemaViolation types.ErrorCode = "SCHEMA_VIOLATION"

	// ErrCodeMappingFailed reports a source row missing its key or tenant
	// scope. Non-retryable; the row is skipped and the batch continues.
	ErrCodeMappingFailed types.ErrorCode = "MAPPING_FAILED"

	// ErrCodeWriteConflict reports a record rejected by a uniqueness
	// constraint during per-record fallback.
	ErrCodeWriteConflict types.ErrorCode = "WRITE_CONFLICT"

	// ErrCodeRetriesExhausted reports a batch whose transient write failures
	// outlived the bounded retry attempts. Fatal for the run.
	ErrCodeRetriesExhausted types.ErrorCode = "RETRIES_EXHAUSTED"

	// ErrCodeResolveFailed reports a duplicate group that could not be
	// resolved.
	ErrCodeResolveFailed types.ErrorCode = "RESOLVE_FAILED"

	// ErrCodeRunAborted reports a run stopped by cancellation or a fatal
	// phase error.
	ErrCodeRunAborted types.ErrorCode = "RUN_ABORTED"
)
