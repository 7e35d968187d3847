package graph

import (
	"errors"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Graph store error codes
const (
	// Connection errors
	ErrCodeGraphConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeGraphConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	// Configuration errors
	ErrCodeGraphInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	// Statement errors
	ErrCodeGraphQueryFailed  types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeGraphWriteFailed  types.ErrorCode = "GRAPH_WRITE_FAILED"
	ErrCodeGraphInvalidQuery types.ErrorCode = "GRAPH_INVALID_QUERY"

	// Constraint errors
	ErrCodeGraphConstraintViolation types.ErrorCode = "GRAPH_CONSTRAINT_VIOLATION"
	ErrCodeGraphSchemaFailed        types.ErrorCode = "GRAPH_SCHEMA_FAILED"
)

// IsConstraintViolation reports whether err was classified as a uniqueness
// constraint violation by the store client. The writer uses this to decide
// between failing a whole batch and falling back to per-record application.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, types.NewError(ErrCodeGraphConstraintViolation, ""))
}
