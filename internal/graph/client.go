package graph

import (
	"context"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// GraphClient provides an interface for graph store operations. The sync
// engine components (schema manager, writer, relationship builder, analyzer,
// resolver) all receive this interface rather than a live driver, so no
// component reaches into another's connection state.
// Implementations must be thread-safe for concurrent access.
type GraphClient interface {
	// Connect establishes a connection to the graph store.
	// Returns an error if connection fails after bounded retries.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the store connection.
	Close(ctx context.Context) error

	// Health returns the current health status of the store connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a parameterized Cypher statement in a read transaction.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Write executes a parameterized Cypher statement in a write transaction.
	// Constraint violations and transient failures are classified into typed
	// errors so callers can decide between per-record fallback and retry.
	Write(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult represents the result of a Cypher statement execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the statement execution.
	Summary QuerySummary
}

// QuerySummary surfaces the store's execution counters. The writer and
// relationship builder rely on these to report created counts without a
// second round trip.
type QuerySummary struct {
	// ExecutionTime is the duration of statement execution.
	ExecutionTime time.Duration

	// NodesCreated is the number of nodes created by the statement.
	NodesCreated int

	// NodesDeleted is the number of nodes deleted by the statement.
	NodesDeleted int

	// RelationshipsCreated is the number of relationships created.
	RelationshipsCreated int

	// RelationshipsDeleted is the number of relationships deleted.
	RelationshipsDeleted int

	// PropertiesSet is the number of properties set.
	PropertiesSet int

	// ConstraintsAdded is the number of schema constraints added.
	ConstraintsAdded int

	// IndexesAdded is the number of indexes added.
	IndexesAdded int
}

// GraphClientConfig contains configuration options for graph store clients.
type GraphClientConfig struct {
	// URI is the connection URI for the graph store.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Database name to connect to.
	// Empty string uses the server default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration

	// QueryTimeout bounds each statement execution. Zero leaves statements
	// bounded only by the caller's context. Timeouts apply per I/O call,
	// never per run.
	QueryTimeout time.Duration

	// MaxTransactionRetryTime is the maximum time the driver retries failed
	// transactions internally before surfacing the error.
	MaxTransactionRetryTime time.Duration
}

// DefaultConfig returns a GraphClientConfig with sensible defaults.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		QueryTimeout:            60 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
