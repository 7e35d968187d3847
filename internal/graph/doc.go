// Package graph provides the graph store client used by the sync engine.
//
// This package defines a generic GraphClient interface that can be implemented
// for different graph database backends. The primary implementation is for Neo4j,
// but the interface design allows for other graph databases to be integrated.
//
// # Architecture
//
// The package follows a clean interface-based design:
//
//   - GraphClient: Core interface defining graph store operations
//   - Neo4jClient: Production implementation using the Neo4j Go driver
//   - MockGraphClient: Test implementation for unit testing
//
// # Usage
//
// Basic usage with Neo4j:
//
//	config := graph.DefaultConfig()
//	config.URI = "bolt://localhost:7687"
//	config.Username = "neo4j"
//	config.Password = "password"
//
//	client, err := graph.NewNeo4jClient(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	// Read
//	result, err := client.Query(ctx,
//	    "MATCH (t:Tenant {id: $id}) RETURN t.name AS name",
//	    map[string]any{"id": "tenant-1"},
//	)
//
//	// Write (merge, create, delete)
//	result, err = client.Write(ctx,
//	    "MERGE (t:Tenant {id: $id}) SET t.name = $name",
//	    map[string]any{"id": "tenant-1", "name": "Acme"},
//	)
//
// # Read/Write Routing
//
// Query executes inside a read transaction and Write inside a write
// transaction. Against a clustered deployment this routes reads to followers
// and writes to the leader; against a single instance the split still buys
// managed transaction retries from the driver.
//
// # Connection Management
//
// The Neo4j client uses connection pooling with configurable limits:
//
//   - MaxConnectionPoolSize: Maximum connections in the pool (default: 50)
//   - ConnectionTimeout: Timeout for acquiring a connection (default: 30s)
//   - MaxTransactionRetryTime: Maximum retry time for transactions (default: 30s)
//
// Connections are automatically retried with exponential backoff on failure.
//
// # TLS/Encryption
//
// Encryption is controlled via the URI scheme:
//
//   - bolt://     - Unencrypted connection
//   - bolt+s://   - TLS encrypted with system CA verification
//   - bolt+ssc:// - TLS encrypted, self-signed certificates accepted
//   - neo4j://    - Routing with unencrypted connections
//   - neo4j+s://  - Routing with TLS encryption
//
// # Health Monitoring
//
// The Health() method returns a types.HealthStatus indicating the connection state:
//
//	status := client.Health(ctx)
//	if status.IsHealthy() {
//	    log.Println("Graph store is healthy")
//	}
//
// # Error Handling
//
// All errors are wrapped in types.SyncError with specific error codes:
//
//   - ErrCodeGraphConnectionFailed: Connection establishment failed
//   - ErrCodeGraphConnectionClosed: Operation on closed connection
//   - ErrCodeGraphQueryFailed: Read query execution failed
//   - ErrCodeGraphWriteFailed: Write execution failed
//   - ErrCodeGraphConstraintViolation: Write rejected by a schema constraint
//
// Constraint violations are detected from the server's error code so callers
// can use IsConstraintViolation(err) without touching driver types. Transient
// server errors are marked retryable (types.IsRetryable reports true).
//
// # Testing
//
// Use MockGraphClient for unit testing:
//
//	mock := graph.NewMockGraphClient()
//	mock.Connect(ctx)
//
//	// Configure responses
//	mock.AddQueryResult(graph.QueryResult{
//	    Records: []map[string]any{{"name": "Acme"}},
//	    Columns: []string{"name"},
//	})
//	mock.AddWriteError(types.NewRetryableError(graph.ErrCodeGraphWriteFailed, "boom"))
//
//	// Verify calls
//	calls := mock.GetCallsByMethod("Write")
//	assert.Len(t, calls, 1)
//
// # Thread Safety
//
// All implementations must be thread-safe for concurrent access. The Neo4j
// driver handles connection pooling and thread safety internally.
//
// # Query Results
//
// Query results are returned as QueryResult containing:
//
//   - Records: Slice of maps representing result rows
//   - Columns: Column names from the query
//   - Summary: Execution metadata (counters, timing)
//
// The Summary counters report nodes/relationships created and deleted,
// properties set, and constraints/indexes added, which is how the sync
// engine distinguishes created-by-merge from matched-by-merge.
package graph
