package graph_test

import (
	"context"
	"fmt"
	"log"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
)

// Example demonstrating basic Neo4j client usage.
func ExampleNewNeo4jClient() {
	// Configure the client
	config := graph.DefaultConfig()
	config.URI = "bolt://localhost:7687"
	config.Username = "neo4j"
	config.Password = "password"

	// Create client
	client, err := graph.NewNeo4jClient(config)
	if err != nil {
		log.Fatal(err)
	}

	// Connect to the store
	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	defer client.Close(ctx)

	// Check health
	status := client.Health(ctx)
	fmt.Printf("Health: %s\n", status.State)
}

// Example demonstrating an idempotent batch write.
func ExampleGraphClient_Write() {
	// Use mock client for example (doesn't require a real store)
	client := graph.NewMockGraphClient()
	ctx := context.Background()

	_ = client.Connect(ctx)
	defer client.Close(ctx)

	// Configure mock response
	client.AddWriteResult(graph.QueryResult{
		Summary: graph.QuerySummary{NodesCreated: 2, PropertiesSet: 6},
	})

	// Merge a batch of tenants in one round trip
	result, _ := client.Write(ctx,
		"UNWIND $rows AS row MERGE (t:Tenant {id: row.id}) SET t.name = row.name",
		map[string]any{"rows": []map[string]any{
			{"id": "tenant-1", "name": "Acme"},
			{"id": "tenant-2", "name": "Globex"},
		}},
	)

	fmt.Printf("Nodes created: %d\n", result.Summary.NodesCreated)
	// Output: Nodes created: 2
}

// Example demonstrating Cypher query execution.
func ExampleGraphClient_Query() {
	// Use mock client for example
	client := graph.NewMockGraphClient()
	ctx := context.Background()

	_ = client.Connect(ctx)
	defer client.Close(ctx)

	// Configure mock response
	client.AddQueryResult(graph.QueryResult{
		Records: []map[string]any{
			{"name": "Acme", "users": 12},
			{"name": "Globex", "users": 8},
		},
		Columns: []string{"name", "users"},
	})

	// Execute query
	result, _ := client.Query(ctx,
		"MATCH (u:User)-[:BELONGS_TO_TENANT]->(t:Tenant) RETURN t.name as name, count(u) as users",
		nil,
	)

	// Process results
	for _, record := range result.Records {
		fmt.Printf("Tenant: %s, Users: %d\n", record["name"], record["users"])
	}

	// Output:
	// Tenant: Acme, Users: 12
	// Tenant: Globex, Users: 8
}

// Example demonstrating configuration validation.
func ExampleGraphClientConfig_Validate() {
	config := graph.GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		ConnectionTimeout:       30,
		MaxTransactionRetryTime: 30,
	}

	if err := config.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
	} else {
		fmt.Println("Config is valid")
	}

	// Output: Config is valid
}

// Example demonstrating mock client for testing.
func ExampleMockGraphClient() {
	mock := graph.NewMockGraphClient()
	ctx := context.Background()

	// Connect
	_ = mock.Connect(ctx)

	// Run some writes
	_, _ = mock.Write(ctx, "MERGE (t:Tenant {id: $id})", map[string]any{"id": "tenant-1"})
	_, _ = mock.Write(ctx, "MERGE (u:User {id: $id})", map[string]any{"id": "user-1"})

	// Verify calls were made
	calls := mock.GetCallsByMethod("Write")
	fmt.Printf("Write called %d times\n", len(calls))

	// Output: Write called 2 times
}
