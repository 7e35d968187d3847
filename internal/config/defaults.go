package config

import (
	"time"
)

// DefaultConfig returns a Config with sensible default values: a local
// sqlite source, a local unencrypted Neo4j target, batch size 50, and a
// single sequential pipeline.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Driver:         "sqlite3",
			DSN:            "file:graphsync.db",
			BatchSize:      50,
			MaxConnections: 10,
			Timeout:        30 * time.Second,
		},
		Graph: GraphConfig{
			URI:                   "bolt://localhost:7687",
			Username:              "neo4j",
			Password:              "${NEO4J_PASSWORD}",
			Database:              "",
			MaxConnectionPoolSize: 50,
			ConnectionTimeout:     30 * time.Second,
			QueryTimeout:          60 * time.Second,
			MaxRetries:            3,
		},
		Sync: SyncConfig{
			Workers:      1,
			EntityTypes:  nil,
			SkipAnalysis: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
