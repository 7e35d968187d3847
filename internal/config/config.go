package config

import (
	"time"
)

// Config is the root configuration for the sync engine.
type Config struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source" validate:"required"`
	Graph   GraphConfig   `mapstructure:"graph" yaml:"graph" validate:"required"`
	Sync    SyncConfig    `mapstructure:"sync" yaml:"sync"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig contains relational source settings. The driver is selected
// explicitly rather than sniffed from the DSN so a postgres:// URL handed to
// the sqlite driver fails loudly at validation time.
type SourceConfig struct {
	// Driver is the database/sql driver name: "sqlite3" or "pgx".
	Driver string `mapstructure:"driver" yaml:"driver" validate:"required,oneof=sqlite3 pgx"`

	// DSN is the data source name. For sqlite3 use a file path or file: URI;
	// for pgx use a postgres:// URL. Credentials interpolate from the
	// environment with ${VAR} syntax.
	DSN string `mapstructure:"dsn" yaml:"dsn" validate:"required"`

	// BatchSize is the number of rows fetched and written per batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size" validate:"min=1,max=10000"`

	// MaxConnections limits the source connection pool.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=100"`

	// Timeout bounds each source query.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
}

// GraphConfig contains graph store connection settings.
type GraphConfig struct {
	// URI is the bolt/neo4j connection URI. The scheme controls encryption
	// (bolt:// vs bolt+s://, neo4j:// vs neo4j+s://).
	URI string `mapstructure:"uri" yaml:"uri" validate:"required"`

	// Username for authentication.
	Username string `mapstructure:"username" yaml:"username" validate:"required"`

	// Password for authentication. Interpolates from the environment with
	// ${VAR} syntax so it never lives in the file.
	Password string `mapstructure:"password" yaml:"password" validate:"required"`

	// Database selects the target database; empty uses the server default.
	Database string `mapstructure:"database" yaml:"database,omitempty"`

	// MaxConnectionPoolSize limits the driver connection pool.
	MaxConnectionPoolSize int `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size" validate:"min=1,max=500"`

	// ConnectionTimeout bounds connection acquisition.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`

	// QueryTimeout bounds each batch operation. Applied per I/O call, never
	// per run.
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout" validate:"min=1s"`

	// MaxRetries bounds the write retry loop for transient failures.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries" validate:"min=1,max=10"`
}

// SyncConfig contains pipeline settings.
type SyncConfig struct {
	// Workers is the number of entity-type pipelines allowed to run
	// concurrently. 1 means fully sequential. No setting ever allows two
	// pipelines on the same entity type.
	Workers int `mapstructure:"workers" yaml:"workers" validate:"min=1,max=32"`

	// EntityTypes restricts the run to a subset of entity types. Empty means
	// all types in canonical order.
	EntityTypes []string `mapstructure:"entity_types" yaml:"entity_types,omitempty"`

	// SkipAnalysis skips the post-sync consistency analysis phase.
	SkipAnalysis bool `mapstructure:"skip_analysis" yaml:"skip_analysis"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json text"`
}
