package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDefault writes the default configuration to path as YAML, creating
// parent directories as needed. An existing file is left untouched unless
// force is set. The written file keeps the ${NEO4J_PASSWORD} reference so
// the secret resolves from the environment, never from disk.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()

	// Write YAML manually so durations render as "30s" rather than
	// nanosecond integers.
	content := fmt.Sprintf(`# graphsync configuration
# String values support ${VAR} environment interpolation.

source:
  driver: %s
  dsn: "%s"
  batch_size: %d
  max_connections: %d
  timeout: %s

graph:
  uri: "%s"
  username: %s
  password: "%s"
  database: "%s"
  max_connection_pool_size: %d
  connection_timeout: %s
  query_timeout: %s
  max_retries: %d

sync:
  workers: %d
  skip_analysis: %t

logging:
  level: %s
  format: %s
`,
		cfg.Source.Driver,
		cfg.Source.DSN,
		cfg.Source.BatchSize,
		cfg.Source.MaxConnections,
		cfg.Source.Timeout,
		cfg.Graph.URI,
		cfg.Graph.Username,
		cfg.Graph.Password,
		cfg.Graph.Database,
		cfg.Graph.MaxConnectionPoolSize,
		cfg.Graph.ConnectionTimeout,
		cfg.Graph.QueryTimeout,
		cfg.Graph.MaxRetries,
		cfg.Sync.Workers,
		cfg.Sync.SkipAnalysis,
		cfg.Logging.Level,
		cfg.Logging.Format,
	)

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
