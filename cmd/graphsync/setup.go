package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/observability"
)

// loadRuntimeConfig loads and validates the configuration for a command.
// A missing file surfaces as a config error with init guidance.
func loadRuntimeConfig(flags *GlobalFlags) (*config.Config, error) {
	path := resolveConfigPath(flags)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, internal.NewCLIError(internal.ExitConfigError,
			fmt.Sprintf("configuration not found at %s (run 'graphsync init' to create it)", path))
	}

	loader := config.NewConfigLoader(config.NewValidator())
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "failed to load configuration", err)
	}

	return cfg, nil
}

// newRuntimeLogger builds the logger commands hand to the engine components.
// Verbose forces debug, quiet raises the threshold to error. Logs go to
// stderr so report output on stdout stays machine-parseable.
func newRuntimeLogger(cfg *config.Config, flags *GlobalFlags) *slog.Logger {
	logCfg := cfg.Logging
	if flags.IsVerbose() {
		logCfg.Level = "debug"
	}
	if flags.IsQuiet() {
		logCfg.Level = "error"
	}
	return observability.NewLogger(logCfg, os.Stderr)
}

// graphClientConfig maps file configuration onto the graph client options.
func graphClientConfig(cfg *config.Config) graph.GraphClientConfig {
	gc := graph.DefaultConfig()
	gc.URI = cfg.Graph.URI
	gc.Username = cfg.Graph.Username
	gc.Password = cfg.Graph.Password
	gc.Database = cfg.Graph.Database
	if cfg.Graph.MaxConnectionPoolSize > 0 {
		gc.MaxConnectionPoolSize = cfg.Graph.MaxConnectionPoolSize
	}
	if cfg.Graph.ConnectionTimeout > 0 {
		gc.ConnectionTimeout = cfg.Graph.ConnectionTimeout
	}
	if cfg.Graph.QueryTimeout > 0 {
		gc.QueryTimeout = cfg.Graph.QueryTimeout
	}
	return gc
}

// connectGraph builds and connects the graph client. The caller owns Close.
func connectGraph(ctx context.Context, cfg *config.Config) (graph.GraphClient, error) {
	client, err := graph.NewNeo4jClient(graphClientConfig(cfg))
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}
