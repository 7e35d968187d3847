// Package bootstrap prepares a graphsync home directory: it creates the
// directory tree and writes the default configuration file. It never touches
// either data store, so init works before credentials exist.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Options controls initialization behavior.
type Options struct {
	// HomeDir is the graphsync home directory. Empty uses the default.
	HomeDir string

	// Force overwrites an existing configuration file.
	Force bool
}

// Result reports what initialization did.
type Result struct {
	HomeDir       string   `json:"home_dir"`
	ConfigPath    string   `json:"config_path"`
	ConfigCreated bool     `json:"config_created"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Initialize creates the home directory and default config file. An existing
// config file is preserved unless opts.Force is set; that case surfaces as a
// warning rather than an error so re-running init stays safe.
func Initialize(opts Options) (*Result, error) {
	homeDir := opts.HomeDir
	if homeDir == "" {
		homeDir = config.DefaultHomeDir()
	}

	result := &Result{HomeDir: homeDir}

	if err := os.MkdirAll(homeDir, 0755); err != nil {
		return nil, types.WrapError(types.INIT_DIRS_FAILED,
			fmt.Sprintf("failed to create home directory %s", homeDir), err)
	}

	result.ConfigPath = config.DefaultConfigPath(homeDir)

	if _, err := os.Stat(result.ConfigPath); err == nil && !opts.Force {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("config file already exists at %s (use --force to overwrite)", result.ConfigPath))
	} else {
		if err := config.WriteDefault(result.ConfigPath, opts.Force); err != nil {
			return nil, types.WrapError(types.INIT_CONFIG_FAILED, "failed to write config file", err)
		}
		result.ConfigCreated = true
	}

	// The default config resolves the graph password from the environment.
	if os.Getenv("NEO4J_PASSWORD") == "" {
		result.Warnings = append(result.Warnings,
			"NEO4J_PASSWORD is not set; export it or add it to .env before running 'graphsync run'")
	}

	return result, nil
}
