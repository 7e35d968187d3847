package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string
	HomeDir      string
}

var globalFlags = &GlobalFlags{}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "Path to config file (default: $GRAPHSYNC_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&globalFlags.HomeDir, "home", "", "graphsync home directory (default: ~/.graphsync)")

	_ = cmd.RegisterFlagCompletionFunc("output", internal.CompleteOutputFormat)
}

// ParseGlobalFlags parses and validates global flags from the command
func ParseGlobalFlags(cmd *cobra.Command) (*GlobalFlags, error) {
	switch globalFlags.OutputFormat {
	case string(internal.FormatText), string(internal.FormatJSON), string(internal.FormatYAML):
	default:
		return nil, internal.NewCLIError(internal.ExitError,
			fmt.Sprintf("unsupported output format: %s (use 'text', 'json', or 'yaml')", globalFlags.OutputFormat))
	}

	if globalFlags.Verbose && globalFlags.Quiet {
		return nil, internal.NewCLIError(internal.ExitError, "--verbose and --quiet cannot be used together")
	}

	return globalFlags, nil
}

// GetOutputFormat returns the parsed OutputFormat enum
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	switch f.OutputFormat {
	case string(internal.FormatJSON):
		return internal.FormatJSON
	case string(internal.FormatYAML):
		return internal.FormatYAML
	default:
		return internal.FormatText
	}
}

// IsVerbose returns true if verbose mode is enabled
func (f *GlobalFlags) IsVerbose() bool {
	return f.Verbose && !f.Quiet
}

// IsQuiet returns true if quiet mode is enabled
func (f *GlobalFlags) IsQuiet() bool {
	return f.Quiet
}
