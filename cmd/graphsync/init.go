package main

import (
	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/bootstrap"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the graphsync home directory and configuration",
	Long: `Initialize graphsync by creating:
- The home directory (default: ~/.graphsync)
- A default configuration file

The generated config references ${NEO4J_PASSWORD} so the graph password
resolves from the environment and never lives on disk.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	homeDir := resolveHomeDir(globalFlags)

	cmd.Printf("Initializing graphsync in %s...\n", homeDir)

	result, err := bootstrap.Initialize(bootstrap.Options{
		HomeDir: homeDir,
		Force:   initForce,
	})
	if err != nil {
		return err
	}

	displayInitResult(cmd, result)
	return nil
}

func displayInitResult(cmd *cobra.Command, result *bootstrap.Result) {
	cmd.Println("\ngraphsync initialized successfully!")
	cmd.Printf("  Home directory: %s\n", result.HomeDir)
	cmd.Printf("  Config file: %s\n", result.ConfigPath)
	cmd.Printf("  Config created: %v\n", result.ConfigCreated)

	if len(result.Warnings) > 0 {
		cmd.Println("\nWarnings:")
		for _, w := range result.Warnings {
			cmd.Printf("  - %s\n", w)
		}
	}

	cmd.Println("\nNext steps:")
	cmd.Printf("  1. Edit %s with your source and graph settings\n", result.ConfigPath)
	cmd.Println("  2. Run 'graphsync status' to verify connectivity")
	cmd.Println("  3. Run 'graphsync run' to synchronize")
}
