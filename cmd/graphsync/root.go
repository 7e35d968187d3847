package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "graphsync",
	Short: "graphsync - Tenant-aware relational-to-graph synchronization",
	Long: `graphsync mirrors a multi-tenant relational database into a Neo4j
graph. It declares uniqueness constraints, merges rows into nodes
idempotently, derives relationships from foreign keys, and reports
duplicate and orphaned nodes left behind by earlier loads.

Run 'graphsync init' once to create a configuration file, then
'graphsync run' to synchronize.`,
	PersistentPreRunE: setupEnvironment,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// setupEnvironment is called before any command runs. It loads a .env file
// when one exists so config interpolation can resolve credentials, and
// validates the global flags.
func setupEnvironment(cmd *cobra.Command, args []string) error {
	// Best effort; a missing .env is the common case.
	_ = godotenv.Load()

	flags, err := ParseGlobalFlags(cmd)
	if err != nil {
		return err
	}

	// init, version, completion, and help run without a config file
	switch cmd.Name() {
	case "init", "version", "completion", "help":
		return nil
	}

	if _, err := os.Stat(resolveConfigPath(flags)); err != nil {
		if os.IsNotExist(err) && flags.IsVerbose() {
			cmd.PrintErrf("Config file not found at %s (run 'graphsync init' to create)\n", resolveConfigPath(flags))
		}
	}

	return nil
}

// resolveHomeDir determines the graphsync home directory from the --home
// flag, the GRAPHSYNC_HOME environment variable, or the default.
func resolveHomeDir(flags *GlobalFlags) string {
	if flags.HomeDir != "" {
		return flags.HomeDir
	}
	if env := os.Getenv("GRAPHSYNC_HOME"); env != "" {
		return env
	}
	return config.DefaultHomeDir()
}

// resolveConfigPath determines the config file path from the --config flag
// or the resolved home directory.
func resolveConfigPath(flags *GlobalFlags) string {
	if flags.ConfigFile != "" {
		return flags.ConfigFile
	}
	return config.DefaultConfigPath(resolveHomeDir(flags))
}

func init() {
	// Register global flags
	RegisterGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(completionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("graphsync v0.1.0")
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for graphsync.

To load completions:

Bash:

  $ source <(graphsync completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ graphsync completion bash > /etc/bash_completion.d/graphsync
  # macOS:
  $ graphsync completion bash > $(brew --prefix)/etc/bash_completion.d/graphsync

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ graphsync completion zsh > "${fpath[1]}/_graphsync"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ graphsync completion fish | source

  # To load completions for each session, execute once:
  $ graphsync completion fish > ~/.config/fish/completions/graphsync.fish

PowerShell:

  PS> graphsync completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> graphsync completion powershell > graphsync.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			_ = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			_ = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			_ = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			_ = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
