package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/engine"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Declare graph constraints and indexes",
	Long: `Declare the uniqueness constraints and lookup indexes the sync
relies on. Every declaration uses IF NOT EXISTS, so re-running is safe.

On Community Edition servers the composite node-key constraints are not
available; those degrade to a warning and tenant-scoped duplicates
surface through 'graphsync analyze' instead.`,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadRuntimeConfig(globalFlags)
	if err != nil {
		return err
	}
	logger := newRuntimeLogger(cfg, globalFlags)

	client, err := connectGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	manager := engine.NewSchemaManager(client, logger)
	if err := manager.EnsureSchema(ctx); err != nil {
		return err
	}

	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())
	return formatter.PrintSuccess(fmt.Sprintf("graph schema declared (%d constraints, %d indexes)",
		len(schema.CanonicalConstraints()), len(schema.CanonicalIndexes())))
}
