package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/engine"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

var resolveApply bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [entity-type]",
	Short: "Collapse duplicate groups, keeping the freshest node",
	Long: `Find duplicate groups and collapse each one to a single survivor.

The survivor is the member with the most recent updated_at, falling
back to created_at and then to the highest key. Every other member is
removed with DETACH DELETE, taking its relationships with it.

Without --apply this is a dry run: the plan prints and nothing is
deleted. By default both name-scoped labels (entity, fund) are scanned;
pass an entity type to restrict the scan.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: internal.CompleteEntityTypes,
	RunE:              runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveApply, "apply", false,
		"Delete losing duplicates (default is a dry run)")
}

// ResolveReport is the resolve command's structured output.
type ResolveReport struct {
	Mode         string              `json:"mode" yaml:"mode"`
	Resolutions  []schema.Resolution `json:"resolutions" yaml:"resolutions"`
	NodesRemoved int                 `json:"nodes_removed" yaml:"nodes_removed"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	targets, err := resolveTargets(args)
	if err != nil {
		return err
	}

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

	analyzer := engine.NewAnalyzer(client, logger)
	resolver := engine.NewResolver(client, logger)

	report := ResolveReport{Mode: "dry-run"}
	if resolveApply {
		report.Mode = "apply"
	}

	for _, et := range targets {
		groups, err := analyzer.FindDuplicates(ctx, et)
		if err != nil {
			return err
		}
		for _, group := range groups {
			var resolution schema.Resolution
			if resolveApply {
				resolution, err = resolver.Resolve(ctx, group)
			} else {
				resolution, err = resolver.Plan(ctx, group)
			}
			if err != nil {
				return err
			}
			report.Resolutions = append(report.Resolutions, resolution)
			report.NodesRemoved += len(resolution.Removed)
		}
	}

	format := globalFlags.GetOutputFormat()
	if format != internal.FormatText {
		out, err := internal.MarshalDocument(format, report)
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	return printResolveReport(cmd, report)
}

// resolveTargets picks the entity types to scan. Only types with a
// tenant-scoped name can hold duplicate groups.
func resolveTargets(args []string) ([]schema.EntityType, error) {
	if len(args) == 0 {
		var targets []schema.EntityType
		for _, et := range schema.AllEntityTypes() {
			if et.HasScopedName() {
				targets = append(targets, et)
			}
		}
		return targets, nil
	}

	et, err := schema.ParseEntityType(args[0])
	if err != nil {
		return nil, internal.WrapError(internal.ExitError, "invalid entity type", err)
	}
	if !et.HasScopedName() {
		return nil, internal.NewCLIError(internal.ExitError,
			fmt.Sprintf("entity type %s has no tenant-scoped name; nothing to resolve", et))
	}
	return []schema.EntityType{et}, nil
}

// printResolveReport renders resolutions as a text table.
func printResolveReport(cmd *cobra.Command, report ResolveReport) error {
	formatter := internal.NewTextFormatter(cmd.OutOrStdout())

	if len(report.Resolutions) == 0 {
		return formatter.PrintSuccess("no duplicate groups found")
	}

	rows := make([][]string, 0, len(report.Resolutions))
	for _, r := range report.Resolutions {
		removed := strings.Join(r.Removed, ", ")
		if removed == "" {
			removed = "-"
		}
		rows = append(rows, []string{r.Label, r.TenantID, r.Name, r.Kept, removed})
	}
	if err := formatter.PrintTable([]string{"label", "tenant", "name", "kept", "removed"}, rows); err != nil {
		return err
	}
	cmd.Println()

	if report.Mode == "apply" {
		return formatter.PrintSuccess(fmt.Sprintf("resolved %d group(s), deleted %d node(s)",
			len(report.Resolutions), report.NodesRemoved))
	}
	return formatter.PrintSuccess(fmt.Sprintf("dry run: %d group(s) would lose %d node(s); re-run with --apply to delete",
		len(report.Resolutions), report.NodesRemoved))
}
