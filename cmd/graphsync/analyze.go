package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/engine"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan the graph for duplicates and orphans",
	Long: `Scan the graph for consistency findings without modifying anything:
  - Duplicate groups: nodes under one label sharing (tenant_id, name)
  - Orphans: nodes missing a relationship the model requires

Findings are reported, never fixed. Use 'graphsync resolve' to collapse
duplicate groups.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	analyzer := engine.NewAnalyzer(client, logger)
	report, err := analyzer.Analyze(ctx)
	if err != nil {
		return err
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

	return printAnalysisReport(cmd, report)
}

// printAnalysisReport renders the findings as text tables.
func printAnalysisReport(cmd *cobra.Command, report engine.Report) error {
	formatter := internal.NewTextFormatter(cmd.OutOrStdout())

	if report.Clean() {
		return formatter.PrintSuccess("no duplicates or orphans found")
	}

	if len(report.Duplicates) > 0 {
		cmd.Printf("Duplicate groups (%d):\n\n", len(report.Duplicates))
		rows := make([][]string, 0, len(report.Duplicates))
		for _, g := range report.Duplicates {
			rows = append(rows, []string{
				g.Label,
				g.TenantID,
				g.Name,
				strconv.Itoa(len(g.Keys)),
				strings.Join(g.Keys, ", "),
			})
		}
		if err := formatter.PrintTable([]string{"label", "tenant", "name", "count", "keys"}, rows); err != nil {
			return err
		}
		cmd.Println()
	}

	if len(report.Orphans) > 0 {
		cmd.Printf("Orphans (%d):\n\n", report.OrphanCount())
		rows := make([][]string, 0, len(report.Orphans))
		for _, f := range report.Orphans {
			rows = append(rows, []string{
				f.Label,
				f.RelType,
				f.Direction,
				strconv.Itoa(len(f.Keys)),
				strings.Join(f.Keys, ", "),
			})
		}
		if err := formatter.PrintTable([]string{"label", "relationship", "direction", "count", "keys"}, rows); err != nil {
			return err
		}
		cmd.Println()
	}

	return formatter.PrintError(fmt.Sprintf("%d duplicate group(s), %d orphan(s)",
		len(report.Duplicates), report.OrphanCount()))
}
