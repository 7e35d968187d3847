package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TommyNoLimits/GraphRAG-sub001/cmd/graphsync/internal"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/observability"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/queries"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/source"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display source and graph store health",
	Long: `Display connectivity status for both stores:
  - Relational source reachability and per-table row counts
  - Graph store reachability and per-label node counts
  - Overall health assessment`,
	RunE: runStatus,
}

// SystemStatus is the complete status report for both stores.
type SystemStatus struct {
	Overall   string       `json:"overall" yaml:"overall"`
	Message   string       `json:"message,omitempty" yaml:"message,omitempty"`
	Source    SourceStatus `json:"source" yaml:"source"`
	Graph     GraphStatus  `json:"graph" yaml:"graph"`
	CheckedAt time.Time    `json:"checked_at" yaml:"checked_at"`
}

// SourceStatus reports relational source health.
type SourceStatus struct {
	Connected bool           `json:"connected" yaml:"connected"`
	Driver    string         `json:"driver" yaml:"driver"`
	DSN       string         `json:"dsn" yaml:"dsn"`
	State     string         `json:"state" yaml:"state"`
	Message   string         `json:"message,omitempty" yaml:"message,omitempty"`
	Rows      map[string]int `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// GraphStatus reports graph store health.
type GraphStatus struct {
	Connected bool           `json:"connected" yaml:"connected"`
	URI       string         `json:"uri" yaml:"uri"`
	Database  string         `json:"database,omitempty" yaml:"database,omitempty"`
	State     string         `json:"state" yaml:"state"`
	Message   string         `json:"message,omitempty" yaml:"message,omitempty"`
	Nodes     map[string]int `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadRuntimeConfig(globalFlags)
	if err != nil {
		return err
	}

	status := collectSystemStatus(ctx, cfg)

	format := globalFlags.GetOutputFormat()
	if format != internal.FormatText {
		out, err := internal.MarshalDocument(format, status)
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	return printTextStatus(cmd, status)
}

// collectSystemStatus collects status from both stores. Collection never
// fails the command; unreachable stores show up in the report instead.
func collectSystemStatus(ctx context.Context, cfg *config.Config) SystemStatus {
	status := SystemStatus{
		CheckedAt: time.Now(),
	}

	status.Source = checkSourceStatus(ctx, cfg)
	status.Graph = checkGraphStatus(ctx, cfg)

	overall := determineOverallHealth(status)
	status.Overall = overall.State.String()
	status.Message = overall.Message

	return status
}

// checkSourceStatus checks source connectivity and row counts.
func checkSourceStatus(ctx context.Context, cfg *config.Config) SourceStatus {
	srcStatus := SourceStatus{
		Driver: cfg.Source.Driver,
		DSN:    observability.SanitizeDSN(cfg.Source.DSN),
		State:  types.HealthStateUnhealthy.String(),
	}

	db, err := source.Open(cfg.Source)
	if err != nil {
		srcStatus.Message = err.Error()
		return srcStatus
	}
	defer db.Close()

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health := db.Health(healthCtx)
	srcStatus.State = health.State.String()
	srcStatus.Message = health.Message
	if health.IsUnhealthy() {
		return srcStatus
	}
	srcStatus.Connected = true
	if !health.IsHealthy() {
		return srcStatus
	}

	srcStatus.Rows = make(map[string]int)
	for _, et := range schema.AllEntityTypes() {
		count, err := db.CountRows(healthCtx, et)
		if err != nil {
			// Missing tables are a setup problem, not a connectivity one.
			srcStatus.State = types.HealthStateDegraded.String()
			srcStatus.Message = fmt.Sprintf("table %s unavailable: %v", et.Table(), err)
			continue
		}
		srcStatus.Rows[et.Table()] = count
	}

	return srcStatus
}

// checkGraphStatus checks graph connectivity and node counts.
func checkGraphStatus(ctx context.Context, cfg *config.Config) GraphStatus {
	graphStatus := GraphStatus{
		URI:      cfg.Graph.URI,
		Database: cfg.Graph.Database,
		State:    types.HealthStateUnhealthy.String(),
	}

	client, err := graph.NewNeo4jClient(graphClientConfig(cfg))
	if err != nil {
		graphStatus.Message = err.Error()
		return graphStatus
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		graphStatus.Message = err.Error()
		return graphStatus
	}
	defer client.Close(ctx)

	health := client.Health(connectCtx)
	graphStatus.State = health.State.String()
	graphStatus.Message = health.Message
	if health.IsUnhealthy() {
		return graphStatus
	}
	graphStatus.Connected = true
	if !health.IsHealthy() {
		return graphStatus
	}

	graphStatus.Nodes = make(map[string]int)
	for _, et := range schema.AllEntityTypes() {
		cypher, err := queries.CountNodes(et.Label())
		if err != nil {
			continue
		}
		result, err := client.Query(connectCtx, cypher, nil)
		if err != nil {
			graphStatus.State = types.HealthStateDegraded.String()
			graphStatus.Message = fmt.Sprintf("count query for %s failed: %v", et.Label(), err)
			continue
		}
		if len(result.Records) > 0 {
			if n, ok := result.Records[0]["count"].(int64); ok {
				graphStatus.Nodes[et.Label()] = int(n)
			}
		}
	}

	return graphStatus
}

// determineOverallHealth folds both store states into one assessment.
func determineOverallHealth(status SystemStatus) types.HealthStatus {
	issues := []string{}
	if !status.Source.Connected {
		issues = append(issues, "source unavailable")
	}
	if !status.Graph.Connected {
		issues = append(issues, "graph unavailable")
	}

	switch len(issues) {
	case 0:
		if status.Source.State == types.HealthStateDegraded.String() ||
			status.Graph.State == types.HealthStateDegraded.String() {
			return types.Degraded("stores reachable with warnings")
		}
		return types.Healthy("both stores reachable")
	case 1:
		return types.Degraded(fmt.Sprintf("system degraded: %v", issues))
	default:
		return types.Unhealthy(fmt.Sprintf("system unhealthy: %v", issues))
	}
}

// printTextStatus prints status in human-readable text format.
func printTextStatus(cmd *cobra.Command, status SystemStatus) error {
	symbol := healthSymbol(status.Overall)
	cmd.Printf("\n%s Overall Status: %s\n", symbol, status.Overall)
	if status.Message != "" {
		cmd.Printf("  %s\n", status.Message)
	}
	cmd.Println()

	cmd.Println("Source:")
	if status.Source.Connected {
		cmd.Printf("  ✓ Connected: %s (%s)\n", status.Source.DSN, status.Source.Driver)
		for _, et := range schema.AllEntityTypes() {
			if count, ok := status.Source.Rows[et.Table()]; ok {
				cmd.Printf("    %-14s %d rows\n", et.Table(), count)
			}
		}
	} else {
		cmd.Printf("  ✗ Not connected\n")
		if status.Source.Message != "" {
			cmd.Printf("    Error: %s\n", status.Source.Message)
		}
	}
	cmd.Println()

	cmd.Println("Graph:")
	if status.Graph.Connected {
		cmd.Printf("  ✓ Connected: %s\n", status.Graph.URI)
		for _, et := range schema.AllEntityTypes() {
			if count, ok := status.Graph.Nodes[et.Label()]; ok {
				cmd.Printf("    %-14s %d nodes\n", et.Label(), count)
			}
		}
	} else {
		cmd.Printf("  ✗ Not connected\n")
		if status.Graph.Message != "" {
			cmd.Printf("    Error: %s\n", status.Graph.Message)
		}
	}
	cmd.Println()

	return nil
}

// healthSymbol maps a health state to its display symbol.
func healthSymbol(state string) string {
	switch state {
	case types.HealthStateHealthy.String():
		return "✓"
	case types.HealthStateDegraded.String():
		return "⚠"
	default:
		return "✗"
	}
}
