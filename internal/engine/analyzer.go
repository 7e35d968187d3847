package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/queries"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// OrphanCheck declares one orphan-detection pass: nodes of an entity type
// that lack any edge of the relationship type in the expected direction.
type OrphanCheck struct {
	Entity    schema.EntityType
	RelType   string
	Direction queries.Direction
}

// CanonicalOrphanChecks returns the orphan passes a full analysis runs:
// every scoped type must hold its tenant membership edge, and every
// Subscription must be held by a Fund.
func CanonicalOrphanChecks() []OrphanCheck {
	return []OrphanCheck{
		{Entity: schema.EntityTypeUser, RelType: schema.RelBelongsToTenant, Direction: queries.DirectionOutgoing},
		{Entity: schema.EntityTypeEntity, RelType: schema.RelBelongsToTenant, Direction: queries.DirectionOutgoing},
		{Entity: schema.EntityTypeFund, RelType: schema.RelBelongsToTenant, Direction: queries.DirectionOutgoing},
		{Entity: schema.EntityTypeSubscription, RelType: schema.RelBelongsToTenant, Direction: queries.DirectionOutgoing},
		{Entity: schema.EntityTypeSubscription, RelType: schema.RelHasSubscription, Direction: queries.DirectionIncoming},
	}
}

// OrphanFinding is one check's non-empty result.
type OrphanFinding struct {
	Label     string   `json:"label" yaml:"label"`
	RelType   string   `json:"relationship" yaml:"relationship"`
	Direction string   `json:"direction" yaml:"direction"`
	Keys      []string `json:"keys" yaml:"keys"`
}

// Report carries one full analysis pass. Findings are informational; a
// non-empty report never fails a run.
type Report struct {
	Duplicates []schema.DuplicateGroup `json:"duplicates" yaml:"duplicates"`
	Orphans    []OrphanFinding         `json:"orphans" yaml:"orphans"`
}

// Clean reports whether the pass found nothing.
func (r Report) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.Orphans) == 0
}

// OrphanCount returns the total number of orphaned keys across findings.
func (r Report) OrphanCount() int {
	n := 0
	for _, f := range r.Orphans {
		n += len(f.Keys)
	}
	return n
}

// Analyzer runs read-only consistency passes over the graph: duplicate
// tenant-scoped names and nodes missing expected relationships. It never
// mutates graph state; resolution is the Resolver's job.
type Analyzer struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(client graph.GraphClient, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		client: client,
		logger: logger,
	}
}

// FindDuplicates returns groups of live nodes of one type sharing a
// tenant-scoped name, with two or more members. Types without a scoped name
// have nothing to detect and return no groups. Group order is deterministic:
// by name then tenant, keys ascending within a group.
func (a *Analyzer) FindDuplicates(ctx context.Context, et schema.EntityType) ([]schema.DuplicateGroup, error) {
	if err := et.Validate(); err != nil {
		return nil, err
	}
	if !et.HasScopedName() {
		return nil, nil
	}

	stmt, err := queries.DuplicateGroups(et.Label(), et.NameProperty())
	if err != nil {
		return nil, err
	}

	result, err := a.client.Query(ctx, stmt, nil)
	if err != nil {
		return nil, types.WrapError(graph.ErrCodeGraphQueryFailed,
			fmt.Sprintf("duplicate scan for %s failed", et.Label()), err)
	}

	groups := make([]schema.DuplicateGroup, 0, len(result.Records))
	for _, rec := range result.Records {
		groups = append(groups, schema.DuplicateGroup{
			Label:    et.Label(),
			TenantID: stringValue(rec["tenant_id"]),
			Name:     stringValue(rec["name"]),
			Keys:     stringSlice(rec["keys"]),
		})
	}
	return groups, nil
}

// FindOrphans returns the keys of nodes of one type with zero edges of the
// named relationship type in the given direction, ordered by name-like field
// then key.
func (a *Analyzer) FindOrphans(ctx context.Context, et schema.EntityType, relType string, dir queries.Direction) ([]string, error) {
	if err := et.Validate(); err != nil {
		return nil, err
	}

	stmt, err := queries.Orphans(et.Label(), relType, dir, et.NameProperty())
	if err != nil {
		return nil, err
	}

	result, err := a.client.Query(ctx, stmt, nil)
	if err != nil {
		return nil, types.WrapError(graph.ErrCodeGraphQueryFailed,
			fmt.Sprintf("orphan scan for %s failed", et.Label()), err)
	}

	keys := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		keys = append(keys, stringValue(rec["key"]))
	}
	return keys, nil
}

// Analyze runs the full consistency pass: duplicate groups for every type
// with a tenant-scoped name, then the canonical orphan checks. Empty checks
// stay out of the report.
func (a *Analyzer) Analyze(ctx context.Context) (Report, error) {
	var report Report

	for _, et := range schema.AllEntityTypes() {
		if !et.HasScopedName() {
			continue
		}
		groups, err := a.FindDuplicates(ctx, et)
		if err != nil {
			return report, err
		}
		for _, g := range groups {
			a.logger.Warn("duplicate group found",
				"label", g.Label,
				"tenant_id", g.TenantID,
				"name", g.Name,
				"size", g.Size(),
			)
		}
		report.Duplicates = append(report.Duplicates, groups...)
	}

	for _, check := range CanonicalOrphanChecks() {
		keys, err := a.FindOrphans(ctx, check.Entity, check.RelType, check.Direction)
		if err != nil {
			return report, err
		}
		if len(keys) == 0 {
			continue
		}
		a.logger.Warn("orphaned nodes found",
			"label", check.Entity.Label(),
			"relationship", check.RelType,
			"direction", string(check.Direction),
			"count", len(keys),
		)
		report.Orphans = append(report.Orphans, OrphanFinding{
			Label:     check.Entity.Label(),
			RelType:   check.RelType,
			Direction: string(check.Direction),
			Keys:      keys,
		})
	}

	return report, nil
}
