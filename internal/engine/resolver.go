package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/queries"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Resolver collapses a duplicate group to its canonical record. The survivor
// is the member with the most recent updated_at, falling back to created_at,
// with the highest key breaking remaining ties; everything else is removed
// with DETACH DELETE. This is the one destructive operation in the package.
type Resolver struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(client graph.GraphClient, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client: client,
		logger: logger,
	}
}

// Plan computes the resolution for one group without touching the graph. It
// re-reads the group's members first, so a group resolved since detection
// plans as a no-op.
func (r *Resolver) Plan(ctx context.Context, group schema.DuplicateGroup) (schema.Resolution, error) {
	resolution := schema.Resolution{
		Label:    group.Label,
		TenantID: group.TenantID,
		Name:     group.Name,
	}

	if err := group.Validate(); err != nil {
		return resolution, types.WrapError(ErrCodeResolveFailed, "invalid duplicate group", err)
	}

	stmt, err := queries.GroupRecords(group.Label)
	if err != nil {
		return resolution, err
	}

	result, err := r.client.Query(ctx, stmt, map[string]any{"keys": group.Keys})
	if err != nil {
		return resolution, types.WrapError(ErrCodeResolveFailed,
			fmt.Sprintf("could not read group members for %s %q", group.Label, group.Name), err)
	}

	if len(result.Records) <= 1 {
		if len(result.Records) == 1 {
			resolution.Kept = stringValue(result.Records[0]["id"])
		}
		return resolution, nil
	}

	resolution.Kept, resolution.Removed = pickSurvivor(result.Records)
	return resolution, nil
}

// Resolve plans and applies the resolution for one group. Record identities
// are logged before the delete so the destructive step is audited even when
// it fails halfway. Resolving an already-resolved group is a no-op.
func (r *Resolver) Resolve(ctx context.Context, group schema.DuplicateGroup) (schema.Resolution, error) {
	resolution, err := r.Plan(ctx, group)
	if err != nil {
		return resolution, err
	}
	if resolution.IsNoop() {
		r.logger.Info("duplicate group already resolved",
			"label", group.Label,
			"tenant_id", group.TenantID,
			"name", group.Name,
		)
		return resolution, nil
	}

	r.logger.Warn("resolving duplicate group",
		"label", resolution.Label,
		"tenant_id", resolution.TenantID,
		"name", resolution.Name,
		"kept", resolution.Kept,
		"removed", resolution.Removed,
	)

	stmt, err := queries.DetachDeleteByKeys(group.Label)
	if err != nil {
		return resolution, err
	}

	result, err := r.client.Write(ctx, stmt, map[string]any{"keys": resolution.Removed})
	if err != nil {
		return resolution, types.WrapError(ErrCodeResolveFailed,
			fmt.Sprintf("could not remove duplicates of %s %q", group.Label, group.Name), err)
	}

	r.logger.Info("duplicate group resolved",
		"label", resolution.Label,
		"name", resolution.Name,
		"kept", resolution.Kept,
		"nodes_deleted", result.Summary.NodesDeleted,
	)
	return resolution, nil
}

// pickSurvivor selects the group member to keep. A member's effective
// timestamp is updated_at when present, otherwise created_at; the most recent
// wins, any timestamp beats none, and the highest key settles exact ties.
// Records arrive ordered by key, so the removed list stays sorted.
func pickSurvivor(records []map[string]any) (kept string, removed []string) {
	var bestTime time.Time
	bestHas := false

	for _, rec := range records {
		id := stringValue(rec["id"])
		t, has := effectiveTime(rec)

		better := false
		switch {
		case kept == "":
			better = true
		case has != bestHas:
			better = has
		case has && !t.Equal(bestTime):
			better = t.After(bestTime)
		default:
			better = id > kept
		}

		if better {
			kept, bestTime, bestHas = id, t, has
		}
	}

	removed = make([]string, 0, len(records)-1)
	for _, rec := range records {
		if id := stringValue(rec["id"]); id != kept {
			removed = append(removed, id)
		}
	}
	return kept, removed
}

// effectiveTime returns a record's resolution timestamp: updated_at when
// present, otherwise created_at.
func effectiveTime(rec map[string]any) (time.Time, bool) {
	if t, ok := timeValue(rec["updated_at"]); ok {
		return t, true
	}
	return timeValue(rec["created_at"])
}
