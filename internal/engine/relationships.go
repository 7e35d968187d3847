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

// RelationshipBuilder derives edges between already-merged nodes. Every edge
// goes through MERGE, so re-linking an unchanged graph creates nothing.
type RelationshipBuilder struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewRelationshipBuilder creates a RelationshipBuilder.
func NewRelationshipBuilder(client graph.GraphClient, logger *slog.Logger) *RelationshipBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationshipBuilder{
		client: client,
		logger: logger,
	}
}

// Link derives one rule's edges and returns how many were created. Zero means
// the graph already carried every edge the rule implies.
func (b *RelationshipBuilder) Link(ctx context.Context, rule schema.JoinRule) (int, error) {
	stmt, err := queries.RelationshipMerge(rule)
	if err != nil {
		return 0, err
	}

	result, err := b.client.Write(ctx, stmt, nil)
	if err != nil {
		return 0, types.WrapError(graph.ErrCodeGraphWriteFailed,
			fmt.Sprintf("failed to derive %s edges", rule.Type), err)
	}
	return result.Summary.RelationshipsCreated, nil
}

// LinkAll derives every canonical rule in declaration order and returns the
// total number of edges created.
func (b *RelationshipBuilder) LinkAll(ctx context.Context) (int, error) {
	total := 0
	for _, rule := range schema.CanonicalJoinRules() {
		created, err := b.Link(ctx, rule)
		if err != nil {
			return total, err
		}
		b.logger.Info("edges derived",
			"type", rule.Type,
			"from", rule.SourceLabel,
			"to", rule.TargetLabel,
			"created", created,
		)
		total += created
	}
	return total, nil
}
