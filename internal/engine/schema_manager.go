package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/queries"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// sampleLimit bounds the violating-record sample attached to a schema
// violation report.
const sampleLimit = 5

// SchemaManager declares the canonical constraints and indexes on the graph
// store. Every statement carries IF NOT EXISTS, so EnsureSchema is safe to
// call on every run.
type SchemaManager struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewSchemaManager creates a SchemaManager.
func NewSchemaManager(client graph.GraphClient, logger *slog.Logger) *SchemaManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaManager{
		client: client,
		logger: logger,
	}
}

// EnsureSchema declares every canonical constraint and index. Three failure
// modes get special handling:
//   - node key constraints rejected by the server edition degrade to a
//     warning; tenant-scoped duplicates then surface in analysis instead
//   - constraints rejected because existing data violates them are fatal,
//     reported with a bounded sample of the violating groups
//   - an equivalent constraint existing under another name is skipped
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	constraintsAdded := 0
	for _, def := range schema.CanonicalConstraints() {
		stmt, err := queries.CreateConstraint(def)
		if err != nil {
			return err
		}

		result, err := m.client.Write(ctx, stmt, nil)
		if err != nil {
			switch {
			case def.Kind == schema.ConstraintNodeKey && isEnterpriseOnly(err):
				m.logger.Warn("node key constraint not supported by this server edition; "+
					"tenant-scoped duplicates will surface in analysis",
					"constraint", def.Name,
					"label", def.Label,
				)
				continue
			case graph.IsConstraintViolation(err):
				return m.reportViolation(ctx, def, err)
			case isAlreadyExists(err):
				m.logger.Debug("equivalent constraint already exists", "constraint", def.Name)
				continue
			default:
				return types.WrapError(graph.ErrCodeGraphSchemaFailed,
					fmt.Sprintf("failed to create constraint %s", def.Name), err)
			}
		}
		constraintsAdded += result.Summary.ConstraintsAdded
	}

	indexesAdded := 0
	for _, def := range schema.CanonicalIndexes() {
		stmt, err := queries.CreateIndex(def)
		if err != nil {
			return err
		}

		result, err := m.client.Write(ctx, stmt, nil)
		if err != nil {
			if isAlreadyExists(err) {
				m.logger.Debug("equivalent index already exists", "index", def.Name)
				continue
			}
			return types.WrapError(graph.ErrCodeGraphSchemaFailed,
				fmt.Sprintf("failed to create index %s", def.Name), err)
		}
		indexesAdded += result.Summary.IndexesAdded
	}

	m.logger.Info("schema ensured",
		"constraints_added", constraintsAdded,
		"indexes_added", indexesAdded,
	)
	return nil
}

// reportViolation builds the fatal schema-violation error for a constraint
// that existing data violates, attaching a bounded sample of the violating
// groups when the constraint has a name-shaped duplicate query.
func (m *SchemaManager) reportViolation(ctx context.Context, def schema.ConstraintDef, cause error) error {
	verr := types.WrapError(ErrCodeSchemaViolation,
		fmt.Sprintf("existing data violates constraint %s on %s(%s)",
			def.Name, def.Label, strings.Join(def.Properties, ", ")), cause)

	if def.Kind != schema.ConstraintNodeKey {
		return verr
	}

	nameProp := def.Properties[len(def.Properties)-1]
	stmt, err := queries.DuplicateSample(def.Label, nameProp)
	if err != nil {
		return verr
	}

	result, err := m.client.Query(ctx, stmt, map[string]any{"limit": sampleLimit})
	if err != nil {
		m.logger.Warn("could not sample violating records", "constraint", def.Name, "error", err)
		return verr
	}

	samples := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		samples = append(samples, fmt.Sprintf("tenant=%s name=%q keys=%v",
			stringValue(rec["tenant_id"]), stringValue(rec["name"]), rec["keys"]))
	}
	m.logger.Error("constraint violated by existing data",
		"constraint", def.Name,
		"label", def.Label,
		"sample", samples,
	)
	return verr
}

// isEnterpriseOnly reports whether the server rejected a constraint kind its
// edition does not support.
func isEnterpriseOnly(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "enterprise")
}

// isAlreadyExists reports whether an equivalent constraint or index already
// exists under a different name. IF NOT EXISTS only covers same-name
// declarations.
func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
