package queries

import (
	"strings"
	"testing"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBatchMerge tests the UNWIND-based batch upsert statement shape.
func TestBatchMerge(t *testing.T) {
	stmt, err := BatchMerge(schema.LabelFund)
	require.NoError(t, err)

	assert.Contains(t, stmt, "UNWIND $rows AS row")
	assert.Contains(t, stmt, "MERGE (n:Fund {id: row.id})")
	assert.Contains(t, stmt, "SET n += row.props")
}

// TestBatchMerge_InvalidLabel tests that unsafe identifiers are rejected.
func TestBatchMerge_InvalidLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"empty", ""},
		{"injection", "Fund {id: 1}) DETACH DELETE (m"},
		{"space", "Fund Name"},
		{"leading digit", "1Fund"},
		{"backtick", "Fund`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BatchMerge(tt.label)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid label identifier")
		})
	}
}

// TestSingleMerge tests the per-record fallback upsert statement shape.
func TestSingleMerge(t *testing.T) {
	stmt, err := SingleMerge(schema.LabelEntity)
	require.NoError(t, err)

	assert.Contains(t, stmt, "MERGE (n:Entity {id: $id})")
	assert.Contains(t, stmt, "SET n += $props")
	assert.NotContains(t, stmt, "UNWIND")
}

// TestCountNodes tests the node-count query.
func TestCountNodes(t *testing.T) {
	stmt, err := CountNodes(schema.LabelTenant)
	require.NoError(t, err)
	assert.Equal(t, `MATCH (n:Tenant) RETURN count(n) AS count`, stmt)

	_, err = CountNodes("bad label")
	require.Error(t, err)
}

// TestRelationshipMerge_Direct tests the direct-join edge merge.
func TestRelationshipMerge_Direct(t *testing.T) {
	rule := schema.DirectJoin(schema.RelBelongsToTenant,
		schema.LabelFund, "tenant_id", schema.LabelTenant, "id")

	stmt, err := RelationshipMerge(rule)
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (s:Fund)")
	assert.Contains(t, stmt, "WHERE s.tenant_id IS NOT NULL")
	assert.Contains(t, stmt, "MATCH (t:Tenant)")
	assert.Contains(t, stmt, "WHERE t.id = s.tenant_id")
	assert.Contains(t, stmt, "MERGE (s)-[:BELONGS_TO_TENANT]->(t)")
}

// TestRelationshipMerge_Via tests the via-node edge merge.
func TestRelationshipMerge_Via(t *testing.T) {
	rule := schema.ViaJoin(schema.RelInvestedIn,
		schema.LabelEntity, schema.LabelSubscription, "entity_id", "fund_id", schema.LabelFund)

	stmt, err := RelationshipMerge(rule)
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (v:Subscription)")
	assert.Contains(t, stmt, "WHERE v.entity_id IS NOT NULL AND v.fund_id IS NOT NULL")
	assert.Contains(t, stmt, "MATCH (s:Entity {id: v.entity_id})")
	assert.Contains(t, stmt, "MATCH (t:Fund {id: v.fund_id})")
	assert.Contains(t, stmt, "MERGE (s)-[:INVESTED_IN]->(t)")
}

// TestRelationshipMerge_Invalid tests rejection of incomplete or unsafe rules.
func TestRelationshipMerge_Invalid(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		rule := schema.JoinRule{
			Type:        schema.RelInvestedIn,
			Kind:        schema.JoinDirect,
			SourceLabel: schema.LabelEntity,
			TargetLabel: schema.LabelFund,
		}
		_, err := RelationshipMerge(rule)
		require.Error(t, err)
	})

	t.Run("unsafe property", func(t *testing.T) {
		rule := schema.DirectJoin(schema.RelHasSubscription,
			schema.LabelFund, "id}) DETACH DELETE (n", schema.LabelSubscription, "fund_id")
		_, err := RelationshipMerge(rule)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid property identifier")
	})
}

// TestRelationshipMerge_CanonicalRules tests that every canonical rule builds.
func TestRelationshipMerge_CanonicalRules(t *testing.T) {
	for _, rule := range schema.CanonicalJoinRules() {
		stmt, err := RelationshipMerge(rule)
		require.NoError(t, err, "rule %s %s->%s", rule.Type, rule.SourceLabel, rule.TargetLabel)
		assert.Contains(t, stmt, "MERGE (s)-[:"+rule.Type+"]->(t)")
	}
}

// TestCreateConstraint_Unique tests single-property uniqueness declaration.
func TestCreateConstraint_Unique(t *testing.T) {
	def := schema.ConstraintDef{
		Name:       "fund_id_unique",
		Label:      schema.LabelFund,
		Properties: []string{"id"},
		Kind:       schema.ConstraintUnique,
	}

	stmt, err := CreateConstraint(def)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE CONSTRAINT fund_id_unique IF NOT EXISTS FOR (n:Fund) REQUIRE n.id IS UNIQUE`,
		stmt)
}

// TestCreateConstraint_NodeKey tests composite node-key declaration.
func TestCreateConstraint_NodeKey(t *testing.T) {
	def := schema.ConstraintDef{
		Name:       "fund_tenant_name_key",
		Label:      schema.LabelFund,
		Properties: []string{"tenant_id", "fund_name"},
		Kind:       schema.ConstraintNodeKey,
	}

	stmt, err := CreateConstraint(def)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE CONSTRAINT fund_tenant_name_key IF NOT EXISTS FOR (n:Fund) REQUIRE (n.tenant_id, n.fund_name) IS NODE KEY`,
		stmt)
}

// TestCreateConstraint_Invalid tests rejection of malformed definitions.
func TestCreateConstraint_Invalid(t *testing.T) {
	t.Run("no properties", func(t *testing.T) {
		def := schema.ConstraintDef{
			Name:  "bad",
			Label: schema.LabelFund,
			Kind:  schema.ConstraintUnique,
		}
		_, err := CreateConstraint(def)
		require.Error(t, err)
	})

	t.Run("unique with two properties", func(t *testing.T) {
		def := schema.ConstraintDef{
			Name:       "bad",
			Label:      schema.LabelFund,
			Properties: []string{"a", "b"},
			Kind:       schema.ConstraintUnique,
		}
		_, err := CreateConstraint(def)
		require.Error(t, err)
	})

	t.Run("unsafe name", func(t *testing.T) {
		def := schema.ConstraintDef{
			Name:       "bad name;",
			Label:      schema.LabelFund,
			Properties: []string{"id"},
			Kind:       schema.ConstraintUnique,
		}
		_, err := CreateConstraint(def)
		require.Error(t, err)
	})
}

// TestCreateConstraint_Canonical tests that every canonical constraint builds.
func TestCreateConstraint_Canonical(t *testing.T) {
	for _, def := range schema.CanonicalConstraints() {
		stmt, err := CreateConstraint(def)
		require.NoError(t, err, "constraint %s", def.Name)
		assert.True(t, strings.HasPrefix(stmt, "CREATE CONSTRAINT "+def.Name+" IF NOT EXISTS"))
	}
}

// TestCreateIndex tests secondary index declaration.
func TestCreateIndex(t *testing.T) {
	def := schema.IndexDef{
		Name:       "fund_tenant_idx",
		Label:      schema.LabelFund,
		Properties: []string{"tenant_id"},
	}

	stmt, err := CreateIndex(def)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE INDEX fund_tenant_idx IF NOT EXISTS FOR (n:Fund) ON (n.tenant_id)`,
		stmt)

	for _, idx := range schema.CanonicalIndexes() {
		_, err := CreateIndex(idx)
		require.NoError(t, err, "index %s", idx.Name)
	}
}

// TestDuplicateGroups tests the duplicate-detection query shape and ordering.
func TestDuplicateGroups(t *testing.T) {
	stmt, err := DuplicateGroups(schema.LabelFund, "fund_name")
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (n:Fund)")
	assert.Contains(t, stmt, "WHERE n.tenant_id IS NOT NULL AND n.fund_name IS NOT NULL")
	assert.Contains(t, stmt, "collect(key) AS keys")
	assert.Contains(t, stmt, "WHERE size(keys) > 1")
	assert.Contains(t, stmt, "ORDER BY name, tenant_id")

	// Keys must collect in ascending order for reproducible groups.
	keyOrder := strings.Index(stmt, "ORDER BY key")
	collect := strings.Index(stmt, "collect(key)")
	require.Greater(t, keyOrder, 0)
	assert.Less(t, keyOrder, collect)
}

// TestDuplicateSample tests the bounded violating-record sample query.
func TestDuplicateSample(t *testing.T) {
	stmt, err := DuplicateSample(schema.LabelEntity, "name")
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (n:Entity)")
	assert.True(t, strings.HasSuffix(stmt, "LIMIT $limit"))
}

// TestOrphans tests orphan detection in both directions.
func TestOrphans(t *testing.T) {
	t.Run("outgoing", func(t *testing.T) {
		stmt, err := Orphans(schema.LabelFund, schema.RelHasSubscription, DirectionOutgoing, "fund_name")
		require.NoError(t, err)

		assert.Contains(t, stmt, "MATCH (n:Fund)")
		assert.Contains(t, stmt, "WHERE NOT (n)-[:HAS_SUBSCRIPTION]->()")
		assert.Contains(t, stmt, "coalesce(n.fund_name, n.id) AS name")
		assert.Contains(t, stmt, "ORDER BY name, key")
	})

	t.Run("incoming", func(t *testing.T) {
		stmt, err := Orphans(schema.LabelSubscription, schema.RelHasSubscription, DirectionIncoming, "")
		require.NoError(t, err)

		assert.Contains(t, stmt, "WHERE NOT ()-[:HAS_SUBSCRIPTION]->(n)")
		assert.Contains(t, stmt, "n.id AS name")
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, err := Orphans(schema.LabelFund, schema.RelHasSubscription, Direction("sideways"), "")
		require.Error(t, err)
	})
}

// TestGroupRecords tests the resolver's survivor-selection query.
func TestGroupRecords(t *testing.T) {
	stmt, err := GroupRecords(schema.LabelFund)
	require.NoError(t, err)

	assert.Contains(t, stmt, "WHERE n.id IN $keys")
	assert.Contains(t, stmt, "n.updated_at AS updated_at")
	assert.Contains(t, stmt, "n.created_at AS created_at")
	assert.Contains(t, stmt, "ORDER BY n.id")
}

// TestDetachDeleteByKeys tests the resolver's destructive removal statement.
func TestDetachDeleteByKeys(t *testing.T) {
	stmt, err := DetachDeleteByKeys(schema.LabelEntity)
	require.NoError(t, err)

	assert.Contains(t, stmt, "MATCH (n:Entity)")
	assert.Contains(t, stmt, "WHERE n.id IN $keys")
	assert.Contains(t, stmt, "DETACH DELETE n")
}
