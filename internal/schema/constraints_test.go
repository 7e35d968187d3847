package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalConstraints tests the declared constraint set: one id
// uniqueness constraint per label, then the tenant-scoped composite keys.
func TestCanonicalConstraints(t *testing.T) {
	constraints := CanonicalConstraints()

	require.Len(t, constraints, 7)
	for _, c := range constraints {
		assert.NoError(t, c.Validate(), "constraint %s", c.Name)
	}

	for i, c := range constraints[:5] {
		assert.Equal(t, ConstraintUnique, c.Kind, "constraint %d", i)
		assert.Equal(t, []string{"id"}, c.Properties, "constraint %d", i)
	}

	entityKey := constraints[5]
	assert.Equal(t, "entity_tenant_name_key", entityKey.Name)
	assert.Equal(t, LabelEntity, entityKey.Label)
	assert.Equal(t, ConstraintNodeKey, entityKey.Kind)
	assert.Equal(t, []string{"tenant_id", "name"}, entityKey.Properties)

	fundKey := constraints[6]
	assert.Equal(t, "fund_tenant_name_key", fundKey.Name)
	assert.Equal(t, LabelFund, fundKey.Label)
	assert.Equal(t, ConstraintNodeKey, fundKey.Kind)
	assert.Equal(t, []string{"tenant_id", "fund_name"}, fundKey.Properties)
}

// TestCanonicalIndexes tests that every scoped label gets a tenant_id index
// and the reporting fields are covered.
func TestCanonicalIndexes(t *testing.T) {
	indexes := CanonicalIndexes()

	require.Len(t, indexes, 7)

	byName := make(map[string]IndexDef, len(indexes))
	for _, idx := range indexes {
		assert.NoError(t, idx.Validate(), "index %s", idx.Name)
		byName[idx.Name] = idx
	}

	for _, name := range []string{"user_tenant_idx", "entity_tenant_idx", "fund_tenant_idx", "subscription_tenant_idx"} {
		idx, ok := byName[name]
		require.True(t, ok, "missing index %s", name)
		assert.Equal(t, []string{"tenant_id"}, idx.Properties)
	}

	assert.Equal(t, []string{"status"}, byName["fund_status_idx"].Properties)
	assert.Equal(t, []string{"fund_type"}, byName["fund_type_idx"].Properties)
	assert.Equal(t, []string{"status"}, byName["subscription_status_idx"].Properties)
}

func TestConstraintDef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     ConstraintDef
		wantErr string
	}{
		{
			name: "valid unique",
			def:  ConstraintDef{Name: "c", Label: LabelUser, Properties: []string{"id"}, Kind: ConstraintUnique},
		},
		{
			name: "valid node key",
			def:  ConstraintDef{Name: "c", Label: LabelFund, Properties: []string{"tenant_id", "fund_name"}, Kind: ConstraintNodeKey},
		},
		{
			name:    "missing name",
			def:     ConstraintDef{Label: LabelUser, Properties: []string{"id"}, Kind: ConstraintUnique},
			wantErr: "name is required",
		},
		{
			name:    "missing label",
			def:     ConstraintDef{Name: "c", Properties: []string{"id"}, Kind: ConstraintUnique},
			wantErr: "label is required",
		},
		{
			name:    "missing properties",
			def:     ConstraintDef{Name: "c", Label: LabelUser, Kind: ConstraintUnique},
			wantErr: "at least one property",
		},
		{
			name:    "bad kind",
			def:     ConstraintDef{Name: "c", Label: LabelUser, Properties: []string{"id"}, Kind: "exists"},
			wantErr: "invalid constraint kind",
		},
		{
			name:    "unique with two properties",
			def:     ConstraintDef{Name: "c", Label: LabelUser, Properties: []string{"id", "email"}, Kind: ConstraintUnique},
			wantErr: "exactly one property",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIndexDef_Validate(t *testing.T) {
	valid := IndexDef{Name: "i", Label: LabelFund, Properties: []string{"status"}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&IndexDef{Label: LabelFund, Properties: []string{"status"}}).Validate())
	assert.Error(t, (&IndexDef{Name: "i", Properties: []string{"status"}}).Validate())
	assert.Error(t, (&IndexDef{Name: "i", Label: LabelFund}).Validate())
}
