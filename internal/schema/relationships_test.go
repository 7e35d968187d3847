package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalJoinRules tests the derivation order: tenant membership for
// every scoped label first, then the fund/entity/subscription joins.
func TestCanonicalJoinRules(t *testing.T) {
	rules := CanonicalJoinRules()

	require.Len(t, rules, 7)
	for _, r := range rules {
		assert.NoError(t, r.Validate(), "rule %s %s->%s", r.Type, r.SourceLabel, r.TargetLabel)
	}

	wantMembership := []string{LabelUser, LabelEntity, LabelFund, LabelSubscription}
	for i, label := range wantMembership {
		r := rules[i]
		assert.Equal(t, RelBelongsToTenant, r.Type)
		assert.Equal(t, JoinDirect, r.Kind)
		assert.Equal(t, label, r.SourceLabel)
		assert.Equal(t, "tenant_id", r.SourceField)
		assert.Equal(t, LabelTenant, r.TargetLabel)
		assert.Equal(t, "id", r.TargetField)
	}

	invested := rules[4]
	assert.Equal(t, RelInvestedIn, invested.Type)
	assert.Equal(t, JoinVia, invested.Kind)
	assert.Equal(t, LabelEntity, invested.SourceLabel)
	assert.Equal(t, LabelFund, invested.TargetLabel)
	assert.Equal(t, LabelSubscription, invested.ViaLabel)
	assert.Equal(t, "entity_id", invested.ViaSourceField)
	assert.Equal(t, "fund_id", invested.ViaTargetField)

	hasSub := rules[5]
	assert.Equal(t, RelHasSubscription, hasSub.Type)
	assert.Equal(t, JoinDirect, hasSub.Kind)
	assert.Equal(t, LabelFund, hasSub.SourceLabel)
	assert.Equal(t, "id", hasSub.SourceField)
	assert.Equal(t, LabelSubscription, hasSub.TargetLabel)
	assert.Equal(t, "fund_id", hasSub.TargetField)

	managed := rules[6]
	assert.Equal(t, RelManagedByEntity, managed.Type)
	assert.Equal(t, JoinDirect, managed.Kind)
	assert.Equal(t, LabelFund, managed.SourceLabel)
	assert.Equal(t, "managing_entity_id", managed.SourceField)
	assert.Equal(t, LabelEntity, managed.TargetLabel)
	assert.Equal(t, "id", managed.TargetField)
}

func TestJoinRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    JoinRule
		wantErr string
	}{
		{
			name: "valid direct",
			rule: DirectJoin(RelHasSubscription, LabelFund, "id", LabelSubscription, "fund_id"),
		},
		{
			name: "valid via",
			rule: ViaJoin(RelInvestedIn, LabelEntity, LabelSubscription, "entity_id", "fund_id", LabelFund),
		},
		{
			name:    "missing type",
			rule:    DirectJoin("", LabelFund, "id", LabelSubscription, "fund_id"),
			wantErr: "relationship type is required",
		},
		{
			name:    "bad kind",
			rule:    JoinRule{Type: RelInvestedIn, Kind: "fuzzy", SourceLabel: LabelEntity, TargetLabel: LabelFund},
			wantErr: "invalid join kind",
		},
		{
			name:    "missing labels",
			rule:    JoinRule{Type: RelInvestedIn, Kind: JoinDirect, SourceField: "id", TargetField: "fund_id"},
			wantErr: "source and target labels are required",
		},
		{
			name:    "direct without fields",
			rule:    JoinRule{Type: RelInvestedIn, Kind: JoinDirect, SourceLabel: LabelEntity, TargetLabel: LabelFund},
			wantErr: "direct join requires source and target fields",
		},
		{
			name:    "via without via label",
			rule:    JoinRule{Type: RelInvestedIn, Kind: JoinVia, SourceLabel: LabelEntity, TargetLabel: LabelFund, ViaSourceField: "entity_id", ViaTargetField: "fund_id"},
			wantErr: "via join requires a via label",
		},
		{
			name:    "via without via fields",
			rule:    JoinRule{Type: RelInvestedIn, Kind: JoinVia, SourceLabel: LabelEntity, TargetLabel: LabelFund, ViaLabel: LabelSubscription},
			wantErr: "via join requires via source and target fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
