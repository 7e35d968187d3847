package schema

import "fmt"

// Relationship type constants for Cypher queries
const (
	// RelBelongsToTenant links every scoped node to its Tenant
	RelBelongsToTenant = "BELONGS_TO_TENANT"
	// RelInvestedIn links an investing Entity to a Fund through a Subscription
	RelInvestedIn = "INVESTED_IN"
	// RelHasSubscription links a Fund to each of its Subscriptions
	RelHasSubscription = "HAS_SUBSCRIPTION"
	// RelManagedByEntity links a Fund to its managing Entity
	RelManagedByEntity = "MANAGED_BY_ENTITY"
)

// JoinKind distinguishes the two join shapes a relationship rule can take.
type JoinKind string

const (
	// JoinDirect matches source and target on a single field equality.
	JoinDirect JoinKind = "direct"
	// JoinVia matches source and target through a third node carrying both
	// foreign keys.
	JoinVia JoinKind = "via"
)

// String returns the string representation of JoinKind.
func (k JoinKind) String() string {
	return string(k)
}

// Validate checks if the JoinKind is valid.
func (k JoinKind) Validate() error {
	switch k {
	case JoinDirect, JoinVia:
		return nil
	default:
		return fmt.Errorf("invalid join kind: %s", k)
	}
}

// JoinRule declares how one relationship type is derived from node
// properties. Direct rules join source to target on one field equality:
//
//	MATCH (s:Src) MATCH (t:Tgt) WHERE s.<SourceField> = t.<TargetField>
//
// Via rules join through a third label that carries a foreign key to each
// endpoint:
//
//	MATCH (v:Via) MATCH (s:Src {id: v.<ViaSourceField>}) MATCH (t:Tgt {id: v.<ViaTargetField>})
//
// Either way the edge is created with MERGE, so re-running a rule never
// produces parallel edges.
type JoinRule struct {
	Type        string   `json:"type"`
	Kind        JoinKind `json:"kind"`
	SourceLabel string   `json:"source_label"`
	TargetLabel string   `json:"target_label"`

	// Direct join fields
	SourceField string `json:"source_field,omitempty"`
	TargetField string `json:"target_field,omitempty"`

	// Via join fields
	ViaLabel       string `json:"via_label,omitempty"`
	ViaSourceField string `json:"via_source_field,omitempty"`
	ViaTargetField string `json:"via_target_field,omitempty"`
}

// DirectJoin builds a direct join rule: source.<sourceField> = target.<targetField>.
func DirectJoin(relType, sourceLabel, sourceField, targetLabel, targetField string) JoinRule {
	return JoinRule{
		Type:        relType,
		Kind:        JoinDirect,
		SourceLabel: sourceLabel,
		TargetLabel: targetLabel,
		SourceField: sourceField,
		TargetField: targetField,
	}
}

// ViaJoin builds a via-node join rule: the via label holds a foreign key to
// the source node's id (viaSourceField) and one to the target node's id
// (viaTargetField).
func ViaJoin(relType, sourceLabel, viaLabel, viaSourceField, viaTargetField, targetLabel string) JoinRule {
	return JoinRule{
		Type:           relType,
		Kind:           JoinVia,
		SourceLabel:    sourceLabel,
		TargetLabel:    targetLabel,
		ViaLabel:       viaLabel,
		ViaSourceField: viaSourceField,
		ViaTargetField: viaTargetField,
	}
}

// Validate checks that the rule is complete for its kind.
func (r *JoinRule) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("relationship type is required")
	}
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if r.SourceLabel == "" || r.TargetLabel == "" {
		return fmt.Errorf("source and target labels are required")
	}
	switch r.Kind {
	case JoinDirect:
		if r.SourceField == "" || r.TargetField == "" {
			return fmt.Errorf("direct join requires source and target fields")
		}
	case JoinVia:
		if r.ViaLabel == "" {
			return fmt.Errorf("via join requires a via label")
		}
		if r.ViaSourceField == "" || r.ViaTargetField == "" {
			return fmt.Errorf("via join requires via source and target fields")
		}
	}
	return nil
}

// CanonicalJoinRules returns every relationship rule in the order the
// relationship phase runs them: tenant membership for each scoped label
// first, then the fund/entity/subscription joins.
func CanonicalJoinRules() []JoinRule {
	rules := make([]JoinRule, 0, 7)
	for _, label := range []string{LabelUser, LabelEntity, LabelFund, LabelSubscription} {
		rules = append(rules, DirectJoin(RelBelongsToTenant, label, "tenant_id", LabelTenant, "id"))
	}
	rules = append(rules,
		ViaJoin(RelInvestedIn, LabelEntity, LabelSubscription, "entity_id", "fund_id", LabelFund),
		DirectJoin(RelHasSubscription, LabelFund, "id", LabelSubscription, "fund_id"),
		DirectJoin(RelManagedByEntity, LabelFund, "managing_entity_id", LabelEntity, "id"),
	)
	return rules
}
