package queries

import (
	"fmt"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

// RelationshipMerge returns the edge-merge statement for a join rule.
//
// Direct rules join source to target on one field equality; nodes whose join
// field is absent simply produce no edge. Via rules walk a third label that
// carries a foreign key to each endpoint. Either way the edge is created with
// MERGE, so invoking the statement again over an unchanged node set creates
// nothing.
func RelationshipMerge(rule schema.JoinRule) (string, error) {
	if err := rule.Validate(); err != nil {
		return "", err
	}
	if err := checkIdent("relationship type", rule.Type); err != nil {
		return "", err
	}
	if err := checkIdent("label", rule.SourceLabel); err != nil {
		return "", err
	}
	if err := checkIdent("label", rule.TargetLabel); err != nil {
		return "", err
	}

	switch rule.Kind {
	case schema.JoinDirect:
		if err := checkIdent("property", rule.SourceField); err != nil {
			return "", err
		}
		if err := checkIdent("property", rule.TargetField); err != nil {
			return "", err
		}
		return fmt.Sprintf(`
MATCH (s:%s)
WHERE s.%s IS NOT NULL
MATCH (t:%s)
WHERE t.%s = s.%s
MERGE (s)-[:%s]->(t)`,
			rule.SourceLabel, rule.SourceField,
			rule.TargetLabel, rule.TargetField, rule.SourceField,
			rule.Type), nil

	case schema.JoinVia:
		if err := checkIdent("label", rule.ViaLabel); err != nil {
			return "", err
		}
		if err := checkIdent("property", rule.ViaSourceField); err != nil {
			return "", err
		}
		if err := checkIdent("property", rule.ViaTargetField); err != nil {
			return "", err
		}
		return fmt.Sprintf(`
MATCH (v:%s)
WHERE v.%s IS NOT NULL AND v.%s IS NOT NULL
MATCH (s:%s {id: v.%s})
MATCH (t:%s {id: v.%s})
MERGE (s)-[:%s]->(t)`,
			rule.ViaLabel, rule.ViaSourceField, rule.ViaTargetField,
			rule.SourceLabel, rule.ViaSourceField,
			rule.TargetLabel, rule.ViaTargetField,
			rule.Type), nil

	default:
		return "", fmt.Errorf("invalid join kind: %s", rule.Kind)
	}
}
