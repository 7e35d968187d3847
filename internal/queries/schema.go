package queries

import (
	"fmt"
	"strings"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

// CreateConstraint returns the idempotent declaration for one constraint.
// IF NOT EXISTS makes repeated declaration a no-op; a failure at execution
// time means existing data already violates the constraint, which the schema
// manager surfaces with a sample of the violating records.
func CreateConstraint(def schema.ConstraintDef) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}
	if err := checkIdent("constraint name", def.Name); err != nil {
		return "", err
	}
	if err := checkIdent("label", def.Label); err != nil {
		return "", err
	}
	props := make([]string, len(def.Properties))
	for i, p := range def.Properties {
		if err := checkIdent("property", p); err != nil {
			return "", err
		}
		props[i] = "n." + p
	}

	switch def.Kind {
	case schema.ConstraintUnique:
		return fmt.Sprintf(
			`CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE %s IS UNIQUE`,
			def.Name, def.Label, props[0]), nil
	case schema.ConstraintNodeKey:
		return fmt.Sprintf(
			`CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE (%s) IS NODE KEY`,
			def.Name, def.Label, strings.Join(props, ", ")), nil
	default:
		return "", fmt.Errorf("invalid constraint kind: %s", def.Kind)
	}
}

// CreateIndex returns the idempotent declaration for one secondary index.
func CreateIndex(def schema.IndexDef) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}
	if err := checkIdent("index name", def.Name); err != nil {
		return "", err
	}
	if err := checkIdent("label", def.Label); err != nil {
		return "", err
	}
	props := make([]string, len(def.Properties))
	for i, p := range def.Properties {
		if err := checkIdent("property", p); err != nil {
			return "", err
		}
		props[i] = "n." + p
	}
	return fmt.Sprintf(
		`CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (%s)`,
		def.Name, def.Label, strings.Join(props, ", ")), nil
}
