package schema

import "fmt"

// ConstraintKind distinguishes the constraint flavors the schema phase
// declares.
type ConstraintKind string

const (
	// ConstraintUnique is a single-property uniqueness constraint,
	// available on every server edition.
	ConstraintUnique ConstraintKind = "unique"
	// ConstraintNodeKey is a composite existence+uniqueness constraint.
	// Enterprise-only; the schema manager degrades it to a warning when
	// the server rejects it.
	ConstraintNodeKey ConstraintKind = "node_key"
)

// String returns the string representation of ConstraintKind.
func (k ConstraintKind) String() string {
	return string(k)
}

// Validate checks if the ConstraintKind is valid.
func (k ConstraintKind) Validate() error {
	switch k {
	case ConstraintUnique, ConstraintNodeKey:
		return nil
	default:
		return fmt.Errorf("invalid constraint kind: %s", k)
	}
}

// ConstraintDef declares one named constraint on a label.
type ConstraintDef struct {
	Name       string         `json:"name"`
	Label      string         `json:"label"`
	Properties []string       `json:"properties"`
	Kind       ConstraintKind `json:"kind"`
}

// Validate checks that the definition is complete.
func (c *ConstraintDef) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("constraint name is required")
	}
	if c.Label == "" {
		return fmt.Errorf("constraint label is required")
	}
	if len(c.Properties) == 0 {
		return fmt.Errorf("constraint requires at least one property")
	}
	if err := c.Kind.Validate(); err != nil {
		return err
	}
	if c.Kind == ConstraintUnique && len(c.Properties) != 1 {
		return fmt.Errorf("unique constraint %s must name exactly one property", c.Name)
	}
	return nil
}

// IndexDef declares one named secondary index on a label.
type IndexDef struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Properties []string `json:"properties"`
}

// Validate checks that the definition is complete.
func (i *IndexDef) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("index name is required")
	}
	if i.Label == "" {
		return fmt.Errorf("index label is required")
	}
	if len(i.Properties) == 0 {
		return fmt.Errorf("index requires at least one property")
	}
	return nil
}

// CanonicalConstraints returns every constraint the schema phase declares,
// in declaration order: global id uniqueness per label, then the
// tenant-scoped composite keys.
func CanonicalConstraints() []ConstraintDef {
	return []ConstraintDef{
		{Name: "tenant_id_unique", Label: LabelTenant, Properties: []string{"id"}, Kind: ConstraintUnique},
		{Name: "user_id_unique", Label: LabelUser, Properties: []string{"id"}, Kind: ConstraintUnique},
		{Name: "entity_id_unique", Label: LabelEntity, Properties: []string{"id"}, Kind: ConstraintUnique},
		{Name: "fund_id_unique", Label: LabelFund, Properties: []string{"id"}, Kind: ConstraintUnique},
		{Name: "subscription_id_unique", Label: LabelSubscription, Properties: []string{"id"}, Kind: ConstraintUnique},
		{Name: "entity_tenant_name_key", Label: LabelEntity, Properties: []string{"tenant_id", "name"}, Kind: ConstraintNodeKey},
		{Name: "fund_tenant_name_key", Label: LabelFund, Properties: []string{"tenant_id", "fund_name"}, Kind: ConstraintNodeKey},
	}
}

// CanonicalIndexes returns every secondary index the schema phase declares:
// tenant_id on each scoped label plus the category fields used by reporting
// queries.
func CanonicalIndexes() []IndexDef {
	return []IndexDef{
		{Name: "user_tenant_idx", Label: LabelUser, Properties: []string{"tenant_id"}},
		{Name: "entity_tenant_idx", Label: LabelEntity, Properties: []string{"tenant_id"}},
		{Name: "fund_tenant_idx", Label: LabelFund, Properties: []string{"tenant_id"}},
		{Name: "subscription_tenant_idx", Label: LabelSubscription, Properties: []string{"tenant_id"}},
		{Name: "fund_status_idx", Label: LabelFund, Properties: []string{"status"}},
		{Name: "fund_type_idx", Label: LabelFund, Properties: []string{"fund_type"}},
		{Name: "subscription_status_idx", Label: LabelSubscription, Properties: []string{"status"}},
	}
}
