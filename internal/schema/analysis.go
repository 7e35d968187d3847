package schema

import "fmt"

// DuplicateGroup is one set of live nodes of a single label sharing a
// tenant-scoped name. Keys are sorted ascending and a well-formed group has
// at least two members.
type DuplicateGroup struct {
	Label    string   `json:"label" yaml:"label"`
	TenantID string   `json:"tenant_id" yaml:"tenant_id"`
	Name     string   `json:"name" yaml:"name"`
	Keys     []string `json:"keys" yaml:"keys"`
}

// Validate checks that the group is well formed for resolution.
func (g *DuplicateGroup) Validate() error {
	if g.Label == "" {
		return fmt.Errorf("duplicate group label is required")
	}
	if len(g.Keys) < 2 {
		return fmt.Errorf("duplicate group needs at least two members, got %d", len(g.Keys))
	}
	return nil
}

// Size returns the number of members in the group.
func (g *DuplicateGroup) Size() int {
	return len(g.Keys)
}

// Resolution records the outcome of resolving one duplicate group: the
// member kept and the members removed. An already-resolved group yields a
// Resolution with no removals.
type Resolution struct {
	Label    string   `json:"label" yaml:"label"`
	TenantID string   `json:"tenant_id" yaml:"tenant_id"`
	Name     string   `json:"name" yaml:"name"`
	Kept     string   `json:"kept" yaml:"kept"`
	Removed  []string `json:"removed" yaml:"removed"`
}

// IsNoop reports whether the resolution has nothing to delete.
func (r *Resolution) IsNoop() bool {
	return len(r.Removed) == 0
}
