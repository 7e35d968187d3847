package queries

import "fmt"

// Direction names which side of a relationship the inspected node must hold
// for it not to count as an orphan.
type Direction string

const (
	// DirectionOutgoing expects the node to have at least one outgoing edge
	// of the relationship type.
	DirectionOutgoing Direction = "outgoing"
	// DirectionIncoming expects the node to have at least one incoming edge
	// of the relationship type.
	DirectionIncoming Direction = "incoming"
)

// Validate checks if the Direction is valid.
func (d Direction) Validate() error {
	switch d {
	case DirectionOutgoing, DirectionIncoming:
		return nil
	default:
		return fmt.Errorf("invalid relationship direction: %s", d)
	}
}

// DuplicateGroups returns the duplicate-detection query for one label and
// its tenant-scoped name property. A group is two or more live nodes sharing
// (tenant_id, name). Keys collect in ascending order and groups return
// ordered by name then tenant, so repeated runs diff cleanly. Read-only.
func DuplicateGroups(label, nameProp string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	if err := checkIdent("property", nameProp); err != nil {
		return "", err
	}
	return fmt.Sprintf(`
MATCH (n:%s)
WHERE n.tenant_id IS NOT NULL AND n.%s IS NOT NULL
WITH n.tenant_id AS tenant_id, n.%s AS name, n.id AS key
ORDER BY key
WITH tenant_id, name, collect(key) AS keys
WHERE size(keys) > 1
RETURN tenant_id, name, keys
ORDER BY name, tenant_id`, label, nameProp, nameProp), nil
}

// DuplicateSample is the bounded variant of DuplicateGroups used when a
// constraint cannot be created over existing data; the report names the
// constraint and carries the first $limit violating groups.
func DuplicateSample(label, nameProp string) (string, error) {
	stmt, err := DuplicateGroups(label, nameProp)
	if err != nil {
		return "", err
	}
	return stmt + "\nLIMIT $limit", nil
}

// Orphans returns the orphan-detection query: keys of nodes of one label
// with zero edges of the named relationship type in the expected direction.
// Results order by the name-like property (falling back to the key when the
// label has none, or the property is unset), then by key. Read-only.
func Orphans(label, relType string, dir Direction, nameProp string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	if err := checkIdent("relationship type", relType); err != nil {
		return "", err
	}
	if err := dir.Validate(); err != nil {
		return "", err
	}

	pattern := fmt.Sprintf("(n)-[:%s]->()", relType)
	if dir == DirectionIncoming {
		pattern = fmt.Sprintf("()-[:%s]->(n)", relType)
	}

	name := "n.id"
	if nameProp != "" {
		if err := checkIdent("property", nameProp); err != nil {
			return "", err
		}
		name = fmt.Sprintf("coalesce(n.%s, n.id)", nameProp)
	}

	return fmt.Sprintf(`
MATCH (n:%s)
WHERE NOT %s
RETURN n.id AS key, %s AS name
ORDER BY name, key`, label, pattern, name), nil
}

// GroupRecords returns the survivor-selection query the resolver runs over a
// duplicate group: ids, update and creation timestamps for every member.
// The group's keys bind as $keys.
func GroupRecords(label string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	return fmt.Sprintf(`
MATCH (n:%s)
WHERE n.id IN $keys
RETURN n.id AS id, n.updated_at AS updated_at, n.created_at AS created_at
ORDER BY n.id`, label), nil
}

// DetachDeleteByKeys returns the resolver's destructive removal statement:
// nodes whose ids bind as $keys are deleted along with every relationship
// they hold.
func DetachDeleteByKeys(label string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	return fmt.Sprintf(`
MATCH (n:%s)
WHERE n.id IN $keys
DETACH DELETE n`, label), nil
}
