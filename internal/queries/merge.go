package queries

import "fmt"

// BatchMerge returns the single-round-trip upsert for one label. Each row of
// the $rows parameter carries "id" and "props"; the node is matched on its
// id, created when absent, and its properties merged in place, so rows whose
// properties are already current are no-ops and nothing is destructively
// overwritten.
func BatchMerge(label string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	return fmt.Sprintf(`
UNWIND $rows AS row
MERGE (n:%s {id: row.id})
SET n += row.props`, label), nil
}

// SingleMerge returns the per-record fallback upsert for one label, used when
// a batch transaction fails on a constraint violation and the writer retries
// each record on its own. The record binds as $id and $props.
func SingleMerge(label string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	return fmt.Sprintf(`
MERGE (n:%s {id: $id})
SET n += $props`, label), nil
}

// CountNodes returns the node-count query for one label.
func CountNodes(label string) (string, error) {
	if err := checkIdent("label", label); err != nil {
		return "", err
	}
	return fmt.Sprintf(`MATCH (n:%s) RETURN count(n) AS count`, label), nil
}
