// Package queries builds the parameterized Cypher statements the sync engine
// executes: node merges, relationship merges, constraint and index
// declarations, and the duplicate/orphan analysis queries.
//
// Every builder is a pure function from a schema definition to statement
// text. Data values are never interpolated; they bind as parameters at
// execution time ($rows, $keys, $limit, ...). The only interpolated pieces
// are labels, relationship types, property names, and constraint/index
// names, all of which come from the fixed mappings in the schema package
// and are re-checked against a strict identifier pattern before use.
//
// Statement shapes:
//
//   - BatchMerge / SingleMerge: UNWIND + MERGE upserts, idempotent by key.
//   - RelationshipMerge: MATCH endpoints + MERGE edge, no parallel edges.
//   - CreateConstraint / CreateIndex: IF NOT EXISTS declarations, safe to
//     repeat.
//   - DuplicateGroups / Orphans: read-only consistency queries with
//     deterministic ordering for reproducible diffing.
//   - GroupRecords / DetachDeleteByKeys: the resolver's survivor lookup and
//     destructive removal.
package queries
