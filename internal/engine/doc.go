// Package engine drives the relational-to-graph synchronization run.
//
// A run moves through four phases. Setup declares the canonical constraints
// and indexes. Node sync pages each entity type out of the relational
// source, maps rows to node specs, and merges them in batches, with one
// pipeline per entity type fanned out across a bounded worker pool.
// Relationship sync is a barrier phase that derives edges from node
// properties after every pipeline has finished. Analysis closes the run
// with read-only duplicate and orphan checks.
//
// Every write is an idempotent MERGE keyed on id, so re-running a sync
// converges instead of duplicating. The destructive exception is the
// Resolver, which collapses duplicate groups on explicit request only.
package engine
