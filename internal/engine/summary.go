package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// PhaseStatus is the terminal state of one run phase.
type PhaseStatus string

const (
	// PhaseCompleted marks a phase that ran to the end.
	PhaseCompleted PhaseStatus = "completed"
	// PhaseFailed marks a phase that aborted the run.
	PhaseFailed PhaseStatus = "failed"
	// PhaseSkipped marks a phase the configuration turned off or an earlier
	// failure prevented.
	PhaseSkipped PhaseStatus = "skipped"
)

// PhaseResult records one phase's outcome for the run report.
type PhaseResult struct {
	Phase    Phase         `json:"phase" yaml:"phase"`
	Status   PhaseStatus   `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunSummary aggregates counters across concurrent pipelines. All additions
// are atomic; Snapshot returns a plain copy for rendering. The zero value is
// not usable; construct with NewRunSummary so the start time is set.
type RunSummary struct {
	runID   types.ID
	started time.Time

	rowsRead             atomic.Int64
	nodesMapped          atomic.Int64
	mappingSkipped       atomic.Int64
	nodesWritten         atomic.Int64
	writeConflicts       atomic.Int64
	relationshipsCreated atomic.Int64
	duplicateGroups      atomic.Int64
	orphans              atomic.Int64

	mu     sync.Mutex
	phases []PhaseResult
}

// NewRunSummary creates a summary with a fresh run identity and the clock
// started.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		runID:   types.NewID(),
		started: time.Now(),
	}
}

// RunID returns the identity assigned to this run.
func (s *RunSummary) RunID() types.ID {
	return s.runID
}

// AddRowsRead counts rows fetched from the source.
func (s *RunSummary) AddRowsRead(n int) {
	s.rowsRead.Add(int64(n))
}

// AddNodesMapped counts rows successfully mapped to node specs.
func (s *RunSummary) AddNodesMapped(n int) {
	s.nodesMapped.Add(int64(n))
}

// AddMappingSkipped counts rows skipped for mapping errors.
func (s *RunSummary) AddMappingSkipped(n int) {
	s.mappingSkipped.Add(int64(n))
}

// AddNodesWritten counts node specs merged into the graph.
func (s *RunSummary) AddNodesWritten(n int) {
	s.nodesWritten.Add(int64(n))
}

// AddWriteConflicts counts records rejected by uniqueness constraints.
func (s *RunSummary) AddWriteConflicts(n int) {
	s.writeConflicts.Add(int64(n))
}

// AddRelationshipsCreated counts edges created by the relationship phase.
func (s *RunSummary) AddRelationshipsCreated(n int) {
	s.relationshipsCreated.Add(int64(n))
}

// AddDuplicateGroups counts duplicate groups found by analysis.
func (s *RunSummary) AddDuplicateGroups(n int) {
	s.duplicateGroups.Add(int64(n))
}

// AddOrphans counts orphaned nodes found by analysis.
func (s *RunSummary) AddOrphans(n int) {
	s.orphans.Add(int64(n))
}

// RecordPhase appends one phase's outcome to the run report.
func (s *RunSummary) RecordPhase(phase Phase, status PhaseStatus, d time.Duration, err error) {
	result := PhaseResult{
		Phase:    phase,
		Status:   status,
		Duration: d,
	}
	if err != nil {
		result.Error = err.Error()
	}
	s.mu.Lock()
	s.phases = append(s.phases, result)
	s.mu.Unlock()
}

// SummarySnapshot is an immutable copy of the run counters and phase results,
// shaped for CLI and log rendering.
type SummarySnapshot struct {
	RunID                string        `json:"run_id" yaml:"run_id"`
	Status               string        `json:"status" yaml:"status"`
	RowsRead             int64         `json:"rows_read" yaml:"rows_read"`
	NodesMapped          int64         `json:"nodes_mapped" yaml:"nodes_mapped"`
	MappingSkipped       int64         `json:"mapping_skipped" yaml:"mapping_skipped"`
	NodesWritten         int64         `json:"nodes_written" yaml:"nodes_written"`
	WriteConflicts       int64         `json:"write_conflicts" yaml:"write_conflicts"`
	RelationshipsCreated int64         `json:"relationships_created" yaml:"relationships_created"`
	DuplicateGroups      int64         `json:"duplicate_groups" yaml:"duplicate_groups"`
	Orphans              int64         `json:"orphans" yaml:"orphans"`
	Elapsed              time.Duration `json:"elapsed" yaml:"elapsed"`
	Phases               []PhaseResult `json:"phases" yaml:"phases"`
}

// Snapshot returns a point-in-time copy of the counters. The overall status
// is failed when any recorded phase failed.
func (s *RunSummary) Snapshot() SummarySnapshot {
	s.mu.Lock()
	phases := make([]PhaseResult, len(s.phases))
	copy(phases, s.phases)
	s.mu.Unlock()

	status := string(PhaseCompleted)
	for _, p := range phases {
		if p.Status == PhaseFailed {
			status = string(PhaseFailed)
			break
		}
	}

	return SummarySnapshot{
		RunID:                s.runID.String(),
		Status:               status,
		RowsRead:             s.rowsRead.Load(),
		NodesMapped:          s.nodesMapped.Load(),
		MappingSkipped:       s.mappingSkipped.Load(),
		NodesWritten:         s.nodesWritten.Load(),
		WriteConflicts:       s.writeConflicts.Load(),
		RelationshipsCreated: s.relationshipsCreated.Load(),
		DuplicateGroups:      s.duplicateGroups.Load(),
		Orphans:              s.orphans.Load(),
		Elapsed:              time.Since(s.started),
		Phases:               phases,
	}
}
