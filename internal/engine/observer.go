package engine

import (
	"log/slog"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
)

// Phase identifies one stage of a sync run.
type Phase string

const (
	// PhaseSetup declares constraints and indexes.
	PhaseSetup Phase = "setup"
	// PhaseNodeSync pages rows out of the source and merges nodes.
	PhaseNodeSync Phase = "node_sync"
	// PhaseRelationships derives edges after all node pipelines finish.
	PhaseRelationships Phase = "relationships"
	// PhaseAnalysis runs the read-only consistency checks.
	PhaseAnalysis Phase = "analysis"
)

// Observer receives run progress events. Implementations must be safe for
// concurrent use; node pipelines report from worker goroutines.
type Observer interface {
	// PhaseStarted fires when a run phase begins.
	PhaseStarted(phase Phase, detail string)

	// PhaseCompleted fires when a run phase ends successfully.
	PhaseCompleted(phase Phase, detail string)

	// PipelineStarted fires when one entity type's node sync begins.
	PipelineStarted(entity schema.EntityType)

	// PipelineCompleted fires when one entity type's node sync finishes,
	// with the total number of rows it consumed.
	PipelineCompleted(entity schema.EntityType, rows int)

	// BatchApplied fires after each batch write with its source offset and
	// per-batch applied/failed counts.
	BatchApplied(entity schema.EntityType, offset, applied, failed int)

	// RecordSkipped fires when a row is dropped for a mapping error.
	RecordSkipped(entity schema.EntityType, key string, reason error)
}

// SlogObserver narrates run progress through a structured logger.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an Observer backed by logger, falling back to
// slog.Default when nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) PhaseStarted(phase Phase, detail string) {
	o.logger.Info("phase started", "phase", string(phase), "detail", detail)
}

func (o *SlogObserver) PhaseCompleted(phase Phase, detail string) {
	o.logger.Info("phase completed", "phase", string(phase), "detail", detail)
}

func (o *SlogObserver) PipelineStarted(entity schema.EntityType) {
	o.logger.Info("pipeline started", "entity_type", entity.String())
}

func (o *SlogObserver) PipelineCompleted(entity schema.EntityType, rows int) {
	o.logger.Info("pipeline completed", "entity_type", entity.String(), "rows", rows)
}

func (o *SlogObserver) BatchApplied(entity schema.EntityType, offset, applied, failed int) {
	o.logger.Debug("batch applied",
		"entity_type", entity.String(),
		"offset", offset,
		"applied", applied,
		"failed", failed,
	)
}

func (o *SlogObserver) RecordSkipped(entity schema.EntityType, key string, reason error) {
	o.logger.Warn("record skipped",
		"entity_type", entity.String(),
		"key", key,
		"error", reason,
	)
}

var _ Observer = (*SlogObserver)(nil)
