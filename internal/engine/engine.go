package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/source"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// batchReader is the engine's view of a paginated source cursor.
type batchReader interface {
	Next(ctx context.Context) (source.Batch, error)
}

// Engine drives a full synchronization run: schema setup, one node pipeline
// per entity type through a bounded worker pool, relationship derivation
// after every pipeline finishes, and a closing consistency analysis.
type Engine struct {
	db     *source.DB
	client graph.GraphClient
	cfg    *config.Config
	logger *slog.Logger

	observer Observer
	mapper   *Mapper
	writer   *Writer
	schemas  *SchemaManager
	links    *RelationshipBuilder
	analyzer *Analyzer

	// newReader is swapped in tests to feed synthetic batches.
	newReader func(et schema.EntityType, batchSize int) (batchReader, error)
}

// New creates an Engine over an open source database and a connected graph
// client. cfg must be a validated configuration.
func New(db *source.DB, client graph.GraphClient, cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		db:       db,
		client:   client,
		cfg:      cfg,
		logger:   logger,
		observer: NewSlogObserver(logger),
		mapper:   NewMapper(),
		writer:   NewWriter(client, cfg.Graph.MaxRetries, logger),
		schemas:  NewSchemaManager(client, logger),
		links:    NewRelationshipBuilder(client, logger),
		analyzer: NewAnalyzer(client, logger),
	}
	e.newReader = func(et schema.EntityType, batchSize int) (batchReader, error) {
		return source.NewReader(e.db, et, batchSize)
	}
	return e
}

// Run executes the four phases in order and returns the run report. Setup,
// node sync and relationship failures abort the run; analysis failures and
// findings are reported but never sink a run whose writes already landed.
func (e *Engine) Run(ctx context.Context) (SummarySnapshot, error) {
	summary := NewRunSummary()
	logger := e.logger.With("run_id", summary.RunID().String())
	logger.Info("sync run started")

	if err := e.runPhase(summary, PhaseSetup, "declaring constraints and indexes", func() error {
		return e.schemas.EnsureSchema(ctx)
	}); err != nil {
		skipPhases(summary, PhaseNodeSync, PhaseRelationships, PhaseAnalysis)
		return summary.Snapshot(), types.WrapError(ErrCodeRunAborted, "run aborted during setup", err)
	}

	entityTypes, err := e.entityTypes()
	if err != nil {
		skipPhases(summary, PhaseNodeSync, PhaseRelationships, PhaseAnalysis)
		return summary.Snapshot(), err
	}

	if err := e.runPhase(summary, PhaseNodeSync, "syncing entity pipelines", func() error {
		return e.syncAll(ctx, entityTypes, summary)
	}); err != nil {
		skipPhases(summary, PhaseRelationships, PhaseAnalysis)
		return summary.Snapshot(), types.WrapError(ErrCodeRunAborted, "run aborted during node sync", err)
	}

	if err := e.runPhase(summary, PhaseRelationships, "deriving relationships", func() error {
		created, err := e.links.LinkAll(ctx)
		summary.AddRelationshipsCreated(created)
		return err
	}); err != nil {
		skipPhases(summary, PhaseAnalysis)
		return summary.Snapshot(), types.WrapError(ErrCodeRunAborted, "run aborted during relationship sync", err)
	}

	if e.cfg.Sync.SkipAnalysis {
		summary.RecordPhase(PhaseAnalysis, PhaseSkipped, 0, nil)
	} else if err := e.runPhase(summary, PhaseAnalysis, "scanning for duplicates and orphans", func() error {
		report, err := e.analyzer.Analyze(ctx)
		if err != nil {
			return err
		}
		summary.AddDuplicateGroups(len(report.Duplicates))
		summary.AddOrphans(report.OrphanCount())
		return nil
	}); err != nil {
		logger.Error("consistency analysis failed", "error", err)
	}

	snap := summary.Snapshot()
	logger.Info("sync run finished", "status", snap.Status, "elapsed", snap.Elapsed)
	return snap, nil
}

// syncAll runs one pipeline per entity type through a semaphore-bounded pool.
// The first pipeline error cancels the shared context; remaining pipelines
// drain at their next batch boundary.
func (e *Engine) syncAll(ctx context.Context, entityTypes []schema.EntityType, summary *RunSummary) error {
	workers := e.cfg.Sync.Workers
	if workers < 1 {
		workers = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for _, et := range entityTypes {
		wg.Add(1)
		go func(et schema.EntityType) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-runCtx.Done():
				return
			}
			defer func() { <-sem }()

			if err := e.syncEntity(runCtx, et, summary); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(et)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// syncEntity drains one entity type's source cursor batch by batch: read, map
// (skipping bad rows), write. At most one batch is in flight at a time, so
// writes land in source order.
func (e *Engine) syncEntity(ctx context.Context, et schema.EntityType, summary *RunSummary) error {
	e.observer.PipelineStarted(et)

	reader, err := e.newReader(et, e.cfg.Source.BatchSize)
	if err != nil {
		return err
	}

	label := et.Label()
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := reader.Next(ctx)
		if err != nil {
			return err
		}
		if len(batch.Rows) == 0 {
			break
		}
		summary.AddRowsRead(len(batch.Rows))

		specs := make([]schema.NodeSpec, 0, len(batch.Rows))
		for _, row := range batch.Rows {
			spec, err := e.mapper.Map(row)
			if err != nil {
				summary.AddMappingSkipped(1)
				e.observer.RecordSkipped(et, rowKey(row), err)
				continue
			}
			specs = append(specs, spec)
		}
		summary.AddNodesMapped(len(specs))

		applied, failed, err := e.writer.Apply(ctx, label, specs)
		summary.AddNodesWritten(applied)
		summary.AddWriteConflicts(failed)
		if err != nil {
			return fmt.Errorf("%s pipeline aborted at offset %d: %w", et, batch.Offset, err)
		}
		e.observer.BatchApplied(et, batch.Offset, applied, failed)
		total += len(batch.Rows)
	}

	e.observer.PipelineCompleted(et, total)
	return nil
}

// entityTypes resolves the configured subset, preserving canonical order
// regardless of how the configuration lists it.
func (e *Engine) entityTypes() ([]schema.EntityType, error) {
	if len(e.cfg.Sync.EntityTypes) == 0 {
		return schema.AllEntityTypes(), nil
	}

	selected := make(map[schema.EntityType]bool, len(e.cfg.Sync.EntityTypes))
	for _, s := range e.cfg.Sync.EntityTypes {
		et, err := schema.ParseEntityType(s)
		if err != nil {
			return nil, err
		}
		selected[et] = true
	}

	ordered := make([]schema.EntityType, 0, len(selected))
	for _, et := range schema.AllEntityTypes() {
		if selected[et] {
			ordered = append(ordered, et)
		}
	}
	return ordered, nil
}

// runPhase times one phase and records its outcome on the summary.
func (e *Engine) runPhase(summary *RunSummary, phase Phase, detail string, fn func() error) error {
	e.observer.PhaseStarted(phase, detail)
	start := time.Now()
	if err := fn(); err != nil {
		summary.RecordPhase(phase, PhaseFailed, time.Since(start), err)
		return err
	}
	summary.RecordPhase(phase, PhaseCompleted, time.Since(start), nil)
	e.observer.PhaseCompleted(phase, detail)
	return nil
}

// skipPhases records phases an earlier failure or the configuration kept
// from running.
func skipPhases(summary *RunSummary, phases ...Phase) {
	for _, p := range phases {
		summary.RecordPhase(p, PhaseSkipped, 0, nil)
	}
}

// rowKey extracts a row's key for skip reports without failing on rows that
// cannot be mapped.
func rowKey(row schema.Node) string {
	if row == nil {
		return ""
	}
	return row.Spec().Key
}
