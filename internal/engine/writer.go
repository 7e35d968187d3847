package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/queries"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// defaultBackoff is the first retry delay; each retry doubles it.
const defaultBackoff = 500 * time.Millisecond

// Writer applies mapped node specs to the graph store. A batch goes out as a
// single UNWIND..MERGE transaction; transient failures retry with exponential
// backoff, and a constraint violation inside a batch demotes it to per-record
// merges so one bad row cannot sink its batchmates.
type Writer struct {
	client     graph.GraphClient
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
}

// NewWriter creates a Writer. maxRetries counts retries after the initial
// attempt; negative values are treated as zero.
func NewWriter(client graph.GraphClient, maxRetries int, logger *slog.Logger) *Writer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		client:     client,
		logger:     logger,
		maxRetries: maxRetries,
		backoff:    defaultBackoff,
	}
}

// Apply upserts one batch of specs, all sharing a label. It returns how many
// records landed and how many were dropped on conflicts. The error is non-nil
// only when the batch as a whole could not be applied: retries exhausted, a
// non-retryable store error, or context cancellation.
func (w *Writer) Apply(ctx context.Context, label string, specs []schema.NodeSpec) (applied, failed int, err error) {
	if len(specs) == 0 {
		return 0, 0, nil
	}

	stmt, err := queries.BatchMerge(label)
	if err != nil {
		return 0, 0, err
	}

	rows := make([]any, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, map[string]any{"id": spec.Key, "props": spec.Props})
	}
	params := map[string]any{"rows": rows}

	for attempt := 0; ; attempt++ {
		_, werr := w.client.Write(ctx, stmt, params)
		if werr == nil {
			return len(specs), 0, nil
		}

		if graph.IsConstraintViolation(werr) {
			w.logger.Warn("batch merge hit a constraint violation; retrying records individually",
				"label", label,
				"batch_size", len(specs),
			)
			return w.applyPerRecord(ctx, label, specs)
		}

		if !types.IsRetryable(werr) {
			return 0, 0, werr
		}

		if attempt >= w.maxRetries {
			return 0, 0, types.WrapError(ErrCodeRetriesExhausted,
				fmt.Sprintf("batch merge for %s failed after %d attempts", label, attempt+1), werr)
		}

		delay := w.backoff * time.Duration(1<<attempt)
		w.logger.Warn("batch merge failed; retrying",
			"label", label,
			"attempt", attempt+1,
			"delay", delay,
			"error", werr,
		)
		if err := sleep(ctx, delay); err != nil {
			return 0, 0, err
		}
	}
}

// applyPerRecord merges each spec on its own after a batch-level constraint
// violation. Records that still violate are dropped and counted; any other
// store error aborts the fallback.
func (w *Writer) applyPerRecord(ctx context.Context, label string, specs []schema.NodeSpec) (applied, failed int, err error) {
	stmt, err := queries.SingleMerge(label)
	if err != nil {
		return 0, 0, err
	}

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return applied, failed, err
		}

		_, werr := w.client.Write(ctx, stmt, map[string]any{"id": spec.Key, "props": spec.Props})
		if werr == nil {
			applied++
			continue
		}
		if graph.IsConstraintViolation(werr) {
			failed++
			conflict := types.WrapError(ErrCodeWriteConflict,
				fmt.Sprintf("record %s dropped on constraint violation", spec.Key), werr)
			w.logger.Warn("record dropped",
				"label", label,
				"key", spec.Key,
				"error", conflict,
			)
			continue
		}
		return applied, failed, werr
	}
	return applied, failed, nil
}

// sleep waits for the given delay or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
