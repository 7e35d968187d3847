package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/source"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errorHasCode reports whether any error in the chain carries the code.
func errorHasCode(err error, code types.ErrorCode) bool {
	return errors.Is(err, types.NewError(code, ""))
}

// stubReader feeds preset batches, then its terminal error if configured,
// then empty batches.
type stubReader struct {
	batches []source.Batch
	err     error
	pos     int
}

func (r *stubReader) Next(_ context.Context) (source.Batch, error) {
	if r.pos < len(r.batches) {
		b := r.batches[r.pos]
		r.pos++
		return b, nil
	}
	if r.err != nil {
		return source.Batch{}, r.err
	}
	return source.Batch{}, nil
}

func tenantBatch(offset int, ids ...string) source.Batch {
	rows := make([]schema.Node, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &schema.Tenant{ID: id, Name: "Tenant " + id})
	}
	return source.Batch{EntityType: schema.EntityTypeTenant, Offset: offset, Rows: rows}
}

func entityBatch(offset int, ids ...string) source.Batch {
	rows := make([]schema.Node, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &schema.Entity{ID: id, TenantID: "t1", Name: "Entity " + id})
	}
	return source.Batch{EntityType: schema.EntityTypeEntity, Offset: offset, Rows: rows}
}

// newTestEngine wires an Engine to a connected mock client and synthetic
// source batches keyed by entity type.
func newTestEngine(t *testing.T, batches map[schema.EntityType][]source.Batch) (*Engine, *graph.MockGraphClient) {
	t.Helper()

	mock := connectedMock(t)
	e := New(nil, mock, config.DefaultConfig(), testLogger())
	e.writer.backoff = 0
	e.newReader = func(et schema.EntityType, batchSize int) (batchReader, error) {
		return &stubReader{batches: batches[et]}, nil
	}
	return e, mock
}

// setupWrites is the number of schema declarations a run issues first.
func setupWrites() int {
	return len(schema.CanonicalConstraints()) + len(schema.CanonicalIndexes())
}

func TestRun_FullPipeline(t *testing.T) {
	e, mock := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1", "t2")},
		schema.EntityTypeEntity: {entityBatch(0, "e1")},
	})

	snap, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, string(PhaseCompleted), snap.Status)
	assert.Equal(t, int64(3), snap.RowsRead)
	assert.Equal(t, int64(3), snap.NodesMapped)
	assert.Equal(t, int64(3), snap.NodesWritten)
	assert.Equal(t, int64(0), snap.MappingSkipped)
	assert.Equal(t, int64(0), snap.WriteConflicts)

	require.Len(t, snap.Phases, 4)
	assert.Equal(t, PhaseSetup, snap.Phases[0].Phase)
	assert.Equal(t, PhaseNodeSync, snap.Phases[1].Phase)
	assert.Equal(t, PhaseRelationships, snap.Phases[2].Phase)
	assert.Equal(t, PhaseAnalysis, snap.Phases[3].Phase)
	for _, p := range snap.Phases {
		assert.Equal(t, PhaseCompleted, p.Status)
	}

	// Schema declarations, two node batches, seven relationship rules.
	wantWrites := setupWrites() + 2 + len(schema.CanonicalJoinRules())
	assert.Len(t, mock.GetCallsByMethod("Write"), wantWrites)

	// Two duplicate scans plus five orphan checks.
	assert.Len(t, mock.GetCallsByMethod("Query"), 7)
}

func TestRun_SkipAnalysis(t *testing.T) {
	e, mock := newTestEngine(t, nil)
	e.cfg.Sync.SkipAnalysis = true

	snap, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Phases, 4)
	assert.Equal(t, PhaseAnalysis, snap.Phases[3].Phase)
	assert.Equal(t, PhaseSkipped, snap.Phases[3].Status)
	assert.Empty(t, mock.GetCallsByMethod("Query"))
}

func TestRun_SetupFailureAbortsEverything(t *testing.T) {
	e, mock := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1")},
	})
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphWriteFailed, "socket closed"))

	snap, err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errorHasCode(err, ErrCodeRunAborted))
	assert.True(t, errorHasCode(err, graph.ErrCodeGraphSchemaFailed))

	assert.Equal(t, string(PhaseFailed), snap.Status)
	require.Len(t, snap.Phases, 4)
	assert.Equal(t, PhaseFailed, snap.Phases[0].Status)
	for _, p := range snap.Phases[1:] {
		assert.Equal(t, PhaseSkipped, p.Status)
	}

	assert.Len(t, mock.GetCallsByMethod("Write"), 1)
	assert.Equal(t, int64(0), snap.RowsRead)
}

func TestRun_WriteFailureAbortsWithOffset(t *testing.T) {
	e, mock := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1", "t2")},
	})
	for i := 0; i < setupWrites(); i++ {
		mock.AddWriteError(nil)
	}
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphInvalidQuery, "bad statement"))

	snap, err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errorHasCode(err, ErrCodeRunAborted))
	assert.True(t, errorHasCode(err, graph.ErrCodeGraphInvalidQuery))
	assert.Contains(t, err.Error(), "offset 0")

	assert.Equal(t, int64(2), snap.RowsRead)
	assert.Equal(t, int64(0), snap.NodesWritten)

	require.Len(t, snap.Phases, 4)
	assert.Equal(t, PhaseCompleted, snap.Phases[0].Status)
	assert.Equal(t, PhaseFailed, snap.Phases[1].Status)
	assert.Equal(t, PhaseSkipped, snap.Phases[2].Status)
	assert.Equal(t, PhaseSkipped, snap.Phases[3].Status)
}

func TestRun_MappingErrorSkipsRowAndContinues(t *testing.T) {
	bad := &schema.Tenant{} // no id
	batch := tenantBatch(0, "t1", "t2")
	batch.Rows = append(batch.Rows, bad)

	e, _ := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {batch},
	})

	snap, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), snap.RowsRead)
	assert.Equal(t, int64(1), snap.MappingSkipped)
	assert.Equal(t, int64(2), snap.NodesMapped)
	assert.Equal(t, int64(2), snap.NodesWritten)
	assert.Equal(t, string(PhaseCompleted), snap.Status)
}

func TestRun_ReaderFailureAborts(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.newReader = func(et schema.EntityType, batchSize int) (batchReader, error) {
		if et == schema.EntityTypeTenant {
			return &stubReader{err: types.NewError(types.SOURCE_QUERY_FAILED, "source gone")}, nil
		}
		return &stubReader{}, nil
	}

	_, err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errorHasCode(err, ErrCodeRunAborted))
	assert.True(t, errorHasCode(err, types.SOURCE_QUERY_FAILED))
}

func TestRun_AnalysisFailureDoesNotAbort(t *testing.T) {
	e, mock := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1")},
	})
	mock.SetQueryError(types.NewError(graph.ErrCodeGraphQueryFailed, "session expired"))

	snap, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), snap.NodesWritten)
	require.Len(t, snap.Phases, 4)
	assert.Equal(t, PhaseFailed, snap.Phases[3].Status)
	assert.NotEmpty(t, snap.Phases[3].Error)
	assert.Equal(t, string(PhaseFailed), snap.Status)
}

func TestRun_CancelledContext(t *testing.T) {
	e, _ := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1")},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntityTypes_SubsetKeepsCanonicalOrder(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.cfg.Sync.EntityTypes = []string{"fund", "tenant"}

	got, err := e.entityTypes()
	require.NoError(t, err)
	assert.Equal(t, []schema.EntityType{schema.EntityTypeTenant, schema.EntityTypeFund}, got)
}

func TestEntityTypes_EmptyMeansAll(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	got, err := e.entityTypes()
	require.NoError(t, err)
	assert.Equal(t, schema.AllEntityTypes(), got)
}

func TestEntityTypes_InvalidName(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.cfg.Sync.EntityTypes = []string{"widget"}

	_, err := e.entityTypes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid entity type")
}

func TestRun_ConcurrentPipelines(t *testing.T) {
	e, _ := newTestEngine(t, map[schema.EntityType][]source.Batch{
		schema.EntityTypeTenant: {tenantBatch(0, "t1")},
		schema.EntityTypeEntity: {entityBatch(0, "e1", "e2")},
	})
	e.cfg.Sync.Workers = 4

	snap, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.RowsRead)
	assert.Equal(t, int64(3), snap.NodesWritten)
	assert.Equal(t, string(PhaseCompleted), snap.Status)
}
