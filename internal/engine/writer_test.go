package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/graph"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// connectedMock returns a mock graph client in connected state.
func connectedMock(t *testing.T) *graph.MockGraphClient {
	t.Helper()
	mock := graph.NewMockGraphClient()
	require.NoError(t, mock.Connect(context.Background()))
	return mock
}

// entitySpecs builds n valid Entity specs with sequential keys.
func entitySpecs(n int) []schema.NodeSpec {
	specs := make([]schema.NodeSpec, 0, n)
	for i := 0; i < n; i++ {
		e := &schema.Entity{
			ID:       fmt.Sprintf("ent-%d", i+1),
			TenantID: "tenant-1",
			Name:     fmt.Sprintf("Entity %d", i+1),
		}
		specs = append(specs, e.Spec())
	}
	return specs
}

// fastWriter returns a writer with a backoff short enough for tests.
func fastWriter(client graph.GraphClient, maxRetries int) *Writer {
	w := NewWriter(client, maxRetries, testLogger())
	w.backoff = time.Millisecond
	return w
}

func TestWriter_EmptyBatch(t *testing.T) {
	mock := connectedMock(t)
	w := fastWriter(mock, 3)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, failed)
	assert.Empty(t, mock.GetCallsByMethod("Write"))
}

func TestWriter_BatchSuccess(t *testing.T) {
	mock := connectedMock(t)
	w := fastWriter(mock, 3)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(3))
	require.NoError(t, err)
	assert.Equal(t, 3, applied)
	assert.Equal(t, 0, failed)

	writes := mock.GetCallsByMethod("Write")
	require.Len(t, writes, 1)

	cypher := writes[0].Args[0].(string)
	assert.Contains(t, cypher, "UNWIND $rows")
	assert.Contains(t, cypher, "MERGE (n:Entity {id: row.id})")

	params := writes[0].Args[1].(map[string]any)
	rows := params["rows"].([]any)
	assert.Len(t, rows, 3)
	first := rows[0].(map[string]any)
	assert.Equal(t, "ent-1", first["id"])
}

func TestWriter_RetriesTransientThenSucceeds(t *testing.T) {
	mock := connectedMock(t)
	mock.AddWriteError(types.NewRetryableError(graph.ErrCodeGraphWriteFailed, "transient"))
	mock.AddWriteError(types.NewRetryableError(graph.ErrCodeGraphWriteFailed, "transient"))
	w := fastWriter(mock, 3)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(2))
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 0, failed)
	assert.Len(t, mock.GetCallsByMethod("Write"), 3)
}

func TestWriter_RetriesExhausted(t *testing.T) {
	mock := connectedMock(t)
	mock.SetWriteError(types.NewRetryableError(graph.ErrCodeGraphWriteFailed, "still down"))
	w := fastWriter(mock, 2)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(1))
	require.Error(t, err)
	assert.True(t, errorHasCode(err, ErrCodeRetriesExhausted))
	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, failed)

	// initial attempt plus two retries
	assert.Len(t, mock.GetCallsByMethod("Write"), 3)
}

func TestWriter_NonRetryableFailsFast(t *testing.T) {
	mock := connectedMock(t)
	mock.SetWriteError(types.NewError(graph.ErrCodeGraphInvalidQuery, "syntax error"))
	w := fastWriter(mock, 5)

	_, _, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(1))
	require.Error(t, err)
	assert.True(t, errorHasCode(err, graph.ErrCodeGraphInvalidQuery))
	assert.Len(t, mock.GetCallsByMethod("Write"), 1)
}

func TestWriter_ConstraintViolationFallsBackPerRecord(t *testing.T) {
	mock := connectedMock(t)
	// The batch write violates, then the first per-record merge violates too;
	// the remaining two records land.
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphConstraintViolation, "duplicate name"))
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphConstraintViolation, "duplicate name"))
	w := fastWriter(mock, 3)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(3))
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 1, failed)

	writes := mock.GetCallsByMethod("Write")
	require.Len(t, writes, 4)

	single := writes[1].Args[0].(string)
	assert.Contains(t, single, "MERGE (n:Entity {id: $id})")
	params := writes[1].Args[1].(map[string]any)
	assert.Equal(t, "ent-1", params["id"])
}

func TestWriter_PerRecordNonConflictAborts(t *testing.T) {
	mock := connectedMock(t)
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphConstraintViolation, "duplicate name"))
	mock.AddWriteError(types.NewError(graph.ErrCodeGraphWriteFailed, "connection reset"))
	w := fastWriter(mock, 3)

	applied, failed, err := w.Apply(context.Background(), schema.LabelEntity, entitySpecs(3))
	require.Error(t, err)
	assert.True(t, errorHasCode(err, graph.ErrCodeGraphWriteFailed))
	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, failed)
}

func TestWriter_CancelledContextStopsRetries(t *testing.T) {
	mock := connectedMock(t)
	mock.SetWriteError(types.NewRetryableError(graph.ErrCodeGraphWriteFailed, "transient"))
	w := fastWriter(mock, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := w.Apply(ctx, schema.LabelEntity, entitySpecs(1))
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mock.GetCallsByMethod("Write"), 1)
}

func TestWriter_InvalidLabel(t *testing.T) {
	mock := connectedMock(t)
	w := fastWriter(mock, 3)

	_, _, err := w.Apply(context.Background(), "Entity; DROP", entitySpecs(1))
	require.Error(t, err)
	assert.Empty(t, mock.GetCallsByMethod("Write"))
}
