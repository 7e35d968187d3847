package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// DefaultBatchSize is the page size used when the configuration does not
// set one.
const DefaultBatchSize = 50

// Batch is one page of scanned rows for a single entity type. Offset is the
// position of the first row within the full ORDER BY id sequence.
type Batch struct {
	EntityType schema.EntityType
	Offset     int
	Rows       []schema.Node
}

// Reader pulls bounded batches of one entity type, ordered by primary key
// ascending via LIMIT/OFFSET. The stable order guarantees no row is skipped
// or duplicated across page boundaries as long as the source is not mutated
// between pages; syncing a live table is a documented limitation.
//
// A Reader owns its cursor and is not safe for concurrent use. Restarting
// means constructing a fresh Reader, never rewinding one.
type Reader struct {
	db        *DB
	entity    schema.EntityType
	batchSize int
	offset    int
	done      bool
	query     string
}

// NewReader creates a Reader for one entity type. A batchSize of zero or
// less falls back to DefaultBatchSize.
func NewReader(db *DB, et schema.EntityType, batchSize int) (*Reader, error) {
	if err := et.Validate(); err != nil {
		return nil, types.WrapError(types.SOURCE_QUERY_FAILED, "invalid reader entity type", err)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	cols, err := Columns(et)
	if err != nil {
		return nil, err
	}

	query := db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id LIMIT ? OFFSET ?",
		strings.Join(cols, ", "), et.Table(),
	))

	return &Reader{
		db:        db,
		entity:    et,
		batchSize: batchSize,
		query:     query,
	}, nil
}

// EntityType returns the entity type this reader pages through.
func (r *Reader) EntityType() schema.EntityType {
	return r.entity
}

// Offset returns the number of rows consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

// Next returns the next batch. An empty batch with a nil error means the
// table is exhausted; further calls keep returning empty batches.
func (r *Reader) Next(ctx context.Context) (Batch, error) {
	batch := Batch{EntityType: r.entity, Offset: r.offset}
	if r.done {
		return batch, nil
	}

	rows, err := r.db.conn.QueryContext(ctx, r.query, r.batchSize, r.offset)
	if err != nil {
		return batch, types.WrapRetryableError(types.SOURCE_QUERY_FAILED,
			fmt.Sprintf("failed to read %s batch at offset %d", r.entity, r.offset), err)
	}
	defer rows.Close()

	for rows.Next() {
		node, err := scanNode(r.entity, rows)
		if err != nil {
			return batch, err
		}
		batch.Rows = append(batch.Rows, node)
	}
	if err := rows.Err(); err != nil {
		return batch, types.WrapRetryableError(types.SOURCE_QUERY_FAILED,
			fmt.Sprintf("failed to iterate %s batch at offset %d", r.entity, r.offset), err)
	}

	r.offset += len(batch.Rows)
	if len(batch.Rows) < r.batchSize {
		r.done = true
	}

	return batch, nil
}
