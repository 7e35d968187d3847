package engine

import (
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/schema"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Mapper converts scanned source rows into merge-ready node specs. The
// transform itself is pure; all scanning stays in the source package and all
// property shaping in the schema package, so this seam only validates and
// assembles.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts one source row into a NodeSpec. A row with a missing key or
// tenant scope returns a non-retryable mapping error; callers skip the row
// and continue the batch.
func (m *Mapper) Map(row schema.Node) (schema.NodeSpec, error) {
	if row == nil {
		return schema.NodeSpec{}, types.NewError(ErrCodeMappingFailed, "cannot map nil row")
	}

	if err := row.Validate(); err != nil {
		return schema.NodeSpec{}, types.WrapError(ErrCodeMappingFailed, "row failed validation", err)
	}

	spec := row.Spec()
	if err := spec.Validate(); err != nil {
		return schema.NodeSpec{}, types.WrapError(ErrCodeMappingFailed, "mapped spec is incomplete", err)
	}

	return spec, nil
}
