package mesh

import (
	"fmt"
	gomath "math"
)

// MaxIndex16 is the largest vertex index a 16-bit index buffer can address.
const MaxIndex16 = gomath.MaxUint16

// CapacityWarning reports a vertex count that exceeds 16-bit index range.
// It is advisory: generation still completes.
type CapacityWarning struct {
	VertexCount int
	Limit       int
}

func (w *CapacityWarning) Error() string {
	return fmt.Sprintf("vertex count %d exceeds the 16-bit index limit of %d; use 32-bit indices", w.VertexCount, w.Limit)
}

// CheckVertexLimit returns a warning if vertexCount exceeds MaxIndex16.
func CheckVertexLimit(vertexCount int) *CapacityWarning {
	if vertexCount <= MaxIndex16 {
		return nil
	}
	return &CapacityWarning{VertexCount: vertexCount, Limit: MaxIndex16}
}
