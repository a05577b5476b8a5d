// Package mesh builds triangulated grid meshes: flat quad sheets with shared
// vertices and cube lattices with per-face vertices.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// Mesh errors.
var (
	ErrInvalidDimension = errors.New("invalid grid dimension")
	ErrMalformedBuffer  = errors.New("malformed mesh buffer")
)

// TriangleLength is the number of indices per triangle.
const TriangleLength = 3

// Buffer holds the vertex and index arrays of a generated mesh.
// UVs[i] is the texture coordinate of Positions[i].
type Buffer struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32

	// Warning is set when the vertex count does not fit 16-bit indices.
	Warning *CapacityWarning
}

// Allocate returns a buffer with zero-filled arrays of the given sizes.
func Allocate(vertexCount, indexCount int) *Buffer {
	return &Buffer{
		Positions: make([]math.Vec3, vertexCount),
		UVs:       make([]math.Vec2, vertexCount),
		Indices:   make([]uint32, indexCount),
	}
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / TriangleLength
}

// IsValid reports whether the buffer is internally consistent.
func (b *Buffer) IsValid() bool {
	return b.Validate() == nil
}

// Validate returns the first consistency violation, wrapped in
// ErrMalformedBuffer, or nil.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrMalformedBuffer)
	}
	if len(b.Positions) < 3 {
		return fmt.Errorf("%w: %d positions, need at least 3", ErrMalformedBuffer, len(b.Positions))
	}
	if len(b.UVs) != len(b.Positions) {
		return fmt.Errorf("%w: %d uvs for %d positions", ErrMalformedBuffer, len(b.UVs), len(b.Positions))
	}
	if len(b.Indices) < 3 || len(b.Indices)%TriangleLength != 0 {
		return fmt.Errorf("%w: index count %d is not a positive multiple of 3", ErrMalformedBuffer, len(b.Indices))
	}
	n := uint32(len(b.Positions))
	for i, idx := range b.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at slot %d out of range [0, %d)", ErrMalformedBuffer, idx, i, n)
		}
	}
	return nil
}

// Indices16 narrows the index array to 16 bits. Indices above MaxIndex16
// wrap, so callers should check Warning first.
func (b *Buffer) Indices16() []uint16 {
	out := make([]uint16, len(b.Indices))
	for i, idx := range b.Indices {
		out[i] = uint16(idx)
	}
	return out
}

// Triangle returns the three positions of triangle t.
func (b *Buffer) Triangle(t int) (p0, p1, p2 math.Vec3) {
	i := t * TriangleLength
	return b.Positions[b.Indices[i]], b.Positions[b.Indices[i+1]], b.Positions[b.Indices[i+2]]
}
