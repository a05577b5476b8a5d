package mesh

import (
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// UVMode selects how sheet texture coordinates relate to the basis vectors.
type UVMode int

const (
	// UVScaled scales UVs by the basis vector lengths, so longer basis
	// vectors tile the texture more often.
	UVScaled UVMode = iota
	// UVUnit uses the grid coordinates directly.
	UVUnit
)

func (m UVMode) String() string {
	switch m {
	case UVScaled:
		return "scaled"
	case UVUnit:
		return "unit"
	default:
		return fmt.Sprintf("UVMode(%d)", int(m))
	}
}

// ParseUVMode parses "scaled" or "unit".
func ParseUVMode(s string) (UVMode, error) {
	switch s {
	case "scaled", "":
		return UVScaled, nil
	case "unit":
		return UVUnit, nil
	}
	return 0, fmt.Errorf("unknown uv mode %q", s)
}

// SheetSpec describes a flat Width x Height quad grid spanned by Dim1 and Dim2.
// Dim1 and Dim2 should be non-zero and non-collinear; degenerate sheets are
// generated as-is.
type SheetSpec struct {
	Width  int
	Height int
	Dim1   math.Vec3
	Dim2   math.Vec3
	Offset math.Vec3
	UVMode UVMode
}

// NewSheetSpec returns a spec in the XY plane with unit basis vectors.
func NewSheetSpec(width, height int) SheetSpec {
	return SheetSpec{
		Width:  width,
		Height: height,
		Dim1:   math.Right,
		Dim2:   math.Up,
	}
}

// VertexCount returns (W+1)*(H+1).
func (s SheetSpec) VertexCount() int {
	return (s.Width + 1) * (s.Height + 1)
}

// IndexCount returns 6 indices per quad.
func (s SheetSpec) IndexCount() int {
	return s.Width * s.Height * 2 * TriangleLength
}

// Validate rejects non-positive grid counts.
func (s SheetSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: sheet %dx%d", ErrInvalidDimension, s.Width, s.Height)
	}
	return nil
}

// Quad corner offsets relative to a cell's bottom-left vertex, for a row
// stride of W+1. Both triangles wind the same way.
func sheetQuad(width int) (a, b [3]uint32) {
	w := uint32(width)
	return [3]uint32{0, w + 2, 1}, [3]uint32{0, w + 1, w + 2}
}

// GenerateSheet builds a sheet with vertices shared between adjacent quads.
// Vertex (x, y) has index x + y*(W+1); quad (x, y) occupies index slots
// 6*(x + y*W) through 6*(x + y*W)+5.
func GenerateSheet(spec SheetSpec) (*Buffer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	buf := Allocate(spec.VertexCount(), spec.IndexCount())
	buf.Warning = CheckVertexLimit(spec.VertexCount())

	createSheetVertices(buf, spec)
	createSheetTriangles(buf, spec.Width, spec.Height)

	return buf, nil
}

func createSheetVertices(buf *Buffer, spec SheetSpec) {
	uScale, vScale := float32(1), float32(1)
	if spec.UVMode == UVScaled {
		uScale = spec.Dim1.Length()
		vScale = spec.Dim2.Length()
	}

	for y := 0; y <= spec.Height; y++ {
		fy := float32(y)
		for x := 0; x <= spec.Width; x++ {
			fx := float32(x)
			index := x + y*(spec.Width+1)

			buf.Positions[index] = spec.Dim1.Scale(fx).Add(spec.Dim2.Scale(fy)).Add(spec.Offset)
			buf.UVs[index] = math.Vec2{X: uScale * fx, Y: vScale * fy}
		}
	}
}

func createSheetTriangles(buf *Buffer, width, height int) {
	quadA, quadB := sheetQuad(width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := uint32(x + y*(width+1))
			slot := (x + y*width) * 2 * TriangleLength

			for p := 0; p < TriangleLength; p++ {
				buf.Indices[slot+p] = base + quadA[p]
				buf.Indices[slot+TriangleLength+p] = base + quadB[p]
			}
		}
	}
}
