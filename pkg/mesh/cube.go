package mesh

import (
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// Per-cube budgets in duplicated-vertex mode.
const (
	FaceCount       = 6
	VerticesPerFace = 4
	VerticesPerCube = FaceCount * VerticesPerFace
	IndicesPerFace  = 2 * TriangleLength
	IndicesPerCube  = FaceCount * IndicesPerFace
)

// Face identifies one side of a unit cube, in emission order.
type Face int

const (
	FaceBottom Face = iota
	FaceBack
	FaceRight
	FaceFront
	FaceLeft
	FaceTop
)

var faceNames = [FaceCount]string{"bottom", "back", "right", "front", "left", "top"}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() math.Vec3 {
	return faceNormals[f]
}

var faceNormals = [FaceCount]math.Vec3{
	FaceBottom: {0, -1, 0},
	FaceBack:   {0, 0, 1},
	FaceRight:  {1, 0, 0},
	FaceFront:  {0, 0, -1},
	FaceLeft:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
}

// faceCorners lists each face's corners relative to the cube's minimum
// corner. With faceTriangles, (p1-p0)x(p2-p0) points along the face normal.
// Corner order also fixes the UV mapping; do not reorder.
var faceCorners = [FaceCount][VerticesPerFace]math.Vec3{
	FaceBottom: {{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}},
	FaceBack:   {{0, 0, 1}, {0, 1, 1}, {1, 0, 1}, {1, 1, 1}},
	FaceRight:  {{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1}},
	FaceFront:  {{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	FaceLeft:   {{0, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 1, 1}},
	FaceTop:    {{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1}},
}

// faceTriangles indexes a face's own four corners.
var faceTriangles = [IndicesPerFace]uint32{0, 3, 1, 0, 2, 3}

// VertexMode selects how cube vertices are shared.
type VertexMode int

const (
	// VerticesDuplicated gives every face its own four vertices, so faces
	// carry independent UVs and recomputed normals stay hard-edged.
	VerticesDuplicated VertexMode = iota
	// VerticesShared uses one vertex per lattice point. UVs cannot follow
	// faces and recomputed normals are smoothed across edges.
	VerticesShared
)

func (m VertexMode) String() string {
	switch m {
	case VerticesDuplicated:
		return "duplicated"
	case VerticesShared:
		return "shared"
	default:
		return fmt.Sprintf("VertexMode(%d)", int(m))
	}
}

// ParseVertexMode parses "duplicated" or "shared".
func ParseVertexMode(s string) (VertexMode, error) {
	switch s {
	case "duplicated", "":
		return VerticesDuplicated, nil
	case "shared":
		return VerticesShared, nil
	}
	return 0, fmt.Errorf("unknown vertex mode %q", s)
}

// CubeSpec describes a Width x Height x Depth lattice of unit cubes whose
// minimum corner sits at Offset.
type CubeSpec struct {
	Width    int
	Height   int
	Depth    int
	Offset   math.Vec3
	Vertices VertexMode
	UVs      *FaceUVTemplate // nil selects DefaultFaceUVs
}

// NewCubeSpec returns a duplicated-vertex spec with the default UV template.
func NewCubeSpec(width, height, depth int) CubeSpec {
	return CubeSpec{Width: width, Height: height, Depth: depth}
}

// CubeCount returns W*H*D.
func (s CubeSpec) CubeCount() int {
	return s.Width * s.Height * s.Depth
}

// VertexCount returns the number of vertices GenerateCubes emits.
func (s CubeSpec) VertexCount() int {
	if s.Vertices == VerticesShared {
		return (s.Width + 1) * (s.Height + 1) * (s.Depth + 1)
	}
	return s.CubeCount() * VerticesPerCube
}

// IndexCount returns 36 indices per cube in either mode.
func (s CubeSpec) IndexCount() int {
	return s.CubeCount() * IndicesPerCube
}

// Validate rejects non-positive grid counts.
func (s CubeSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Depth <= 0 {
		return fmt.Errorf("%w: cubes %dx%dx%d", ErrInvalidDimension, s.Width, s.Height, s.Depth)
	}
	return nil
}

// GenerateCubes builds the lattice. In duplicated mode cube (x, y, z) has
// linear index c = x + y*W + z*W*H, owns vertices [24c, 24c+24) and index
// slots [36c, 36c+36).
func GenerateCubes(spec CubeSpec) (*Buffer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	buf := Allocate(spec.VertexCount(), spec.IndexCount())
	buf.Warning = CheckVertexLimit(spec.VertexCount())

	if spec.Vertices == VerticesShared {
		createSharedLattice(buf, spec)
		return buf, nil
	}

	uvs := spec.UVs
	if uvs == nil {
		def := DefaultFaceUVs()
		uvs = &def
	}

	for z := 0; z < spec.Depth; z++ {
		for y := 0; y < spec.Height; y++ {
			for x := 0; x < spec.Width; x++ {
				c := x + y*spec.Width + z*spec.Width*spec.Height
				origin := spec.Offset.Add(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
				createCube(buf, c, origin, uvs)
			}
		}
	}

	return buf, nil
}

func createCube(buf *Buffer, cube int, origin math.Vec3, uvs *FaceUVTemplate) {
	vertexIndex := cube * VerticesPerCube
	slot := cube * IndicesPerCube

	for j := range FaceCount {
		faceBase := j * VerticesPerFace

		for k := 0; k < VerticesPerFace; k++ {
			buf.Positions[vertexIndex+faceBase+k] = origin.Add(faceCorners[j][k])
			buf.UVs[vertexIndex+faceBase+k] = uvs[faceBase+k]
		}

		for i, corner := range faceTriangles {
			buf.Indices[slot+j*IndicesPerFace+i] = uint32(vertexIndex+faceBase) + corner
		}
	}
}
