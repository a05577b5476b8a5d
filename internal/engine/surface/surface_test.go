package surface

import (
	"errors"
	"testing"

	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

const eps = 1e-5

func near(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.Dot(d) < eps*eps
}

func floorSheet(t *testing.T, w, h int) *mesh.Buffer {
	t.Helper()
	buf, err := mesh.GenerateSheet(mesh.SheetSpec{Width: w, Height: h, Dim1: math.Right, Dim2: math.Forward})
	if err != nil {
		t.Fatalf("GenerateSheet failed: %v", err)
	}
	return buf
}

func TestSheetNormalsFaceUp(t *testing.T) {
	m, err := Build(floorSheet(t, 4, 3), NormalsSmooth)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(m.Vertices) != 20 {
		t.Errorf("expected shared vertices to be kept, got %d", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if !near(math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}, math.Up) {
			t.Errorf("vertex %d normal %v, want +Y", i, v.Normal)
		}
		if !near(math.Vec3{X: v.Tangent[0], Y: v.Tangent[1], Z: v.Tangent[2]}, math.Right) {
			t.Errorf("vertex %d tangent %v, want +X", i, v.Tangent)
		}
	}
}

func TestCubeNormalsStayHard(t *testing.T) {
	buf, err := mesh.GenerateCubes(mesh.NewCubeSpec(2, 1, 1))
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	normals := Normals(buf)
	for i, n := range normals {
		want := mesh.Face((i % mesh.VerticesPerCube) / mesh.VerticesPerFace).Normal()
		if !near(n, want) {
			t.Errorf("vertex %d normal %v, want %v", i, n, want)
		}
	}
}

func TestSharedCubeNormalsAreSmoothed(t *testing.T) {
	spec := mesh.NewCubeSpec(1, 1, 1)
	spec.Vertices = mesh.VerticesShared
	buf, err := mesh.GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}

	// Corner vertices average three faces and point away from the centre.
	center := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	for i, n := range Normals(buf) {
		out := buf.Positions[i].Sub(center)
		if n.Dot(out) <= 0 {
			t.Errorf("vertex %d normal %v points inward", i, n)
		}
		if n.X == 0 && n.Y == 0 || n.Y == 0 && n.Z == 0 || n.X == 0 && n.Z == 0 {
			t.Errorf("vertex %d normal %v is axis-aligned, expected a blend", i, n)
		}
	}
}

func TestFlatModeUnshares(t *testing.T) {
	buf := floorSheet(t, 2, 2)
	m, err := Build(buf, NormalsFlat)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(m.Vertices) != len(buf.Indices) {
		t.Errorf("expected %d vertices, got %d", len(buf.Indices), len(m.Vertices))
	}
	for i, idx := range m.Indices {
		if idx != uint32(i) {
			t.Fatalf("index %d = %d, expected sequential indices", i, idx)
		}
	}
	for i, v := range m.Vertices {
		src := buf.Positions[buf.Indices[i]]
		if v.Position != src.Array() {
			t.Errorf("vertex %d position %v, want %v", i, v.Position, src)
		}
	}
}

func TestBounds(t *testing.T) {
	spec := mesh.NewCubeSpec(2, 3, 2)
	spec.Offset = math.Vec3{X: -1, Y: 0, Z: 5}
	buf, err := mesh.GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	m, err := Build(buf, NormalsSmooth)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := Bounds{Min: math.Vec3{X: -1, Y: 0, Z: 5}, Max: math.Vec3{X: 1, Y: 3, Z: 7}}
	if m.Bounds != want {
		t.Errorf("bounds %v, want %v", m.Bounds, want)
	}
	if m.Bounds.Center() != (math.Vec3{X: 0, Y: 1.5, Z: 6}) {
		t.Errorf("unexpected center %v", m.Bounds.Center())
	}
	if ComputeBounds(nil) != (Bounds{}) {
		t.Error("empty input should give a zero box")
	}
}

func TestFloatsLayout(t *testing.T) {
	m, err := Build(floorSheet(t, 1, 1), NormalsSmooth)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	f := m.Floats()
	if len(f) != 4*VertexFloats {
		t.Fatalf("expected %d floats, got %d", 4*VertexFloats, len(f))
	}
	// Vertex 3 is (1, 0, 1) with uv (1, 1).
	v := f[3*VertexFloats:]
	if v[OffsetPosition] != 1 || v[OffsetPosition+2] != 1 {
		t.Errorf("unexpected position %v", v[:3])
	}
	if v[OffsetNormal+1] < 1-eps {
		t.Errorf("unexpected normal %v", v[OffsetNormal:OffsetNormal+3])
	}
	if v[OffsetTexCoord] != 1 || v[OffsetTexCoord+1] != 1 {
		t.Errorf("unexpected uv %v", v[OffsetTexCoord:OffsetTexCoord+2])
	}
}

func TestBuildRejectsMalformed(t *testing.T) {
	if _, err := Build(mesh.Allocate(2, 3), NormalsSmooth); !errors.Is(err, mesh.ErrMalformedBuffer) {
		t.Errorf("expected ErrMalformedBuffer, got %v", err)
	}
}

func TestDegenerateFallbacks(t *testing.T) {
	// Collinear basis vectors give zero-area triangles.
	buf, err := mesh.GenerateSheet(mesh.SheetSpec{Width: 1, Height: 1, Dim1: math.Right, Dim2: math.Right})
	if err != nil {
		t.Fatalf("GenerateSheet failed: %v", err)
	}
	m, err := Build(buf, NormalsSmooth)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, v := range m.Vertices {
		if v.Normal != math.Up.Array() {
			t.Errorf("vertex %d: expected +Y fallback normal, got %v", i, v.Normal)
		}
		tan := math.Vec3{X: v.Tangent[0], Y: v.Tangent[1], Z: v.Tangent[2]}
		if d := tan.Dot(math.Up); d > eps || d < -eps {
			t.Errorf("vertex %d: tangent %v not perpendicular to normal", i, tan)
		}
	}
}
