package mesh

import (
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/gridmesh/pkg/math"
)

func TestGenerateCubes_Single(t *testing.T) {
	buf, err := GenerateCubes(NewCubeSpec(1, 1, 1))
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}

	if buf.VertexCount() != 24 {
		t.Errorf("expected 24 vertices, got %d", buf.VertexCount())
	}
	if buf.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", buf.TriangleCount())
	}
	if got := buf.Indices[0:6]; !slices.Equal(got, []uint32{0, 3, 1, 0, 2, 3}) {
		t.Errorf("first face indices: got %v, want [0 3 1 0 2 3]", got)
	}
	if got := buf.Indices[30:36]; !slices.Equal(got, []uint32{20, 23, 21, 20, 22, 23}) {
		t.Errorf("last face indices: got %v, want [20 23 21 20 22 23]", got)
	}

	for i, p := range buf.Positions {
		for _, c := range p.Array() {
			if c != 0 && c != 1 {
				t.Errorf("vertex %d = %v is not a unit cube corner", i, p)
			}
		}
	}
}

func TestGenerateCubes_Counts(t *testing.T) {
	tests := []struct {
		w, h, d int
		mode    VertexMode
		verts   int
	}{
		{1, 1, 1, VerticesDuplicated, 24},
		{2, 3, 4, VerticesDuplicated, 2 * 3 * 4 * 24},
		{1, 1, 1, VerticesShared, 8},
		{2, 3, 4, VerticesShared, 3 * 4 * 5},
	}

	for _, tt := range tests {
		spec := CubeSpec{Width: tt.w, Height: tt.h, Depth: tt.d, Vertices: tt.mode}
		buf, err := GenerateCubes(spec)
		if err != nil {
			t.Fatalf("GenerateCubes(%dx%dx%d %s) failed: %v", tt.w, tt.h, tt.d, tt.mode, err)
		}
		if err := buf.Validate(); err != nil {
			t.Errorf("%dx%dx%d %s: malformed buffer: %v", tt.w, tt.h, tt.d, tt.mode, err)
		}
		if buf.VertexCount() != tt.verts {
			t.Errorf("%dx%dx%d %s: expected %d vertices, got %d", tt.w, tt.h, tt.d, tt.mode, tt.verts, buf.VertexCount())
		}
		if want := tt.w * tt.h * tt.d * 12; buf.TriangleCount() != want {
			t.Errorf("%dx%dx%d %s: expected %d triangles, got %d", tt.w, tt.h, tt.d, tt.mode, want, buf.TriangleCount())
		}
	}
}

func TestGenerateCubes_OutwardWinding(t *testing.T) {
	for _, mode := range []VertexMode{VerticesDuplicated, VerticesShared} {
		t.Run(mode.String(), func(t *testing.T) {
			spec := CubeSpec{
				Width:    2,
				Height:   3,
				Depth:    2,
				Offset:   math.Vec3{X: -4, Y: 1.5, Z: 7},
				Vertices: mode,
			}
			buf, err := GenerateCubes(spec)
			if err != nil {
				t.Fatalf("GenerateCubes failed: %v", err)
			}

			for tri := 0; tri < buf.TriangleCount(); tri++ {
				face := Face((tri % (2 * FaceCount)) / 2)
				p0, p1, p2 := buf.Triangle(tri)
				n := p1.Sub(p0).Cross(p2.Sub(p0))
				if n.Dot(face.Normal()) <= 0 {
					t.Errorf("triangle %d (%s face) normal %v points inward", tri, face, n)
				}
			}
		})
	}
}

func TestGenerateCubes_Placement(t *testing.T) {
	spec := NewCubeSpec(3, 2, 2)
	spec.Offset = math.Vec3{X: 10, Y: 20, Z: 30}
	buf, err := GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}

	for z := 0; z < spec.Depth; z++ {
		for y := 0; y < spec.Height; y++ {
			for x := 0; x < spec.Width; x++ {
				c := x + y*spec.Width + z*spec.Width*spec.Height
				lo := spec.Offset.Add(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
				hi := lo.Add(math.Vec3{X: 1, Y: 1, Z: 1})

				for k := 0; k < VerticesPerCube; k++ {
					p := buf.Positions[c*VerticesPerCube+k]
					if p.Min(lo) != lo || p.Max(hi) != hi {
						t.Errorf("cube (%d,%d,%d) vertex %d = %v outside [%v, %v]", x, y, z, k, p, lo, hi)
					}
				}
				for _, idx := range buf.Indices[c*IndicesPerCube : (c+1)*IndicesPerCube] {
					if int(idx)/VerticesPerCube != c {
						t.Errorf("cube %d references vertex %d of another cube", c, idx)
					}
				}
			}
		}
	}
}

func TestGenerateCubes_UVTemplate(t *testing.T) {
	var custom FaceUVTemplate
	for k := range custom {
		custom[k] = math.Vec2{X: float32(k), Y: -float32(k)}
	}

	spec := NewCubeSpec(2, 1, 2)
	spec.UVs = &custom
	buf, err := GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	for i, uv := range buf.UVs {
		if uv != custom[i%VerticesPerCube] {
			t.Errorf("uv %d: got %v, want %v", i, uv, custom[i%VerticesPerCube])
		}
	}

	def, err := GenerateCubes(NewCubeSpec(1, 1, 1))
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	want := DefaultFaceUVs()
	if !slices.Equal(def.UVs, want[:]) {
		t.Errorf("default UVs: got %v, want %v", def.UVs, want)
	}
}

func TestGenerateCubes_SharedLattice(t *testing.T) {
	spec := CubeSpec{Width: 2, Height: 2, Depth: 1, Vertices: VerticesShared}
	buf, err := GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}

	// Lattice point (x, y, z) sits at index x + y*(W+1) + z*(W+1)*(H+1).
	for z := 0; z <= spec.Depth; z++ {
		for y := 0; y <= spec.Height; y++ {
			for x := 0; x <= spec.Width; x++ {
				i := x + y*3 + z*9
				want := math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
				if buf.Positions[i] != want {
					t.Errorf("lattice point %d: got %v, want %v", i, buf.Positions[i], want)
				}
			}
		}
	}

	for i, uv := range buf.UVs {
		if uv != sharedUVs[i%len(sharedUVs)] {
			t.Errorf("uv %d: got %v, want %v", i, uv, sharedUVs[i%len(sharedUVs)])
		}
	}
}

func TestGenerateCubes_InvalidDimension(t *testing.T) {
	tests := []struct {
		w, h, d int
	}{
		{2, 0, 3},
		{0, 1, 1},
		{1, 1, 0},
		{-2, 4, 4},
	}
	for _, tt := range tests {
		for _, mode := range []VertexMode{VerticesDuplicated, VerticesShared} {
			spec := CubeSpec{Width: tt.w, Height: tt.h, Depth: tt.d, Vertices: mode}
			buf, err := GenerateCubes(spec)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("GenerateCubes(%d,%d,%d %s): expected ErrInvalidDimension, got %v", tt.w, tt.h, tt.d, mode, err)
			}
			if buf != nil {
				t.Errorf("GenerateCubes(%d,%d,%d %s): expected no buffer", tt.w, tt.h, tt.d, mode)
			}
		}
	}
}

func TestGenerateCubes_Idempotent(t *testing.T) {
	spec := NewCubeSpec(3, 3, 3)
	a, _ := GenerateCubes(spec)
	b, _ := GenerateCubes(spec)
	if !slices.Equal(a.Positions, b.Positions) || !slices.Equal(a.UVs, b.UVs) || !slices.Equal(a.Indices, b.Indices) {
		t.Error("two generations with identical input differ")
	}
}

func TestGenerateCubes_CapacityWarning(t *testing.T) {
	// 3000 cubes * 24 = 72000 vertices.
	buf, err := GenerateCubes(NewCubeSpec(30, 10, 10))
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	if buf.Warning == nil || buf.Warning.VertexCount != 72000 {
		t.Errorf("expected warning for 72000 vertices, got %v", buf.Warning)
	}

	// The same lattice fits easily when vertices are shared.
	spec := NewCubeSpec(30, 10, 10)
	spec.Vertices = VerticesShared
	shared, err := GenerateCubes(spec)
	if err != nil {
		t.Fatalf("GenerateCubes failed: %v", err)
	}
	if shared.Warning != nil {
		t.Errorf("unexpected warning in shared mode: %v", shared.Warning)
	}
}

func TestFaceNormals(t *testing.T) {
	var sum math.Vec3
	for f := FaceBottom; f <= FaceTop; f++ {
		n := f.Normal()
		if l := n.Length(); l != 1 {
			t.Errorf("%s normal %v has length %f", f, n, l)
		}
		sum = sum.Add(n)
	}
	if sum != (math.Vec3{}) {
		t.Errorf("face normals should cancel out, got %v", sum)
	}
	if Face(9).String() != "Face(9)" {
		t.Errorf("unexpected name for out of range face: %s", Face(9))
	}
}

func TestParseVertexMode(t *testing.T) {
	for _, m := range []VertexMode{VerticesDuplicated, VerticesShared} {
		got, err := ParseVertexMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseVertexMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseVertexMode("welded"); err == nil {
		t.Error("expected error for unknown vertex mode")
	}
}

func BenchmarkGenerateCubes(b *testing.B) {
	spec := NewCubeSpec(16, 16, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GenerateCubes(spec)
	}
}
