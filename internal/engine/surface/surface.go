// Package surface derives render data from generated buffers: normals,
// tangents, bounds and an interleaved vertex layout.
package surface

import (
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// NormalMode selects how vertex normals are derived.
type NormalMode int

const (
	// NormalsSmooth accumulates area-weighted face normals at each vertex.
	// Vertices shared between faces are smoothed; duplicated cube vertices
	// keep hard edges.
	NormalsSmooth NormalMode = iota
	// NormalsFlat unshares every triangle first so each face is lit flat.
	NormalsFlat
)

// Vertex is one interleaved vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Tangent  [3]float32
}

// Floats per interleaved vertex and attribute offsets, in floats.
const (
	VertexFloats   = 11
	OffsetPosition = 0
	OffsetNormal   = 3
	OffsetTexCoord = 6
	OffsetTangent  = 8
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns half the diagonal.
func (b Bounds) Radius() float32 {
	return b.Size().Length() * 0.5
}

// Mesh holds render-ready data.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Build derives a render mesh from a validated buffer.
func Build(buf *mesh.Buffer, mode NormalMode) (*Mesh, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	positions, uvs, indices := buf.Positions, buf.UVs, buf.Indices
	if mode == NormalsFlat {
		positions, uvs, indices = unshare(buf)
	}

	normals := accumulateNormals(positions, indices)
	tangents := accumulateTangents(positions, uvs, indices, normals)

	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
		Bounds:   ComputeBounds(positions),
	}
	for i := range positions {
		m.Vertices[i] = Vertex{
			Position: positions[i].Array(),
			Normal:   normals[i].Array(),
			TexCoord: [2]float32{uvs[i].X, uvs[i].Y},
			Tangent:  tangents[i].Array(),
		}
	}
	return m, nil
}

// Normals returns one smooth normal per buffer vertex.
func Normals(buf *mesh.Buffer) []math.Vec3 {
	return accumulateNormals(buf.Positions, buf.Indices)
}

// ComputeBounds returns the bounding box of positions. An empty slice gives
// a zero box.
func ComputeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Floats flattens the vertices into a VertexFloats-stride array.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
		out = append(out, v.Tangent[:]...)
	}
	return out
}

// unshare gives every triangle its own three vertices.
func unshare(buf *mesh.Buffer) ([]math.Vec3, []math.Vec2, []uint32) {
	n := len(buf.Indices)
	positions := make([]math.Vec3, n)
	uvs := make([]math.Vec2, n)
	indices := make([]uint32, n)
	for i, idx := range buf.Indices {
		positions[i] = buf.Positions[idx]
		uvs[i] = buf.UVs[idx]
		indices[i] = uint32(i)
	}
	return positions, uvs, indices
}

// accumulateNormals sums unnormalized face normals, which weights each face
// by its area, then normalizes. Vertices touched only by degenerate faces
// get +Y.
func accumulateNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += mesh.TriangleLength {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0 := positions[a]
		n := positions[b].Sub(p0).Cross(positions[c].Sub(p0))

		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		normals[i] = normalizeOr(n, math.Up)
	}
	return normals
}

// accumulateTangents derives per-vertex tangents from UV gradients and
// orthogonalizes them against the normal.
func accumulateTangents(positions []math.Vec3, uvs []math.Vec2, indices []uint32, normals []math.Vec3) []math.Vec3 {
	tangents := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += mesh.TriangleLength {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		e1 := positions[b].Sub(positions[a])
		e2 := positions[c].Sub(positions[a])
		d1 := uvs[b].Sub(uvs[a])
		d2 := uvs[c].Sub(uvs[a])

		det := d1.X*d2.Y - d2.X*d1.Y
		if det == 0 {
			continue
		}
		t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(1 / det)

		tangents[a] = tangents[a].Add(t)
		tangents[b] = tangents[b].Add(t)
		tangents[c] = tangents[c].Add(t)
	}

	for i, t := range tangents {
		n := normals[i]
		// Gram-Schmidt
		t = t.Sub(n.Scale(n.Dot(t)))
		tangents[i] = normalizeOr(t, perpendicular(n))
	}
	return tangents
}

func normalizeOr(v, fallback math.Vec3) math.Vec3 {
	if v.Length() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}

// perpendicular returns some unit vector orthogonal to n.
func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.Right
	if n.X > 0.9 || n.X < -0.9 {
		axis = math.Up
	}
	return normalizeOr(axis.Cross(n), math.Forward)
}
