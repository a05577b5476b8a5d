// Package objfile writes mesh buffers as Wavefront OBJ text.
package objfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Options controls optional OBJ content.
type Options struct {
	// Name is written as an "o" statement when non-empty.
	Name string
	// Normals, when set, must hold one normal per vertex and is written as
	// "vn" records referenced by every face.
	Normals []math.Vec3
	// Comment lines are written first, each prefixed with "# ".
	Comment []string
}

// Encode writes buf to w. The buffer must pass Validate. OBJ indices are
// 1-based; position, texture and normal indices coincide.
func Encode(w io.Writer, buf *mesh.Buffer, opts Options) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if opts.Normals != nil && len(opts.Normals) != buf.VertexCount() {
		return fmt.Errorf("objfile: %d normals for %d vertices", len(opts.Normals), buf.VertexCount())
	}

	bw := bufio.NewWriter(w)

	for _, line := range opts.Comment {
		fmt.Fprintf(bw, "# %s\n", line)
	}
	if opts.Name != "" {
		fmt.Fprintf(bw, "o %s\n", opts.Name)
	}

	for _, p := range buf.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, uv := range buf.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range opts.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	for i := 0; i < len(buf.Indices); i += mesh.TriangleLength {
		a, b, c := buf.Indices[i]+1, buf.Indices[i+1]+1, buf.Indices[i+2]+1
		if opts.Normals != nil {
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		} else {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
	}

	return bw.Flush()
}
