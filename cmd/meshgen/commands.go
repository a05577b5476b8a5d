package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/engine/surface"
	"github.com/Faultbox/gridmesh/internal/engine/texture"
	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/internal/meshgen"
	"github.com/Faultbox/gridmesh/pkg/mesh"
	"github.com/Faultbox/gridmesh/pkg/objfile"
)

var printer = message.NewPrinter(language.English)

func cmdSheet(args []string, stdout, stderr io.Writer) error {
	def := config.Default().Sheet
	fs := newCommandFlags("sheet", stderr)
	width := fs.Int("w", def.Width, "Quads along dim1")
	height := fs.Int("h", def.Height, "Quads along dim2")
	dim1 := fs.vec3("dim1", def.Dim1, "First basis vector x,y,z")
	dim2 := fs.vec3("dim2", def.Dim2, "Second basis vector x,y,z")
	offset := fs.vec3("offset", def.Offset, "Position of vertex 0")
	uv := fs.String("uv", def.UVMode, "UV mode: scaled or unit")
	out := fs.String("o", "-", "Output OBJ file (- for stdout)")
	normals := fs.Bool("normals", false, "Write vertex normals")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}

	mode, err := mesh.ParseUVMode(*uv)
	if err != nil {
		return err
	}
	req := meshgen.Request{
		Kind: meshgen.KindSheet,
		Sheet: mesh.SheetSpec{
			Width:  *width,
			Height: *height,
			Dim1:   *dim1,
			Dim2:   *dim2,
			Offset: *offset,
			UVMode: mode,
		},
	}
	return generate(req, *out, *normals, stdout, stderr)
}

func cmdCubes(args []string, stdout, stderr io.Writer) error {
	def := config.Default().Cube
	fs := newCommandFlags("cubes", stderr)
	width := fs.Int("w", def.Width, "Cubes along X")
	height := fs.Int("h", def.Height, "Cubes along Y")
	depth := fs.Int("d", def.Depth, "Cubes along Z")
	offset := fs.vec3("offset", def.Offset, "Minimum corner of the lattice")
	vertexMode := fs.String("mode", def.VertexMode, "Vertex mode: duplicated or shared")
	layout := fs.String("layout", def.AtlasLayout, "Face UV layout: strip or cross")
	out := fs.String("o", "-", "Output OBJ file (- for stdout)")
	normals := fs.Bool("normals", false, "Write vertex normals")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Cube.Width, cfg.Cube.Height, cfg.Cube.Depth = *width, *height, *depth
	cfg.Cube.Offset = *offset
	cfg.Cube.VertexMode = *vertexMode
	cfg.Cube.AtlasLayout = *layout

	req, err := meshgen.RequestFromConfig(cfg, meshgen.KindCubes)
	if err != nil {
		return err
	}
	return generate(req, *out, *normals, stdout, stderr)
}

func generate(req meshgen.Request, out string, normals bool, stdout, stderr io.Writer) error {
	res, err := meshgen.Build(req)
	if err != nil {
		return err
	}
	if w := res.Warning(); w != nil {
		logger.Warn("mesh exceeds 16-bit index range",
			zap.Stringer("kind", req.Kind),
			zap.Int("vertices", w.VertexCount),
			zap.Int("limit", w.Limit),
		)
	}

	if err := writeOBJ(out, res, normals, stdout); err != nil {
		return err
	}
	printStats(stderr, res)
	return nil
}

func writeOBJ(path string, res *meshgen.Result, normals bool, stdout io.Writer) error {
	opts := objfile.Options{
		Name:    res.Request.Kind.String(),
		Comment: []string{describe(res.Request)},
	}
	if normals {
		opts.Normals = surface.Normals(res.Buffer)
	}

	if path == "-" {
		return objfile.Encode(stdout, res.Buffer, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := objfile.Encode(f, res.Buffer, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Debug("wrote mesh", zap.String("path", path))
	return nil
}

func describe(req meshgen.Request) string {
	if req.Kind == meshgen.KindCubes {
		c := req.Cubes
		return fmt.Sprintf("gridmesh cubes %dx%dx%d vertices=%s", c.Width, c.Height, c.Depth, c.Vertices)
	}
	s := req.Sheet
	return fmt.Sprintf("gridmesh sheet %dx%d uv=%s dim1=%s dim2=%s",
		s.Width, s.Height, s.UVMode, formatVec3(s.Dim1), formatVec3(s.Dim2))
}

func printStats(w io.Writer, res *meshgen.Result) {
	printer.Fprintf(w, "%s: %d vertices, %d triangles in %v\n",
		res.Request.Kind, res.Buffer.VertexCount(), res.Buffer.TriangleCount(), res.Elapsed)
}

func cmdCheck(args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("check", stderr)
	width := fs.Int("w", 0, "Width")
	height := fs.Int("h", 0, "Height")
	depth := fs.Int("d", 0, "Depth; non-zero checks a cube lattice")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}

	if *depth == 0 {
		spec := mesh.SheetSpec{Width: *width, Height: *height}
		if err := spec.Validate(); err != nil {
			return err
		}
		reportFit(stdout, "sheet", spec.VertexCount(), spec.IndexCount())
		return nil
	}

	spec := mesh.NewCubeSpec(*width, *height, *depth)
	if err := spec.Validate(); err != nil {
		return err
	}
	reportFit(stdout, "cubes (duplicated)", spec.VertexCount(), spec.IndexCount())
	spec.Vertices = mesh.VerticesShared
	reportFit(stdout, "cubes (shared)", spec.VertexCount(), spec.IndexCount())
	return nil
}

func reportFit(w io.Writer, label string, vertices, indices int) {
	printer.Fprintf(w, "%-18s %d vertices, %d indices: ", label, vertices, indices)
	if warn := mesh.CheckVertexLimit(vertices); warn != nil {
		printer.Fprintf(w, "exceeds 16-bit index range (%d), use uint32 indices\n", warn.Limit)
		return
	}
	fmt.Fprintln(w, "fits 16-bit indices")
}

func cmdAtlas(args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("atlas", stderr)
	layoutName := fs.String("layout", "strip", "Face UV layout: strip or cross")
	cell := fs.Int("cell", 64, "Cell size in pixels")
	out := fs.String("o", "atlas.png", "Output PNG file")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}

	layout, err := mesh.LayoutByName(*layoutName)
	if err != nil {
		return err
	}
	img, err := texture.FaceAtlas(layout, *cell)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", *out, img.Rect.Dx(), img.Rect.Dy())
	return nil
}

func cmdConfig(args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("config", stderr)
	out := fs.String("o", "", "Output path (- for stdout, empty for the user config dir)")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}

	cfg := config.Default()
	switch *out {
	case "-":
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	case "":
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	default:
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *out)
	}
	return nil
}

func cmdBatch(args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("batch", stderr)
	file := fs.String("f", "", "Batch YAML file (required)")
	dir := fs.String("dir", ".", "Output directory")
	workers := fs.Int("j", 0, "Parallel builds (0 = GOMAXPROCS)")
	normals := fs.Bool("normals", false, "Write vertex normals")
	if err := fs.parse(args, stderr); err != nil {
		return err
	}
	if *file == "" {
		fmt.Fprintln(stderr, "Usage: meshgen batch -f jobs.yaml [-dir out] [-j N]")
		return errUsage
	}

	jobs, err := meshgen.LoadBatch(*file)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return errors.New("batch file has no jobs")
	}

	reqs := make([]meshgen.Request, len(jobs))
	names := make([]string, len(jobs))
	for i, job := range jobs {
		if reqs[i], err = job.Request(); err != nil {
			return err
		}
		names[i] = job.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("job%d", i+1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := meshgen.BuildAll(ctx, reqs, *workers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		return err
	}
	var vertices, triangles int
	for i, res := range results {
		path := filepath.Join(*dir, names[i]+".obj")
		if err := writeOBJ(path, res, *normals, stdout); err != nil {
			return err
		}
		vertices += res.Buffer.VertexCount()
		triangles += res.Buffer.TriangleCount()
		if w := res.Warning(); w != nil {
			logger.Warn("mesh exceeds 16-bit index range",
				zap.String("job", names[i]),
				zap.Int("vertices", w.VertexCount),
			)
		}
	}

	printer.Fprintf(stdout, "Wrote %d meshes to %s: %d vertices, %d triangles\n",
		len(results), *dir, vertices, triangles)
	return nil
}
