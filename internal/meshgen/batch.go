package meshgen

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Job is one entry of a batch file.
type Job struct {
	Name   string    `yaml:"name"`
	Kind   string    `yaml:"kind"` // sheet or cubes
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Depth  int       `yaml:"depth"`
	Dim1   math.Vec3 `yaml:"dim1"`
	Dim2   math.Vec3 `yaml:"dim2"`
	Offset math.Vec3 `yaml:"offset"`
	UVMode string    `yaml:"uv_mode"`
	Mode   string    `yaml:"vertex_mode"`
	Layout string    `yaml:"atlas_layout"`
}

// BatchFile is the top-level layout of a batch YAML document.
type BatchFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadBatch reads and parses a batch file.
func LoadBatch(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f BatchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f.Jobs, nil
}

// Request converts a job. Zero basis vectors default to the XY plane.
func (j Job) Request() (Request, error) {
	kind, err := ParseKind(j.Kind)
	if err != nil {
		return Request{}, fmt.Errorf("job %q: %w", j.Name, err)
	}

	req := Request{Kind: kind}
	switch kind {
	case KindSheet:
		mode, err := mesh.ParseUVMode(j.UVMode)
		if err != nil {
			return Request{}, fmt.Errorf("job %q: %w", j.Name, err)
		}
		spec := mesh.NewSheetSpec(j.Width, j.Height)
		if j.Dim1 != (math.Vec3{}) {
			spec.Dim1 = j.Dim1
		}
		if j.Dim2 != (math.Vec3{}) {
			spec.Dim2 = j.Dim2
		}
		spec.Offset = j.Offset
		spec.UVMode = mode
		req.Sheet = spec

	case KindCubes:
		mode, err := mesh.ParseVertexMode(j.Mode)
		if err != nil {
			return Request{}, fmt.Errorf("job %q: %w", j.Name, err)
		}
		layout, err := mesh.LayoutByName(j.Layout)
		if err != nil {
			return Request{}, fmt.Errorf("job %q: %w", j.Name, err)
		}
		uvs, err := layout.Template()
		if err != nil {
			return Request{}, fmt.Errorf("job %q: %w", j.Name, err)
		}
		spec := mesh.NewCubeSpec(j.Width, j.Height, j.Depth)
		spec.Offset = j.Offset
		spec.Vertices = mode
		spec.UVs = &uvs
		req.Cubes = spec
	}
	return req, nil
}

// BuildAll builds every request concurrently with at most workers
// goroutines (GOMAXPROCS when workers <= 0). Results keep request order.
// The first error cancels the remaining builds and is returned.
func BuildAll(ctx context.Context, reqs []Request, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Build(req)
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, req.Kind, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
