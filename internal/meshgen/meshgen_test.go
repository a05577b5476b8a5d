package meshgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// recordingRealizer remembers every buffer it was handed.
type recordingRealizer struct {
	mu      sync.Mutex
	buffers []*mesh.Buffer
	hints   []mesh.Hints
	err     error
}

func (r *recordingRealizer) Realize(buf *mesh.Buffer, hints mesh.Hints) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.buffers = append(r.buffers, buf)
	r.hints = append(r.hints, hints)
	return nil
}

func sheetRequest(w, h int) Request {
	return Request{Kind: KindSheet, Sheet: mesh.NewSheetSpec(w, h)}
}

func TestGenerateRealizes(t *testing.T) {
	r := &recordingRealizer{}
	svc := NewService(r)

	red := mesh.Color{R: 1, A: 1}
	req := sheetRequest(3, 2)
	req.Hints = mesh.Hints{Color: &red, Texture: "grid.png"}

	res, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Buffer.VertexCount() != 12 || res.Buffer.TriangleCount() != 12 {
		t.Errorf("unexpected counts %d/%d", res.Buffer.VertexCount(), res.Buffer.TriangleCount())
	}
	if len(r.buffers) != 1 || r.buffers[0] != res.Buffer {
		t.Fatal("realizer did not receive the generated buffer")
	}
	if r.hints[0].Texture != "grid.png" || r.hints[0].ColorOr(mesh.DefaultColor) != red {
		t.Errorf("hints not passed through: %+v", r.hints[0])
	}
	if svc.Current() != res {
		t.Error("Current should return the last result")
	}
}

func TestGenerateInvalidDimensionKeepsCurrent(t *testing.T) {
	r := &recordingRealizer{}
	svc := NewService(r)

	first, err := svc.Generate(context.Background(), sheetRequest(2, 2))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, err = svc.Generate(context.Background(), Request{Kind: KindCubes, Cubes: mesh.NewCubeSpec(2, 0, 3)})
	if !errors.Is(err, mesh.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
	if svc.Current() != first {
		t.Error("a failed generation must not replace the current mesh")
	}
	if len(r.buffers) != 1 {
		t.Errorf("realizer should not be called for a failed generation, got %d calls", len(r.buffers))
	}
}

func TestGenerateRealizeError(t *testing.T) {
	r := &recordingRealizer{err: errors.New("no GL context")}
	svc := NewService(r)

	_, err := svc.Generate(context.Background(), sheetRequest(1, 1))
	if !errors.Is(err, ErrRealize) {
		t.Errorf("expected ErrRealize, got %v", err)
	}
	if svc.Current() != nil {
		t.Error("current mesh should stay empty")
	}
}

func TestGenerateCancelled(t *testing.T) {
	svc := NewService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Generate(ctx, sheetRequest(1, 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateLogsCapacityWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(nil, WithLogger(zap.New(core)))

	// 300*300 quads gives 301*301 = 90601 vertices.
	res, err := svc.Generate(context.Background(), sheetRequest(300, 300))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Warning() == nil {
		t.Fatal("expected capacity warning on the result")
	}

	entries := logs.FilterMessage("mesh exceeds 16-bit index range").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning log, got %d", len(entries))
	}
	if v := entries[0].ContextMap()["vertices"]; v != int64(90601) {
		t.Errorf("expected vertices=90601 in log, got %v", v)
	}

	quiet, quietLogs := observer.New(zap.WarnLevel)
	svc = NewService(nil, WithLogger(zap.New(quiet)), WithCapacityWarnings(false))
	if _, err := svc.Generate(context.Background(), sheetRequest(300, 300)); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if quietLogs.Len() != 0 {
		t.Errorf("expected no warnings with capacity warnings disabled, got %d", quietLogs.Len())
	}
}

func TestGenerateConcurrentCallsSerialise(t *testing.T) {
	r := &recordingRealizer{}
	svc := NewService(r)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Generate(context.Background(), sheetRequest(i, i)); err != nil {
				t.Errorf("Generate(%d) failed: %v", i, err)
			}
		}()
	}
	wg.Wait()

	if len(r.buffers) != 8 {
		t.Fatalf("expected 8 realizations, got %d", len(r.buffers))
	}
	last := r.buffers[len(r.buffers)-1]
	if svc.Current().Buffer != last {
		t.Error("current mesh should be the last one realized")
	}
}

func TestRequestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cube.VertexMode = "shared"

	sheet, err := RequestFromConfig(cfg, KindSheet)
	if err != nil {
		t.Fatalf("RequestFromConfig(sheet) failed: %v", err)
	}
	if sheet.VertexCount() != 121 {
		t.Errorf("expected 121 sheet vertices, got %d", sheet.VertexCount())
	}

	cubes, err := RequestFromConfig(cfg, KindCubes)
	if err != nil {
		t.Fatalf("RequestFromConfig(cubes) failed: %v", err)
	}
	if cubes.VertexCount() != 64 {
		t.Errorf("expected 64 shared lattice vertices, got %d", cubes.VertexCount())
	}

	if _, err := RequestFromConfig(cfg, Kind(7)); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSheet, KindCubes} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("torus"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestBuildAll(t *testing.T) {
	reqs := []Request{
		sheetRequest(4, 4),
		{Kind: KindCubes, Cubes: mesh.NewCubeSpec(2, 2, 2)},
		sheetRequest(1, 9),
	}

	results, err := BuildAll(context.Background(), reqs, 2)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	want := []int{25, 192, 20}
	for i, res := range results {
		if res.Buffer.VertexCount() != want[i] {
			t.Errorf("result %d: expected %d vertices, got %d", i, want[i], res.Buffer.VertexCount())
		}
	}

	reqs = append(reqs, sheetRequest(0, 3))
	if _, err := BuildAll(context.Background(), reqs, 0); !errors.Is(err, mesh.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestLoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := `
jobs:
  - name: floor
    kind: sheet
    width: 8
    height: 8
    dim1: {x: 1, y: 0, z: 0}
    dim2: {x: 0, y: 0, z: 1}
    uv_mode: unit
  - name: crates
    kind: cubes
    width: 2
    height: 1
    depth: 2
    vertex_mode: duplicated
    atlas_layout: cross
  - name: wall
    kind: sheet
    width: 3
    height: 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write batch file: %v", err)
	}

	jobs, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch failed: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}

	floor, err := jobs[0].Request()
	if err != nil {
		t.Fatalf("floor request failed: %v", err)
	}
	if floor.Sheet.UVMode != mesh.UVUnit || floor.Sheet.Dim2.Z != 1 {
		t.Errorf("unexpected floor spec %+v", floor.Sheet)
	}

	crates, err := jobs[1].Request()
	if err != nil {
		t.Fatalf("crates request failed: %v", err)
	}
	want, _ := mesh.CrossLayout.Template()
	if crates.Kind != KindCubes || crates.Cubes.UVs == nil || *crates.Cubes.UVs != want {
		t.Errorf("unexpected crates request %+v", crates)
	}

	// Omitted basis vectors fall back to the XY plane.
	wall, err := jobs[2].Request()
	if err != nil {
		t.Fatalf("wall request failed: %v", err)
	}
	if wall.Sheet.Dim2.Y != 1 {
		t.Errorf("expected default Dim2 (0,1,0), got %v", wall.Sheet.Dim2)
	}

	bad := Job{Name: "bad", Kind: "sheet", UVMode: "stretched"}
	if _, err := bad.Request(); err == nil {
		t.Error("expected error for unknown uv mode")
	}
}
