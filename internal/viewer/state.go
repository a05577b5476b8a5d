package viewer

import (
	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/meshgen"
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Edit limits for interactive sizing.
const (
	MinSize     = 1
	MaxSheetDim = 100
	MaxCubeDim  = 40
)

// State is the editable generation state of the viewer.
type State struct {
	Kind  meshgen.Kind
	Sheet mesh.SheetSpec
	Cubes mesh.CubeSpec

	sheetHints mesh.Hints
	cubeHints  mesh.Hints
}

// NewState seeds the state from the config sections.
func NewState(cfg *config.Config) (*State, error) {
	kind, err := meshgen.ParseKind(cfg.Viewer.Mode)
	if err != nil {
		return nil, err
	}
	sheet, err := cfg.SheetSpec()
	if err != nil {
		return nil, err
	}
	cubes, err := cfg.CubeSpec()
	if err != nil {
		return nil, err
	}
	return &State{
		Kind:       kind,
		Sheet:      sheet,
		Cubes:      cubes,
		sheetHints: cfg.SheetHints(),
		cubeHints:  cfg.CubeHints(),
	}, nil
}

// Request returns the generation request for the current state.
func (s *State) Request() meshgen.Request {
	req := meshgen.Request{Kind: s.Kind, Sheet: s.Sheet, Cubes: s.Cubes}
	if s.Kind == meshgen.KindCubes {
		req.Hints = s.cubeHints
	} else {
		req.Hints = s.sheetHints
	}
	return req
}

// Apply performs an editing action and reports whether the mesh must be
// regenerated. Shift scales size steps by 10.
func (s *State) Apply(a Action, shift bool) bool {
	step := 1
	if shift {
		step = 10
	}

	switch a {
	case ActionToggleMode:
		if s.Kind == meshgen.KindSheet {
			s.Kind = meshgen.KindCubes
		} else {
			s.Kind = meshgen.KindSheet
		}
		return true
	case ActionToggleVertexMode:
		if s.Kind != meshgen.KindCubes {
			return false
		}
		if s.Cubes.Vertices == mesh.VerticesShared {
			s.Cubes.Vertices = mesh.VerticesDuplicated
		} else {
			s.Cubes.Vertices = mesh.VerticesShared
		}
		return true
	case ActionToggleUVMode:
		if s.Kind != meshgen.KindSheet {
			return false
		}
		if s.Sheet.UVMode == mesh.UVUnit {
			s.Sheet.UVMode = mesh.UVScaled
		} else {
			s.Sheet.UVMode = mesh.UVUnit
		}
		return true
	case ActionWidthUp, ActionWidthDown, ActionHeightUp, ActionHeightDown, ActionDepthUp, ActionDepthDown:
		return s.resize(a, step)
	}
	return false
}

func (s *State) resize(a Action, step int) bool {
	delta := step
	if a == ActionWidthDown || a == ActionHeightDown || a == ActionDepthDown {
		delta = -step
	}

	if s.Kind == meshgen.KindSheet {
		w, h := s.Sheet.Width, s.Sheet.Height
		switch a {
		case ActionWidthUp, ActionWidthDown:
			w = clampSize(w+delta, MaxSheetDim)
		case ActionHeightUp, ActionHeightDown:
			h = clampSize(h+delta, MaxSheetDim)
		default:
			return false
		}
		if w == s.Sheet.Width && h == s.Sheet.Height {
			return false
		}
		s.SetSheetSize(w, h)
		return true
	}

	w, h, d := s.Cubes.Width, s.Cubes.Height, s.Cubes.Depth
	switch a {
	case ActionWidthUp, ActionWidthDown:
		w = clampSize(w+delta, MaxCubeDim)
	case ActionHeightUp, ActionHeightDown:
		h = clampSize(h+delta, MaxCubeDim)
	case ActionDepthUp, ActionDepthDown:
		d = clampSize(d+delta, MaxCubeDim)
	}
	if w == s.Cubes.Width && h == s.Cubes.Height && d == s.Cubes.Depth {
		return false
	}
	s.SetCubeSize(w, h, d)
	return true
}

// SetSheetSize clamps the size to [MinSize, MaxSheetDim] and centres the
// sheet on the origin along its basis vectors.
func (s *State) SetSheetSize(width, height int) {
	s.Sheet.Width = clampSize(width, MaxSheetDim)
	s.Sheet.Height = clampSize(height, MaxSheetDim)
	s.Sheet.Offset = s.Sheet.Dim1.Scale(-float32(s.Sheet.Width) / 2).
		Add(s.Sheet.Dim2.Scale(-float32(s.Sheet.Height) / 2))
}

// SetCubeSize clamps the size to [MinSize, MaxCubeDim] and centres the
// lattice on the origin.
func (s *State) SetCubeSize(width, height, depth int) {
	s.Cubes.Width = clampSize(width, MaxCubeDim)
	s.Cubes.Height = clampSize(height, MaxCubeDim)
	s.Cubes.Depth = clampSize(depth, MaxCubeDim)
	s.Cubes.Offset = math.Vec3{
		X: -float32(s.Cubes.Width) / 2,
		Y: -float32(s.Cubes.Height) / 2,
		Z: -float32(s.Cubes.Depth) / 2,
	}
}

func clampSize(v, hi int) int {
	if v < MinSize {
		return MinSize
	}
	if v > hi {
		return hi
	}
	return v
}
