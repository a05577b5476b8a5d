package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Enumerated setting values.
const (
	IndexFormat16 = "uint16"
	IndexFormat32 = "uint32"

	NormalsSmooth = "smooth"
	NormalsFlat   = "flat"

	ModeSheet = "sheet"
	ModeCubes = "cubes"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects unknown enum strings and unusable viewer settings.
// Grid dimensions are checked by the generators.
func (c *Config) Validate() error {
	if _, err := mesh.ParseUVMode(c.Sheet.UVMode); err != nil {
		return fmt.Errorf("%w: sheet: %v", ErrInvalidConfig, err)
	}
	if _, err := mesh.ParseVertexMode(c.Cube.VertexMode); err != nil {
		return fmt.Errorf("%w: cube: %v", ErrInvalidConfig, err)
	}
	if _, err := mesh.LayoutByName(c.Cube.AtlasLayout); err != nil {
		return fmt.Errorf("%w: cube: %v", ErrInvalidConfig, err)
	}

	switch c.Render.IndexFormat {
	case IndexFormat16, IndexFormat32:
	default:
		return fmt.Errorf("%w: render: unknown index format %q", ErrInvalidConfig, c.Render.IndexFormat)
	}
	switch c.Render.Normals {
	case NormalsSmooth, NormalsFlat:
	default:
		return fmt.Errorf("%w: render: unknown normals mode %q", ErrInvalidConfig, c.Render.Normals)
	}
	if c.Render.LightElevation < -90 || c.Render.LightElevation > 90 {
		return fmt.Errorf("%w: render: light elevation %v outside [-90, 90]", ErrInvalidConfig, c.Render.LightElevation)
	}

	switch c.Viewer.Mode {
	case ModeSheet, ModeCubes:
	default:
		return fmt.Errorf("%w: viewer: unknown mode %q", ErrInvalidConfig, c.Viewer.Mode)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer: window size %dx%d", ErrInvalidConfig, c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.RegenDelay < 0 {
		return fmt.Errorf("%w: viewer: negative regen delay %v", ErrInvalidConfig, c.Viewer.RegenDelay)
	}

	return nil
}

// SheetSpec converts the sheet section into a generator spec.
func (c *Config) SheetSpec() (mesh.SheetSpec, error) {
	mode, err := mesh.ParseUVMode(c.Sheet.UVMode)
	if err != nil {
		return mesh.SheetSpec{}, err
	}
	return mesh.SheetSpec{
		Width:  c.Sheet.Width,
		Height: c.Sheet.Height,
		Dim1:   c.Sheet.Dim1,
		Dim2:   c.Sheet.Dim2,
		Offset: c.Sheet.Offset,
		UVMode: mode,
	}, nil
}

// CubeSpec converts the cube section into a generator spec, resolving the
// atlas layout to a UV template.
func (c *Config) CubeSpec() (mesh.CubeSpec, error) {
	mode, err := mesh.ParseVertexMode(c.Cube.VertexMode)
	if err != nil {
		return mesh.CubeSpec{}, err
	}
	layout, err := mesh.LayoutByName(c.Cube.AtlasLayout)
	if err != nil {
		return mesh.CubeSpec{}, err
	}
	uvs, err := layout.Template()
	if err != nil {
		return mesh.CubeSpec{}, err
	}
	return mesh.CubeSpec{
		Width:    c.Cube.Width,
		Height:   c.Cube.Height,
		Depth:    c.Cube.Depth,
		Offset:   c.Cube.Offset,
		Vertices: mode,
		UVs:      &uvs,
	}, nil
}

// SheetHints returns the appearance hints for sheets.
func (c *Config) SheetHints() mesh.Hints {
	return mesh.Hints{Color: c.Sheet.Color, Texture: c.Sheet.Texture}
}

// CubeHints returns the appearance hints for cube lattices.
func (c *Config) CubeHints() mesh.Hints {
	return mesh.Hints{Color: c.Cube.Color, Texture: c.Cube.Texture}
}
