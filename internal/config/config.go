// Package config handles generator and viewer configuration loading.
package config

import (
	"time"

	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Config holds all settings.
type Config struct {
	Sheet   SheetConfig   `yaml:"sheet"`
	Cube    CubeConfig    `yaml:"cube"`
	Render  RenderConfig  `yaml:"render"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// SheetConfig describes the default sheet.
type SheetConfig struct {
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	Dim1    math.Vec3   `yaml:"dim1"`
	Dim2    math.Vec3   `yaml:"dim2"`
	Offset  math.Vec3   `yaml:"offset"`
	UVMode  string      `yaml:"uv_mode"` // scaled or unit
	Color   *mesh.Color `yaml:"color,omitempty"`
	Texture string      `yaml:"texture,omitempty"`
}

// CubeConfig describes the default cube lattice.
type CubeConfig struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	Depth       int         `yaml:"depth"`
	Offset      math.Vec3   `yaml:"offset"`
	VertexMode  string      `yaml:"vertex_mode"`  // duplicated or shared
	AtlasLayout string      `yaml:"atlas_layout"` // strip or cross
	Color       *mesh.Color `yaml:"color,omitempty"`
	Texture     string      `yaml:"texture,omitempty"`
}

// RenderConfig holds consumer-side settings.
type RenderConfig struct {
	IndexFormat    string  `yaml:"index_format"` // uint16 or uint32
	WarnCapacity   bool    `yaml:"warn_capacity"`
	Normals        string  `yaml:"normals"`         // smooth or flat
	LightAzimuth   float32 `yaml:"light_azimuth"`   // degrees around +Y from +Z
	LightElevation float32 `yaml:"light_elevation"` // degrees above the horizon
}

// ViewerConfig holds window and interaction settings.
type ViewerConfig struct {
	Width                int           `yaml:"width"`
	Height               int           `yaml:"height"`
	Fullscreen           bool          `yaml:"fullscreen"`
	VSync                bool          `yaml:"vsync"`
	Mode                 string        `yaml:"mode"` // sheet or cubes
	SpinDegreesPerSecond float32       `yaml:"spin_degrees_per_second"`
	SpinAxis             math.Vec3     `yaml:"spin_axis"`
	RegenDelay           time.Duration `yaml:"regen_delay"`
	ShowBounds           bool          `yaml:"show_bounds"`
	WatchConfig          bool          `yaml:"watch_config"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sheet: SheetConfig{
			Width:  10,
			Height: 10,
			Dim1:   math.Right,
			Dim2:   math.Forward,
			Offset: math.Vec3{X: -5, Y: 0, Z: -5},
			UVMode: mesh.UVScaled.String(),
		},
		Cube: CubeConfig{
			Width:       3,
			Height:      3,
			Depth:       3,
			Offset:      math.Vec3{X: -1.5, Y: -1.5, Z: -1.5},
			VertexMode:  mesh.VerticesDuplicated.String(),
			AtlasLayout: "strip",
		},
		Render: RenderConfig{
			IndexFormat:    IndexFormat32,
			WarnCapacity:   true,
			Normals:        NormalsSmooth,
			LightAzimuth:   35,
			LightElevation: 55,
		},
		Viewer: ViewerConfig{
			Width:                1280,
			Height:               720,
			Fullscreen:           false,
			VSync:                true,
			Mode:                 ModeSheet,
			SpinDegreesPerSecond: 0,
			SpinAxis:             math.Up,
			RegenDelay:           150 * time.Millisecond,
			ShowBounds:           false,
			WatchConfig:          true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
