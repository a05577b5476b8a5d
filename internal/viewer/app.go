// Package viewer implements the interactive mesh viewer: it owns the window,
// edits generation parameters from the keyboard and regenerates the mesh
// after input settles.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/engine/camera"
	"github.com/Faultbox/gridmesh/internal/engine/debug"
	"github.com/Faultbox/gridmesh/internal/engine/input"
	"github.com/Faultbox/gridmesh/internal/engine/lighting"
	"github.com/Faultbox/gridmesh/internal/engine/renderer"
	"github.com/Faultbox/gridmesh/internal/engine/surface"
	"github.com/Faultbox/gridmesh/internal/engine/window"
	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/internal/meshgen"
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

const title = "GridMesh"

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	service  *meshgen.Service

	state         *State
	debounce      *Debouncer
	watcher       *ConfigWatcher
	reloadPending atomic.Bool
	screenshots   *debug.ScreenshotCapture

	running        bool
	spinning       bool
	spinAngle      float32
	showBounds     bool
	fitPending     bool
	screenshotNext bool
}

// New creates the window, renderer and generation service. cfgPath is the
// file the config was read from; it is watched when non-empty and
// Viewer.WatchConfig is set.
func New(cfg *config.Config, cfgPath string) (*App, error) {
	state, err := NewState(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		cfgPath:     cfgPath,
		log:         logger.Named("viewer"),
		input:       input.New(),
		camera:      camera.NewOrbitCamera(),
		state:       state,
		debounce:    NewDebouncer(cfg.Viewer.RegenDelay),
		screenshots: debug.NewScreenshotCapture("screenshots", "gridmesh"),
		spinning:    cfg.Viewer.SpinDegreesPerSecond != 0,
		showBounds:  cfg.Viewer.ShowBounds,
		fitPending:  true,
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	fbWidth, fbHeight := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:       fbWidth,
		Height:      fbHeight,
		IndexFormat: cfg.Render.IndexFormat,
		Normals:     normalMode(cfg.Render.Normals),
		LightDir:    lighting.TravelDirection(cfg.Render.LightAzimuth, cfg.Render.LightElevation),
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.service = meshgen.NewService(a.renderer,
		meshgen.WithLogger(a.log),
		meshgen.WithCapacityWarnings(cfg.Render.WarnCapacity),
	)

	if cfgPath != "" && cfg.Viewer.WatchConfig {
		a.watcher, err = WatchConfig(cfgPath, a.configChanged, a.log)
		if err != nil {
			a.log.Warn("config watching disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer initialized",
		zap.Stringer("mode", state.Kind),
		zap.Int("width", fbWidth),
		zap.Int("height", fbHeight),
	)
	return a, nil
}

func normalMode(s string) surface.NormalMode {
	if s == config.NormalsFlat {
		return surface.NormalsFlat
	}
	return surface.NormalsSmooth
}

// configChanged runs on the watcher goroutine; the reload itself happens on
// the next debounced regeneration.
func (a *App) configChanged() {
	a.reloadPending.Store(true)
	a.debounce.Trigger()
}

// Run generates the initial mesh and runs the main loop until the window
// closes.
func (a *App) Run(ctx context.Context) error {
	if err := a.regenerate(ctx); err != nil {
		return err
	}

	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleEvents()

		select {
		case <-a.debounce.C():
			if err := a.regenerate(ctx); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.update(dt)
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventMouseMove:
			if a.input.ButtonHeld(sdl.BUTTON_LEFT) {
				a.camera.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
			}
		case input.EventMouseDown:
			if ev.Button == sdl.BUTTON_RIGHT {
				a.pick(ev.MouseX, ev.MouseY)
			}
		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(ev.DeltaY))
		case input.EventKeyDown:
			a.handleKey(ev)
		}
	}
}

func (a *App) handleKey(ev input.Event) {
	action := ActionForKey(ev.Key)
	if ev.Repeat && !action.repeatable() {
		return
	}

	switch action {
	case ActionNone:
	case ActionQuit:
		a.running = false
	case ActionToggleBounds:
		a.showBounds = !a.showBounds
	case ActionToggleSpin:
		a.spinning = !a.spinning
	case ActionResetCamera:
		a.spinAngle = 0
		a.fitCamera()
	case ActionScreenshot:
		a.screenshotNext = true
	default:
		if a.state.Apply(action, ev.Shift) {
			if action == ActionToggleMode {
				a.fitPending = true
			}
			a.debounce.Trigger()
		}
	}
}

// regenerate applies a pending config reload, then generates and realizes
// the current state. Bad sizes or a bad reloaded file keep the previous
// mesh on screen; only failures of the generator itself end the loop.
func (a *App) regenerate(ctx context.Context) error {
	if a.reloadPending.Swap(false) {
		a.reload()
	}

	res, err := a.service.Generate(ctx, a.state.Request())
	switch {
	case err == nil:
	case errors.Is(err, meshgen.ErrInternal):
		return err
	case errors.Is(err, mesh.ErrInvalidDimension), errors.Is(err, meshgen.ErrRealize):
		a.log.Warn("regeneration failed, keeping previous mesh", zap.Error(err))
		return nil
	default:
		return err
	}

	if a.fitPending {
		a.fitCamera()
		a.fitPending = false
	}
	a.updateTitle(res)
	return nil
}

func (a *App) reload() {
	cfg, err := config.Reload(a.cfgPath)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}
	state, err := NewState(cfg)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}

	if state.Kind != a.state.Kind {
		a.fitPending = true
	}
	a.cfg = cfg
	a.state = state
	a.showBounds = cfg.Viewer.ShowBounds
	a.spinning = cfg.Viewer.SpinDegreesPerSecond != 0
	a.log.Info("config reloaded", zap.String("path", a.cfgPath))
}

func (a *App) fitCamera() {
	b := a.renderer.Bounds()
	a.camera.FitSphere(b.Center(), b.Radius())
}

func (a *App) updateTitle(res *meshgen.Result) {
	req := res.Request
	var dims string
	if req.Kind == meshgen.KindCubes {
		dims = fmt.Sprintf("%dx%dx%d %s", req.Cubes.Width, req.Cubes.Height, req.Cubes.Depth, req.Cubes.Vertices)
	} else {
		dims = fmt.Sprintf("%dx%d %s uv", req.Sheet.Width, req.Sheet.Height, req.Sheet.UVMode)
	}
	a.window.SetTitle(fmt.Sprintf("%s - %s %s - %d vertices, %d triangles",
		title, req.Kind, dims, res.Buffer.VertexCount(), res.Buffer.TriangleCount()))
}

func (a *App) update(dt float32) {
	if !a.spinning {
		return
	}
	rate := a.cfg.Viewer.SpinDegreesPerSecond
	if rate == 0 {
		rate = 30
	}
	a.spinAngle = math32.Mod(a.spinAngle+rate*dt, 360)
}

const radiansPerDegree = math32.Pi / 180

func (a *App) spinAxis() math.Vec3 {
	if a.cfg.Viewer.SpinAxis.Length() == 0 {
		return math.Up
	}
	return a.cfg.Viewer.SpinAxis
}

// model returns the spin rotation about the configured axis.
func (a *App) model() math.Mat4 {
	return math.QuatFromAxisAngle(a.spinAxis(), a.spinAngle*radiansPerDegree).ToMat4()
}

func (a *App) render() {
	a.renderer.Begin()

	model := a.model()
	view := a.camera.ViewMatrix()
	proj := a.camera.ProjectionMatrix(a.renderer.Aspect())

	a.renderer.DrawMesh(model, view, proj)
	if a.showBounds {
		a.renderer.DrawBounds(model, view, proj)
	}

	if a.screenshotNext {
		a.screenshotNext = false
		pixels, w, h := a.renderer.ReadPixels()
		path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			a.log.Warn("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("path", path))
		}
	}
}

// Close releases the window and GPU resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	a.debounce.Stop()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
