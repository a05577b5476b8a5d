// Package renderer uploads generated meshes to OpenGL and draws them.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/engine/debug"
	"github.com/Faultbox/gridmesh/internal/engine/shader"
	"github.com/Faultbox/gridmesh/internal/engine/surface"
	"github.com/Faultbox/gridmesh/internal/engine/texture"
	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	IndexFormat string // config.IndexFormat16 or config.IndexFormat32
	Normals     surface.NormalMode
	LightDir    math.Vec3
}

// Renderer draws the current mesh. It implements mesh.Realizer; all methods
// must run on the thread that owns the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram  *shader.Program
	linesProgram *shader.Program

	gpu     gpuMesh
	bounds  surface.Bounds
	color   mesh.Color
	lines   lineBuffer
	texture uint32
	texPath string
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	indexType     uint32
}

type lineBuffer struct {
	vao, vbo uint32
	count    int32
}

var _ mesh.Realizer = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		color:  mesh.DefaultColor,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.meshProgram, err = shader.New(shader.MeshVertex, shader.MeshFragment); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if r.linesProgram, err = shader.New(shader.LinesVertex, shader.LinesFragment); err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("lines shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lines.vao)
	gl.GenBuffers(1, &r.lines.vbo)
	gl.BindVertexArray(r.lines.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lines.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Realize validates buf, derives normals and uploads it, replacing the
// previous mesh. The previous mesh stays on the GPU if anything fails.
func (r *Renderer) Realize(buf *mesh.Buffer, hints mesh.Hints) error {
	m, err := surface.Build(buf, r.config.Normals)
	if err != nil {
		return err
	}

	indexType, fellBack := indexTypeFor(r.config.IndexFormat, len(m.Vertices))
	if fellBack {
		r.log.Warn("16-bit indices requested but mesh is too large, using 32-bit",
			zap.Int("vertices", len(m.Vertices)),
		)
	}

	if err := r.applyTexture(hints.Texture); err != nil {
		return err
	}

	r.deleteMesh()
	r.upload(m, indexType)
	r.bounds = m.Bounds
	r.color = hints.ColorOr(mesh.DefaultColor)

	lines := debug.BoundsWireframe(m.Bounds, debug.DefaultBoundsPadding)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lines.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, gl.Ptr(lines), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.lines.count = int32(len(lines) / 3)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.Bool("index16", indexType == gl.UNSIGNED_SHORT),
		zap.Bool("textured", r.texture != 0),
	)
	return nil
}

// indexTypeFor picks the GL index type. A 16-bit request that cannot address
// every vertex falls back to 32-bit.
func indexTypeFor(format string, vertexCount int) (indexType uint32, fellBack bool) {
	if format != config.IndexFormat16 {
		return gl.UNSIGNED_INT, false
	}
	if mesh.CheckVertexLimit(vertexCount) != nil {
		return gl.UNSIGNED_INT, true
	}
	return gl.UNSIGNED_SHORT, false
}

func (r *Renderer) upload(m *surface.Mesh, indexType uint32) {
	floats := m.Floats()

	gl.GenVertexArrays(1, &r.gpu.vao)
	gl.BindVertexArray(r.gpu.vao)

	gl.GenBuffers(1, &r.gpu.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.gpu.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(floats)*4, gl.Ptr(floats), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.gpu.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.gpu.ebo)
	if indexType == gl.UNSIGNED_SHORT {
		idx := make([]uint16, len(m.Indices))
		for i, v := range m.Indices {
			idx[i] = uint16(v)
		}
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*2, gl.Ptr(idx), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	stride := int32(surface.VertexFloats * 4)
	attrib := func(loc uint32, size int32, offset int) {
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, stride, uintptr(offset*4))
		gl.EnableVertexAttribArray(loc)
	}
	attrib(0, 3, surface.OffsetPosition)
	attrib(1, 3, surface.OffsetNormal)
	attrib(2, 2, surface.OffsetTexCoord)
	attrib(3, 3, surface.OffsetTangent)

	gl.BindVertexArray(0)

	r.gpu.indexCount = int32(len(m.Indices))
	r.gpu.indexType = indexType
}

// applyTexture loads path when it differs from the bound texture. An empty
// path unbinds.
func (r *Renderer) applyTexture(path string) error {
	if path == r.texPath {
		return nil
	}
	if path == "" {
		r.deleteTexture()
		r.texPath = ""
		return nil
	}

	img, err := texture.Load(path)
	if err != nil {
		return fmt.Errorf("texture %s: %w", path, err)
	}
	r.deleteTexture()
	r.texture = uploadTexture(texture.FlipVertical(img))
	r.texPath = path
	r.log.Debug("texture loaded", zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return nil
}

func uploadTexture(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Bounds returns the bounds of the realized mesh.
func (r *Renderer) Bounds() surface.Bounds {
	return r.bounds
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMesh draws the realized mesh.
func (r *Renderer) DrawMesh(model, view, projection math.Mat4) {
	if r.gpu.vao == 0 {
		return
	}

	p := r.meshProgram
	p.Use()
	p.SetMat4("uModel", model)
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", projection)
	p.SetVec4("uColor", r.color.R, r.color.G, r.color.B, r.color.A)
	p.SetVec3("uLightDir", r.config.LightDir)

	if r.texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
		p.SetInt("uTexture", 0)
		p.SetInt("uUseTexture", 1)
	} else {
		p.SetInt("uUseTexture", 0)
	}

	gl.BindVertexArray(r.gpu.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.gpu.indexCount, r.gpu.indexType, 0)
	gl.BindVertexArray(0)
}

// DrawBounds draws the wireframe box of the realized mesh.
func (r *Renderer) DrawBounds(model, view, projection math.Mat4) {
	if r.lines.count == 0 {
		return
	}

	p := r.linesProgram
	p.Use()
	p.SetMat4("uModel", model)
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", projection)
	p.SetVec4("uColor", 0.2, 0.9, 0.3, 1)

	gl.BindVertexArray(r.lines.vao)
	gl.DrawArrays(gl.LINES, 0, r.lines.count)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) deleteMesh() {
	if r.gpu.vao != 0 {
		gl.DeleteVertexArrays(1, &r.gpu.vao)
	}
	if r.gpu.vbo != 0 {
		gl.DeleteBuffers(1, &r.gpu.vbo)
	}
	if r.gpu.ebo != 0 {
		gl.DeleteBuffers(1, &r.gpu.ebo)
	}
	r.gpu = gpuMesh{}
}

func (r *Renderer) deleteTexture() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.deleteMesh()
	r.deleteTexture()
	if r.lines.vao != 0 {
		gl.DeleteVertexArrays(1, &r.lines.vao)
	}
	if r.lines.vbo != 0 {
		gl.DeleteBuffers(1, &r.lines.vbo)
	}
	r.meshProgram.Delete()
	r.linesProgram.Delete()
}
