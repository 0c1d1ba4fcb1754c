// Package renderer draws figure pieces with OpenGL. A Renderer is the
// viewer's controller.Sink: rebuilt figures are uploaded once and pose
// updates only change the per-piece model matrices.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geosim/internal/engine/renderer/shaders"
	"github.com/Faultbox/geosim/internal/engine/shader"
	"github.com/Faultbox/geosim/internal/logger"
	gm "github.com/Faultbox/geosim/pkg/math"
	"github.com/Faultbox/geosim/pkg/figure"
)

// position + normal
const vertexSize = 6 * 4

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	Color      [3]float32 // base piece color
	LabelColor [3]float32
}

type pieceMesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering of a figure.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	fig    *figure.Figure
	meshes []pieceMesh

	// Label anchors drawn as points
	markerVAO, markerVBO uint32
	markerCount          int32
	markerData           []float32
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
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
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.CULL_FACE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(shaders.PieceVertexShader, shaders.PieceFragmentShader,
		"uModel", "uViewProj", "uLightDir", "uColor", "uUnlit")
	if err != nil {
		return nil, fmt.Errorf("failed to create piece shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.markerVAO)
	gl.GenBuffers(1, &r.markerVBO)
	gl.BindVertexArray(r.markerVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.markerVBO)
	setVertexLayout()
	gl.BindVertexArray(0)

	return r, nil
}

// FigureRebuilt uploads the local-space geometry of every piece.
func (r *Renderer) FigureRebuilt(f *figure.Figure) {
	r.deleteMeshes()

	r.meshes = make([]pieceMesh, len(f.Pieces))
	triangles := 0
	for i := range f.Pieces {
		r.meshes[i] = uploadGeometry(f.Pieces[i].Geometry)
		triangles += int(r.meshes[i].count / 3)
	}
	r.log.Debug("figure uploaded",
		zap.Stringer("type", f.Type),
		zap.Int("pieces", len(f.Pieces)),
		zap.Int("triangles", triangles),
	)

	r.PosesUpdated(f)
}

// PosesUpdated records the figure whose current poses are drawn next
// and refreshes the label anchors.
func (r *Renderer) PosesUpdated(f *figure.Figure) {
	r.fig = f

	r.markerData = r.markerData[:0]
	for i := range f.Pieces {
		pos, ok := f.Pieces[i].LabelPosition()
		if !ok {
			continue
		}
		n := f.Pieces[i].Current.Normal()
		r.markerData = append(r.markerData,
			float32(pos.X), float32(pos.Y), float32(pos.Z),
			float32(n.X), float32(n.Y), float32(n.Z))
	}
	r.markerCount = int32(len(r.markerData) / 6)

	if r.markerCount > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.markerVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.markerData)*4, unsafe.Pointer(&r.markerData[0]), gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Render clears the bound framebuffer and draws the figure.
func (r *Renderer) Render(view, proj gm.Mat4, lightDir gm.Vec3) {
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.fig == nil {
		return
	}

	r.program.Use()
	r.program.SetMat4("uViewProj", proj.Mul(view))
	r.program.SetVec3("uLightDir", lightDir)
	r.program.SetFloat("uUnlit", 0)

	for i := range r.fig.Pieces {
		if i >= len(r.meshes) {
			break
		}
		m := r.meshes[i]
		r.program.SetMat4("uModel", r.fig.Pieces[i].Transform())
		r.program.SetVec3("uColor", tone(r.config.Color, i))
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}

	if r.markerCount > 0 {
		lc := r.config.LabelColor
		r.program.SetMat4("uModel", gm.Identity())
		r.program.SetVec3("uColor", gm.Vec3{X: float64(lc[0]), Y: float64(lc[1]), Z: float64(lc[2])})
		r.program.SetFloat("uUnlit", 1)
		gl.BindVertexArray(r.markerVAO)
		gl.DrawArrays(gl.POINTS, 0, r.markerCount)
	}

	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.deleteMeshes()
	if r.markerVAO != 0 {
		gl.DeleteVertexArrays(1, &r.markerVAO)
	}
	if r.markerVBO != 0 {
		gl.DeleteBuffers(1, &r.markerVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

func (r *Renderer) deleteMeshes() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	r.meshes = nil
}

func uploadGeometry(g figure.Geometry) pieceMesh {
	tris := g.Triangles()
	vertices := make([]float32, 0, len(tris)*3*6)
	for _, t := range tris {
		n := t.Normal()
		for _, v := range t {
			vertices = append(vertices,
				float32(v.X), float32(v.Y), float32(v.Z),
				float32(n.X), float32(n.Y), float32(n.Z))
		}
	}

	var m pieceMesh
	m.count = int32(len(tris) * 3)
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}
	setVertexLayout()

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

// setVertexLayout describes the bound buffer to the bound vertex array.
func setVertexLayout() {
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
}

// tone varies the base color per piece so that adjacent faces differ.
func tone(c [3]float32, i int) gm.Vec3 {
	k := float32(1)
	if i%2 == 1 {
		k += 0.15
	}
	if i%3 == 2 {
		k -= 0.2
	}
	return gm.Vec3{
		X: float64(min(c[0]*k, 1)),
		Y: float64(min(c[1]*k, 1)),
		Z: float64(min(c[2]*k, 1)),
	}
}
