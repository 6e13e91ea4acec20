package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Wireframe renders line geometry in 3D.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a world-space line.
func (w *Wireframe) DrawLine3D(p1, p2 mgl64.Vec3, color Color) {
	w.drawLine(w.camera.ViewProjectionMatrix(), p1, p2, color)
}

// DrawEdges draws every edge between positions, transformed by model.
// It returns the number of edges drawn.
func (w *Wireframe) DrawEdges(positions []mgl64.Vec3, edges [][2]int, model mgl64.Mat4, color Color) int {
	mvp := w.camera.ViewProjectionMatrix().Mul4(model)
	drawn := 0
	for _, e := range edges {
		if w.drawLine(mvp, positions[e[0]], positions[e[1]], color) {
			drawn++
		}
	}
	return drawn
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := mgl64.Vec3{}
	w.DrawLine3D(origin, mgl64.Vec3{length, 0, 0}, ColorRed)
	w.DrawLine3D(origin, mgl64.Vec3{0, length, 0}, ColorGreen)
	w.DrawLine3D(origin, mgl64.Vec3{0, 0, length}, RGB(0, 0, 255))
}

func (w *Wireframe) drawLine(mvp mgl64.Mat4, p1, p2 mgl64.Vec3, color Color) bool {
	x1, y1, _, vis1 := project(mvp, p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := project(mvp, p2, w.fb.Width, w.fb.Height)

	// No clipping: lines leaving the frustum are dropped
	if !vis1 || !vis2 {
		return false
	}

	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
	return true
}
