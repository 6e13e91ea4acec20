package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PointSource yields shaded points in model space.
type PointSource interface {
	Len() int
	// Point returns the model-space position, colour and point size of
	// point i. A size of zero or less skips the point.
	Point(i int) (pos mgl64.Vec3, c Color, size float64)
}

// pointScale converts a point size at unit depth into framebuffer pixels
// per row of resolution.
const pointScale = 1.0 / 120

// PointRenderer splats point clouds additively into a framebuffer.
// There is no depth test: overlapping points brighten.
type PointRenderer struct {
	camera *Camera
	fb     *Framebuffer
}

// NewPointRenderer creates a point renderer drawing through camera into fb.
func NewPointRenderer(camera *Camera, fb *Framebuffer) *PointRenderer {
	return &PointRenderer{camera: camera, fb: fb}
}

// DrawPoints projects every point of src through model and splats it.
// opacity scales every point's contribution. It returns how many points
// landed on screen.
func (r *PointRenderer) DrawPoints(src PointSource, model mgl64.Mat4, opacity float64) int {
	if src == nil || opacity <= 0 {
		return 0
	}
	mvp := r.camera.ViewProjectionMatrix().Mul4(model)
	pxScale := float64(r.fb.Height) * pointScale

	drawn := 0
	n := src.Len()
	for i := range n {
		pos, c, size := src.Point(i)
		if size <= 0 {
			continue
		}
		x, y, depth, ok := project(mvp, pos, r.fb.Width, r.fb.Height)
		if !ok {
			continue
		}
		r.splat(x, y, size*pxScale/depth, c, opacity)
		drawn++
	}
	return drawn
}

// splat draws one point of the given pixel radius. Sub-pixel points fade
// by coverage instead of vanishing.
func (r *PointRenderer) splat(x, y, radius float64, c Color, opacity float64) {
	if radius <= 0.5 {
		r.fb.Add(int(x), int(y), c, opacity*radius*2)
		return
	}

	x0, x1 := int(math.Floor(x-radius)), int(math.Ceil(x+radius))
	y0, y1 := int(math.Floor(y-radius)), int(math.Ceil(y+radius))
	r2 := radius * radius
	for py := y0; py <= y1; py++ {
		dy := float64(py) + 0.5 - y
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - x
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			// Soft round sprite: bright core, faded rim
			r.fb.Add(px, py, c, opacity*(1-d2/r2))
		}
	}
}
