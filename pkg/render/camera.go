package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in degrees
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     mgl64.Mat4
	projMatrix     mgl64.Mat4
	viewProjMatrix mgl64.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a camera at pos looking at the origin.
func NewCamera(fov float64, pos mgl64.Vec3) *Camera {
	return &Camera{
		Position:    pos,
		Up:          mgl64.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: 1,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	if c.viewDirty {
		c.viewMatrix = mgl64.LookAtV(c.Position, c.Target, c.Up)
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	if c.projDirty {
		c.projMatrix = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.AspectRatio, c.Near, c.Far)
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() mgl64.Mat4 {
	if c.viewDirty || c.projDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul4(c.ViewMatrix())
		c.viewDirty = false
		c.projDirty = false
	}
	return c.viewProjMatrix
}

// project maps p through mvp to pixel coordinates in a w x h target.
// depth is the clip-space w, the distance along the view axis.
func project(mvp mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y, depth float64, visible bool) {
	clip := mvp.Mul4x1(p.Vec4(1))

	// Check if behind camera
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}

	// Perspective divide to NDC (-1 to 1)
	inv := 1 / clip.W()
	nx, ny, nz := clip.X()*inv, clip.Y()*inv, clip.Z()*inv
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}

	x = (nx + 1) * 0.5 * float64(w)
	y = (1 - ny) * 0.5 * float64(h) // Y is flipped
	return x, y, clip.W(), true
}
