// Package models provides mesh loading and surface sampling for showcase.
package models

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoGeometry is returned when an asset holds no usable triangles.
var ErrNoGeometry = errors.New("no triangle geometry")

// Mesh is a triangle soup in model space.
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	Faces     [][3]int // Indices into Positions

	// Bounding box (calculated on load)
	BoundsMin mgl64.Vec3
	BoundsMax mgl64.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: make([]mgl64.Vec3, 0),
		Faces:     make([][3]int, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		for i := range 3 {
			m.BoundsMin[i] = min(m.BoundsMin[i], p[i])
			m.BoundsMax[i] = max(m.BoundsMax[i], p[i])
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() mgl64.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Mul(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() mgl64.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	f := m.Faces[i]
	return m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat mgl64.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mgl64.TransformCoordinate(p, mat)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it so its largest
// dimension equals extent.
func (m *Mesh) Fit(extent float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := max(size.X(), size.Y(), size.Z())
	if maxDim <= 0 {
		return
	}
	center := m.Center()
	scale := extent / maxDim
	m.Transform(mgl64.Scale3D(scale, scale, scale).Mul4(mgl64.Translate3D(-center.X(), -center.Y(), -center.Z())))
}

// Edges returns each undirected triangle edge once, for wireframe drawing.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3)
	edges := make([][2]int, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for k := range 3 {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}
