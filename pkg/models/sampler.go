package models

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/showcase/pkg/math3d"
)

// SurfaceSampler draws points uniformly by area over a mesh surface.
type SurfaceSampler struct {
	mesh       *Mesh
	cumulative []float64 // running triangle area, one entry per face
	total      float64
}

// NewSurfaceSampler builds the area distribution for mesh.
func NewSurfaceSampler(mesh *Mesh) (*SurfaceSampler, error) {
	if mesh == nil || len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}

	s := &SurfaceSampler{
		mesh:       mesh,
		cumulative: make([]float64, len(mesh.Faces)),
	}
	n := len(mesh.Positions)
	for i, f := range mesh.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("sample %s: face %d references vertex %d of %d: %w",
					mesh.Name, i, v, n, ErrNoGeometry)
			}
		}
		a, b, c := mesh.Triangle(i)
		s.total += math3d.TriangleArea(a, b, c)
		s.cumulative[i] = s.total
	}

	if s.total <= 0 {
		return nil, fmt.Errorf("sample %s: %w", mesh.Name, ErrNoGeometry)
	}
	return s, nil
}

// Area returns the total surface area.
func (s *SurfaceSampler) Area() float64 {
	return s.total
}

// Sample returns one point on the surface.
func (s *SurfaceSampler) Sample(rng *rand.Rand) mgl64.Vec3 {
	target := rng.Float64() * s.total
	i := sort.SearchFloat64s(s.cumulative, target)
	if i >= len(s.cumulative) {
		i = len(s.cumulative) - 1
	}
	a, b, c := s.mesh.Triangle(i)
	return math3d.SampleTriangle(rng, a, b, c)
}

// SampleN returns n points on the surface.
func (s *SurfaceSampler) SampleN(rng *rand.Rand, n int) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, n)
	for i := range points {
		points[i] = s.Sample(rng)
	}
	return points
}
