package particle

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/models"
)

// Cloud is a sampled point set with a per-point random offset used for
// dispersion and pulsing.
type Cloud struct {
	Positions []mgl64.Vec3
	Random    []mgl64.Vec3 // each component in [-1, 1)
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Positions)
}

// SurfaceCloud samples n points over the surface of mesh, weighted by
// triangle area.
func SurfaceCloud(mesh *models.Mesh, n int, rng *rand.Rand) (*Cloud, error) {
	if mesh == nil {
		return nil, models.ErrNoGeometry
	}
	sampler, err := models.NewSurfaceSampler(mesh)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", mesh.Name, err)
	}
	return &Cloud{
		Positions: sampler.SampleN(rng, n),
		Random:    jitter(n, rng),
	}, nil
}

// CubeCloud places n points uniformly in the unit cube centred on the
// origin. Hero models without an asset use it.
func CubeCloud(n int, rng *rand.Rand) *Cloud {
	pos := make([]mgl64.Vec3, n)
	for i := range pos {
		pos[i] = math3d.RandomInCube(rng, 1)
	}
	return &Cloud{Positions: pos, Random: jitter(n, rng)}
}

func jitter(n int, rng *rand.Rand) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, n)
	for i := range out {
		out[i] = math3d.RandomSigned(rng)
	}
	return out
}
