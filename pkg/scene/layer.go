package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/showcase/pkg/particle"
	"github.com/taigrr/showcase/pkg/render"
)

// Layer is a group of models drawn together. The background layer holds
// the hero; the foreground holds the navigable models and follows the
// pointer.
type Layer struct {
	Models particle.Set
	Follow bool
}

// Draw splats every active model of the layer and returns the number of
// points drawn. rot is applied on top of each model's own rotation when
// the layer follows the pointer.
func (l *Layer) Draw(pr *render.PointRenderer, rot mgl64.Mat4) int {
	if l == nil {
		return 0
	}
	drawn := 0
	for _, m := range l.Models {
		if !m.IsActive() {
			continue
		}
		mat := m.Matrix()
		if l.Follow {
			mat = rot.Mul4(mat)
		}
		drawn += pr.DrawPoints(m, mat, 1)
	}
	return drawn
}
