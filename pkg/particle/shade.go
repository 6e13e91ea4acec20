package particle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/render"
)

// brightness keeps additive splats from saturating on dense clouds.
const brightness = 0.45

// heroSpread enlarges the background cloud behind the foreground models.
const heroSpread = 1.8

// Len implements render.PointSource.
func (m *Model) Len() int {
	return m.cloud.Len()
}

// Point implements render.PointSource. Positions are offset along the
// point's random vector by dispersion and by a pulse driven by time and
// the pressed uniform, then scaled. Point size shrinks with scale so a
// collapsed model vanishes instead of piling up at the origin.
func (m *Model) Point(i int) (mgl64.Vec3, render.Color, float64) {
	p := m.cloud.Positions[i]
	r := m.cloud.Random[i]
	u := &m.U

	var offset float64
	if m.opts.Hero {
		// Slow wave rolling up the cloud
		offset = u.Pressed * 0.12 * math.Sin(u.Time*0.8+p.Y()*3+r.X()*math.Pi)
		p = p.Mul(heroSpread)
	} else {
		offset = u.Pressed * 0.03 * math.Sin(u.Time*2+r.X()*math.Pi)
	}
	offset += u.Dispersion * 0.5

	pos := p.Add(r.Mul(offset)).Mul(u.Scale)
	return pos, m.colors[i], u.PointSize * u.Scale
}

// shade blends color1 to color2 by height, nudged by the point's random
// vector so bands are not perfectly flat.
func shade(c *Cloud, bounds [2]float64, c1, c2 colorful.Color) []render.Color {
	out := make([]render.Color, c.Len())
	for i, p := range c.Positions {
		t := math3d.MapRange(bounds[0], bounds[1], 0, 1, p.Y())
		t = math3d.Clamp(t*0.8+(c.Random[i].Z()*0.5+0.5)*0.2, 0, 1)
		col := render.ToRGBA(c1.BlendLab(c2, t))
		out[i] = render.Scale(col, brightness)
	}
	return out
}

func yRange(ps []mgl64.Vec3) [2]float64 {
	if len(ps) == 0 {
		return [2]float64{}
	}
	lo, hi := ps[0].Y(), ps[0].Y()
	for _, p := range ps[1:] {
		lo = math.Min(lo, p.Y())
		hi = math.Max(hi, p.Y())
	}
	return [2]float64{lo, hi}
}
