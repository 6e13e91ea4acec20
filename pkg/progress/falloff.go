package progress

import "math"

// Falloff spreads, in ticks.
const (
	ActiveSpread = 10.0
	EdgeSpread   = 8.0
)

// Gauss is a gaussian falloff with sigma spread/2.5, cut to zero past
// spread.
func Gauss(dist, spread float64) float64 {
	if dist > spread {
		return 0
	}
	sigma := spread / 2.5
	return math.Exp(-(dist * dist) / (2 * sigma * sigma))
}

// Quad is a quadratic falloff reaching zero at spread.
func Quad(dist, spread float64) float64 {
	if dist > spread {
		return 0
	}
	return math.Pow(1-dist/spread, 2)
}

// Visual is the resting look of one tick.
type Visual struct {
	Scale   float64
	Opacity float64
}

// TickVisual computes the look of tick i of count when active is the
// selected tick. Ticks near the selection and near either end are larger.
func TickVisual(i, active, count int) Visual {
	strActive := Gauss(math.Abs(float64(i-active)), ActiveSpread)
	strStart := Quad(math.Abs(float64(i)), EdgeSpread)
	strEnd := Quad(math.Abs(float64(i-(count-1))), EdgeSpread)

	return Visual{
		Scale:   0.5 + strActive*0.3 + strStart*0.2 + strEnd*0.2,
		Opacity: 0.2 + 0.8*strActive,
	}
}
