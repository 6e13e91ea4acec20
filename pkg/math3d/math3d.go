// Package math3d provides the scalar and sampling helpers used by showcase.
// Vector and matrix types come from mgl64.
package math3d

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MapRange linearly maps v from [inMin, inMax] to [outMin, outMax].
// Values outside the input range extrapolate.
func MapRange(inMin, inMax, outMin, outMax, v float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

// Wrap returns i modulo n in [0, n). n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// RandomInCube returns a uniform point in the axis-aligned cube of the given
// edge length centered on the origin.
func RandomInCube(rng *rand.Rand, size float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(rng.Float64() - 0.5) * size,
		(rng.Float64() - 0.5) * size,
		(rng.Float64() - 0.5) * size,
	}
}

// RandomSigned returns a vector with each component uniform in [-1, 1).
func RandomSigned(rng *rand.Rand) mgl64.Vec3 {
	return mgl64.Vec3{
		rng.Float64()*2 - 1,
		rng.Float64()*2 - 1,
		rng.Float64()*2 - 1,
	}
}

// TriangleArea returns the area of triangle abc.
func TriangleArea(a, b, c mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() * 0.5
}

// SampleTriangle returns a point distributed uniformly over triangle abc.
func SampleTriangle(rng *rand.Rand, a, b, c mgl64.Vec3) mgl64.Vec3 {
	u, v := rng.Float64(), rng.Float64()
	// Fold the unit square onto the triangle
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	return a.Add(b.Sub(a).Mul(u)).Add(c.Sub(a).Mul(v))
}

// EulerXY builds a rotation matrix for Euler angles applied in XYZ order
// with no Z component.
func EulerXY(x, y float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(x).Mul4(mgl64.HomogRotate3DY(y))
}
