package reverb

import (
	"math"
	"math/rand"
)

// Vector3 represents a point or direction in 3D space. Every operation
// returns a new value.
type Vector3 struct {
	X, Y, Z Real
}

// Vector functions
func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vector3) Mul(s Real) Vector3    { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product between two vectors.
func (a Vector3) Dot(b Vector3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the vector orthogonal to both a and b.
func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of the vector.
func (v Vector3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector. The input must be
// non-zero; degenerate geometry is a caller bug.
func (v Vector3) Norm() Vector3 {
	l := v.Len()
	if l == 0 {
		panic("Norm of zero-length vector")
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

// RandomDir returns a direction uniformly distributed on the unit sphere,
// built with Marsaglia's method: sample the unit disc by rejection, then
// map analytically onto the sphere. No trig calls per accepted sample.
func RandomDir(rng *rand.Rand) Vector3 {
	for {
		x1 := rng.Float64()*2 - 1
		x2 := rng.Float64()*2 - 1
		d := x1*x1 + x2*x2
		if d > 1 {
			continue
		}
		s := math.Sqrt(1 - d)
		return Vector3{2 * x1 * s, 2 * x2 * s, 1 - 2*d}
	}
}

// RandomDirReject returns a direction uniformly distributed on the unit
// sphere by rejection-sampling the unit ball and normalizing (expected
// ~1.91 trials per sample). Interchangeable with RandomDir.
func RandomDirReject(rng *rand.Rand) Vector3 {
	for {
		v := Vector3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		l := v.Len()
		if l >= 1 || l == 0 {
			continue
		}
		return v.Mul(1 / l)
	}
}
