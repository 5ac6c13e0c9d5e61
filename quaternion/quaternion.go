/*
Package quaternion provides the rotation quaternions used to move point sets
around in space. Arithmetic is delegated to gonum's num/quat package; this
package adds the pieces a docking search needs on top of it: axis-angle
construction, rotation of a single 3-vector and random orientations.

Rotations follow the right-hand rule. Rotating (1, 0, 0) by +pi/2 about the
+y axis yields (0, 0, -1).
*/
package quaternion

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
)

// Tolerances used by Equal.
const (
	absTol = 1e-8
	relTol = 1e-5
)

// Q is a quaternion W + Xi + Yj + Zk. A Q used for rotation should have
// unit norm; no method normalizes implicitly.
type Q struct {
	W, X, Y, Z float64
}

// New constructs a quaternion from its four components.
func New(w, x, y, z float64) Q {
	return Q{W: w, X: x, Y: y, Z: z}
}

// Identity returns the quaternion that represents no rotation.
func Identity() Q {
	return Q{W: 1}
}

// FromAxisAngle returns the quaternion rotating by angle radians about axis.
// The axis is used as given. It must already have unit length for the
// result to be a unit quaternion.
func FromAxisAngle(axis [3]float64, angle float64) Q {
	s, c := math.Sincos(angle / 2.0)
	return Q{W: c, X: axis[0] * s, Y: axis[1] * s, Z: axis[2] * s}
}

// Random returns a uniformly distributed random unit quaternion using
// Shoemake's subgroup algorithm.
func Random(rng *rand.Rand) Q {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	s2, c2 := math.Sincos(2 * math.Pi * u2)
	s3, c3 := math.Sincos(2 * math.Pi * u3)
	return Q{W: a * s2, X: a * c2, Y: b * s3, Z: b * c3}
}

func (q Q) number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func fromNumber(n quat.Number) Q {
	return Q{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}

// Rotate returns the image of v under the rotation represented by q, i.e.,
// the vector part of q * v * conj(q).
func (q Q) Rotate(v [3]float64) [3]float64 {
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	n := q.number()
	r := quat.Mul(quat.Mul(n, p), quat.Conj(n))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// Mul returns the Hamilton product q * r. Rotating by the result is the
// same as rotating by r and then by q.
func (q Q) Mul(r Q) Q {
	return fromNumber(quat.Mul(q.number(), r.number()))
}

// Conjugate returns q with its vector part negated.
func (q Q) Conjugate() Q {
	return Q{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse of q. For unit quaternions
// this is the conjugate.
func (q Q) Inverse() Q {
	return fromNumber(quat.Inv(q.number()))
}

// Norm returns the Euclidean norm of q.
func (q Q) Norm() float64 {
	return quat.Abs(q.number())
}

// Normalize returns q scaled to unit norm. The zero quaternion is returned
// unchanged.
func (q Q) Normalize() Q {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Q{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Dot returns the four dimensional dot product of q and r.
func (q Q) Dot(r Q) float64 {
	return q.W*r.W + q.X*r.X + q.Y*r.Y + q.Z*r.Z
}

// Distance measures how far apart the rotations q and r are, as
// 1 - (q.r)^2. It is 0 for equivalent rotations (including q and -q) and 1
// for rotations that are 180 degrees apart.
func (q Q) Distance(r Q) float64 {
	d := q.Dot(r)
	return 1 - d*d
}

// Equal reports whether every component of q is close to the corresponding
// component of r.
func (q Q) Equal(r Q) bool {
	return scalar.EqualWithinAbsOrRel(q.W, r.W, absTol, relTol) &&
		scalar.EqualWithinAbsOrRel(q.X, r.X, absTol, relTol) &&
		scalar.EqualWithinAbsOrRel(q.Y, r.Y, absTol, relTol) &&
		scalar.EqualWithinAbsOrRel(q.Z, r.Z, absTol, relTol)
}

func (q Q) String() string {
	return fmt.Sprintf("(%f, %f, %f, %f)", q.W, q.X, q.Y, q.Z)
}
