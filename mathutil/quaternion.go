package mathutil

import "math"

// Quaternion uses the scalar-first Hamilton convention (w, x, y, z), as
// required by the rigid-transform composition the calibration solvers rely
// on. This is the opposite field order from the teacher's generated
// vec.Quaternion (which is scalar-last); the calibration math is only
// correct under scalar-first composition, so the layout was changed
// deliberately rather than inherited.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Product computes the Hamilton product a*b (apply b first, then a).
func (a Quaternion) Product(b Quaternion) Quaternion {
	return Quaternion{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

func (q Quaternion) SumSqr() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

func (q Quaternion) Magnitude() float64 {
	return math.Sqrt(q.SumSqr())
}

// Normal returns q scaled to unit magnitude, or the identity quaternion if
// q is (near) zero.
func (q Quaternion) Normal() Quaternion {
	m := q.Magnitude()
	if m < 1e-12 {
		return IdentityQuaternion()
	}
	inv := 1 / m
	return Quaternion{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// RotateAboutAxis builds a quaternion rotating by angleRad radians about the
// given (unit) axis.
func RotateAboutAxis(axis Vec3, angleRad float64) Quaternion {
	half := angleRad / 2
	s := math.Sin(half)
	a := axis.Normalized()
	return Quaternion{
		W: math.Cos(half),
		X: a[0] * s,
		Y: a[1] * s,
		Z: a[2] * s,
	}
}

// ToMat3 converts a unit quaternion to its equivalent rotation matrix.
func (q Quaternion) ToMat3() Mat3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// RotateVec3 rotates v by the unit quaternion q.
func (q Quaternion) RotateVec3(v Vec3) Vec3 {
	return q.ToMat3().MulVec3(v)
}
