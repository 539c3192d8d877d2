package mathutil

import "math"

// Mat3 is a row-major 3x3 matrix, as used by the teacher's mat.Matrix3x3,
// but float64 throughout per the calibration solvers' double-precision
// requirement.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationX builds a rotation matrix around X by a radians.
func RotationX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotationY builds a rotation matrix around Y by a radians.
func RotationY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// RotationZ builds a rotation matrix around Z by a radians.
func RotationZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Mul computes m*o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// MulVec3 computes m*v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[j][i] = m[i][j]
		}
	}
	return r
}

func (m Mat3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// AxisUnnormalized returns the (unnormalized) rotation axis of m, per
// spec.md §4.1: magnitude grows with sin of the rotation angle, so it is
// used for validity/threshold checks before normalizing.
func (m Mat3) AxisUnnormalized() Vec3 {
	return Vec3{
		m[2][1] - m[1][2],
		m[0][2] - m[2][0],
		m[1][0] - m[0][1],
	}
}

// Angle returns the rotation angle encoded by m, in radians, via
// acos((trace-1)/2), clamped for numerical safety.
func (m Mat3) Angle() float64 {
	c := (m.Trace() - 1) / 2
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// ToQuaternion converts a proper rotation matrix to a unit quaternion.
func (m Mat3) ToQuaternion() Quaternion {
	tr := m.Trace()
	var q Quaternion
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q.W = s / 4
		q.X = (m[2][1] - m[1][2]) / s
		q.Y = (m[0][2] - m[2][0]) / s
		q.Z = (m[1][0] - m[0][1]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q.W = (m[2][1] - m[1][2]) / s
		q.X = s / 4
		q.Y = (m[0][1] + m[1][0]) / s
		q.Z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q.W = (m[0][2] - m[2][0]) / s
		q.X = (m[0][1] + m[1][0]) / s
		q.Y = s / 4
		q.Z = (m[1][2] + m[2][1]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q.W = (m[1][0] - m[0][1]) / s
		q.X = (m[0][2] + m[2][0]) / s
		q.Y = (m[1][2] + m[2][1]) / s
		q.Z = s / 4
	}
	return q.Normal()
}
