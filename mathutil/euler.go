package mathutil

import "math"

// EulerZYX holds a ZYX-order Euler triple in degrees: index 0 is the
// rotation about Z, index 1 about Y, index 2 about X. Composition order is
// Z, then Y, then X applied first (rightmost applied first), matching
// spec.md §4.1's VRRotationQuat convention exactly. Label mapping used
// elsewhere in the calibration UI: yaw = e[1], pitch = e[2], roll = e[0].
type EulerZYX [3]float64

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// ToQuaternion composes Z(e[0]) * Y(e[1]) * X(e[2]) as successive Hamilton
// products, so the X rotation is applied first.
func (e EulerZYX) ToQuaternion() Quaternion {
	qz := RotateAboutAxis(Vec3{0, 0, 1}, deg2rad(e[0]))
	qy := RotateAboutAxis(Vec3{0, 1, 0}, deg2rad(e[1]))
	qx := RotateAboutAxis(Vec3{1, 0, 0}, deg2rad(e[2]))
	return qz.Product(qy).Product(qx)
}

// ToMat3 is equivalent to ToQuaternion().ToMat3(), provided directly for
// callers that only need the matrix.
func (e EulerZYX) ToMat3() Mat3 {
	return RotationZ(deg2rad(e[0])).Mul(RotationY(deg2rad(e[1]))).Mul(RotationX(deg2rad(e[2])))
}

// Mat3ToEulerZYX decomposes a proper rotation matrix assumed to equal
// Rz(e0)*Ry(e1)*Rx(e2) back into degrees, inverting ToMat3/ToQuaternion.
func Mat3ToEulerZYX(m Mat3) EulerZYX {
	sy := -m[2][0]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	e1 := math.Asin(sy)
	e2 := math.Atan2(m[2][1], m[2][2])
	e0 := math.Atan2(m[1][0], m[0][0])
	return EulerZYX{rad2deg(e0), rad2deg(e1), rad2deg(e2)}
}

// QuaternionToEulerZYX decomposes via the equivalent rotation matrix.
func QuaternionToEulerZYX(q Quaternion) EulerZYX {
	return Mat3ToEulerZYX(q.ToMat3())
}
