package mathutil

// Pose is a rigid transform: an orthonormal rotation and a translation.
type Pose struct {
	Rot   Mat3
	Trans Vec3
}

// IdentityPose returns the no-op pose.
func IdentityPose() Pose {
	return Pose{Rot: Identity3()}
}

// ApplyTransform composes the rigid transform (t, R) with pose, per
// spec.md §4.1: rot' = R*pose.Rot, trans' = t + R*pose.Trans.
func ApplyTransform(pose Pose, t Vec3, R Mat3) Pose {
	return Pose{
		Rot:   R.Mul(pose.Rot),
		Trans: t.Add(R.MulVec3(pose.Trans)),
	}
}
