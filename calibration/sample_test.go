package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/spacecalibrator/mathutil"
)

func poseAt(refDeg mathutil.EulerZYX, trans mathutil.Vec3) mathutil.Pose {
	return mathutil.Pose{Rot: refDeg.ToMat3(), Trans: trans}
}

func TestDeltaRotationSamplesRejectsBelowThreshold(t *testing.T) {
	a := Sample{Ref: poseAt(mathutil.EulerZYX{0, 0, 0}, mathutil.Vec3{}), Target: poseAt(mathutil.EulerZYX{0, 0, 0}, mathutil.Vec3{}), Valid: true}
	b := Sample{Ref: poseAt(mathutil.EulerZYX{5, 0, 0}, mathutil.Vec3{}), Target: poseAt(mathutil.EulerZYX{5, 0, 0}, mathutil.Vec3{}), Valid: true}

	d := DeltaRotationSamples(a, b)
	assert.False(t, d.Valid, "a 5 degree delta is well under the 0.4 rad gate")
}

func TestDeltaRotationSamplesAcceptsAboveThreshold(t *testing.T) {
	a := Sample{Ref: poseAt(mathutil.EulerZYX{0, 0, 0}, mathutil.Vec3{}), Target: poseAt(mathutil.EulerZYX{0, 0, 0}, mathutil.Vec3{})}
	b := Sample{Ref: poseAt(mathutil.EulerZYX{40, 0, 0}, mathutil.Vec3{}), Target: poseAt(mathutil.EulerZYX{40, 0, 0}, mathutil.Vec3{})}

	d := DeltaRotationSamples(a, b)
	assert.True(t, d.Valid)
	assert.InDelta(t, 1.0, d.RefAxis.Norm(), 1e-9)
	assert.InDelta(t, 1.0, d.TargetAxis.Norm(), 1e-9)
}

func TestDeltaRotationSamplesAxisEqualityUnderRigidAttachment(t *testing.T) {
	// Two rigidly attached bodies: target is ref rotated by a fixed R*, so
	// the delta-rotation axes must agree up to that fixed rotation.
	rStar := mathutil.EulerZYX{15, -10, 5}.ToMat3()

	mk := func(refDeg mathutil.EulerZYX) Sample {
		refRot := refDeg.ToMat3()
		return Sample{
			Ref:    mathutil.Pose{Rot: refRot},
			Target: mathutil.Pose{Rot: rStar.Transpose().Mul(refRot)},
			Valid:  true,
		}
	}

	a := mk(mathutil.EulerZYX{0, 0, 0})
	b := mk(mathutil.EulerZYX{50, 20, 0})

	d := DeltaRotationSamples(a, b)
	assert.True(t, d.Valid)

	predicted := rStar.MulVec3(d.TargetAxis)
	diff := d.RefAxis.Sub(predicted).Norm()
	assert.Less(t, diff, 1e-6)
}
