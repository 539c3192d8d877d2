package calibration

import "github.com/itohio/spacecalibrator/mathutil"

// Sample is one paired (reference, target) pose observation, drawn
// atomically from a single tracking-runtime call (spec.md §3, §5).
type Sample struct {
	Ref    mathutil.Pose
	Target mathutil.Pose
	Valid  bool
}

// DSample is the pair of unit rotation-delta axes derived from two
// Samples of the same rigidly-attached pair (spec.md §3, §4.3).
type DSample struct {
	RefAxis    mathutil.Vec3
	TargetAxis mathutil.Vec3
	Valid      bool
}

// Threshold gating constants from spec.md §4.3 step 2.
const (
	minDeltaAngle = 0.4  // radians
	minAxisNorm   = 0.01 // unnormalized axis magnitude
)

// DeltaRotationSamples derives the delta-rotation axis pair between
// samples a and b (a expected to be the later sample, b the earlier one),
// rejecting near-identical pose pairs per spec.md §4.3 step 2.
func DeltaRotationSamples(a, b Sample) DSample {
	dref := a.Ref.Rot.Mul(b.Ref.Rot.Transpose())
	dtarget := a.Target.Rot.Mul(b.Target.Rot.Transpose())

	refAngle := dref.Angle()
	targetAngle := dtarget.Angle()
	refAxis := dref.AxisUnnormalized()
	targetAxis := dtarget.AxisUnnormalized()

	if refAngle <= minDeltaAngle || targetAngle <= minDeltaAngle ||
		refAxis.Norm() <= minAxisNorm || targetAxis.Norm() <= minAxisNorm {
		return DSample{}
	}

	return DSample{
		RefAxis:    refAxis.Normalized(),
		TargetAxis: targetAxis.Normalized(),
		Valid:      true,
	}
}
