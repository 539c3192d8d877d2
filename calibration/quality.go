package calibration

import (
	"math"

	"github.com/itohio/spacecalibrator/mathutil"
)

// RMSRejectThreshold is the retargeting RMS error (in metres) above which
// a calibration is rejected, per spec.md §4.5(b).
const RMSRejectThreshold = 0.1

// CoplanarEigenvalueThreshold is the smallest normalized PCA axis variance
// below which the sample set is flagged as coplanar, per spec.md §4.5(d).
const CoplanarEigenvalueThreshold = 5e-5

// sensitivityProbeAngle is the perturbation applied to vrRotQuat for the
// rotation-sensitivity probe, per spec.md §4.5(c).
const sensitivityProbeAngle = 10 * math.Pi / 180

// DeriveRefToTargetOffset averages, across all valid samples, the
// reference-local position of the candidate-transformed target: the
// average location of the target in reference-local coordinates
// (spec.md §4.5(a)).
func DeriveRefToTargetOffset(samples []Sample, vrTrans mathutil.Vec3, vrRot mathutil.Quaternion) mathutil.Vec3 {
	R := vrRot.ToMat3()
	var sum mathutil.Vec3
	n := 0
	for _, s := range samples {
		if !s.Valid {
			continue
		}
		updated := mathutil.ApplyTransform(s.Target, vrTrans, R)
		hmdSpace := s.Ref.Rot.Transpose().MulVec3(updated.Trans.Sub(s.Ref.Trans))
		sum = sum.Add(hmdSpace)
		n++
	}
	if n == 0 {
		return mathutil.Vec3{}
	}
	return sum.Scale(1 / float64(n))
}

// RetargetingErrorRMS computes the RMS Euclidean distance between the
// candidate-transformed target position and the position predicted from
// the reference pose and the derived offset, per spec.md §4.5(b).
func RetargetingErrorRMS(samples []Sample, offset mathutil.Vec3, vrTrans mathutil.Vec3, vrRot mathutil.Quaternion) float64 {
	R := vrRot.ToMat3()
	sumSq := 0.0
	n := 0
	for _, s := range samples {
		if !s.Valid {
			continue
		}
		updated := mathutil.ApplyTransform(s.Target, vrTrans, R)
		predicted := s.Ref.Rot.MulVec3(offset).Add(s.Ref.Trans)
		d := updated.Trans.Sub(predicted)
		sumSq += d.SumSqr()
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(n))
}

// SensitivityResult is the outcome of ComputeSensitivity.
type SensitivityResult struct {
	BaseError float64
	DeltaX    float64
	DeltaY    float64
	DeltaZ    float64
	Reject    bool
}

// ComputeSensitivity runs the rotation-sensitivity probe of spec.md
// §4.5(c): it recomputes the retargeting RMS after left-multiplying
// vrRotQuat by 10-degree rotations about each axis in turn, and decides
// rejection from the unperturbed base error alone (spec.md §4.5,
// "Rejection policy").
func ComputeSensitivity(samples []Sample, vrTrans mathutil.Vec3, vrRot mathutil.Quaternion) SensitivityResult {
	offset := DeriveRefToTargetOffset(samples, vrTrans, vrRot)
	base := RetargetingErrorRMS(samples, offset, vrTrans, vrRot)

	probe := func(axis mathutil.Vec3) float64 {
		perturbed := mathutil.RotateAboutAxis(axis, sensitivityProbeAngle).Product(vrRot)
		perturbedOffset := DeriveRefToTargetOffset(samples, vrTrans, perturbed)
		return RetargetingErrorRMS(samples, perturbedOffset, vrTrans, perturbed)
	}

	xErr := probe(mathutil.Vec3{1, 0, 0})
	yErr := probe(mathutil.Vec3{0, 1, 0})
	zErr := probe(mathutil.Vec3{0, 0, 1})

	return SensitivityResult{
		BaseError: base,
		DeltaX:    xErr - base,
		DeltaY:    yErr - base,
		DeltaZ:    zErr - base,
		Reject:    base > RMSRejectThreshold,
	}
}

// ComputeIndependence checks whether the valid samples are coplanar
// (degenerate for rotation/translation fitting) via PCA on the candidate
// target-in-reference point cloud, per spec.md §4.5(d). It is advisory:
// the current design logs but never rejects on this result (spec.md §9
// Open Question, preserved deliberately — see DESIGN.md).
func ComputeIndependence(samples []Sample, vrTrans mathutil.Vec3, vrRot mathutil.Quaternion) (coplanar bool, smallestVariance float64) {
	R := vrRot.ToMat3()

	var points []mathutil.Vec3
	for _, s := range samples {
		if !s.Valid {
			continue
		}
		points = append(points, R.MulVec3(s.Target.Trans).Add(vrTrans).Sub(s.Ref.Trans))
	}
	n := len(points)
	if n == 0 {
		return false, 0
	}

	var mean mathutil.Vec3
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(n))

	devs := make([]mathutil.Vec3, n)
	dbar := 0.0
	for i, p := range points {
		d := p.Sub(mean)
		devs[i] = d
		dbar += d.Norm()
	}
	dbar /= float64(n)
	if dbar < 1e-12 {
		dbar = 1
	}

	var cov mathutil.Mat3
	for _, d := range devs {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov[r][c] += d[r] * d[c]
			}
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cov[r][c] /= float64(n)
		}
	}

	_, basis := mathutil.SymmetricEigen3(cov)
	basisInv := basis.Transpose() // orthonormal basis: inverse is transpose

	var variance mathutil.Vec3
	for _, d := range devs {
		proj := basisInv.MulVec3(d.Scale(1 / dbar))
		for k := 0; k < 3; k++ {
			variance[k] += proj[k] * proj[k]
		}
	}
	for k := 0; k < 3; k++ {
		variance[k] /= float64(n)
	}

	smallestVariance = math.Min(variance[0], math.Min(variance[1], variance[2]))
	return smallestVariance < CoplanarEigenvalueThreshold, smallestVariance
}
