package calibration

import (
	"errors"

	"github.com/itohio/spacecalibrator/mathutil"
)

// ErrInsufficientDeltaPairs is returned when fewer than the minimum number
// of delta-rotation pairs survive thresholding; per spec.md §4.3, the SVD
// is still defined with fewer pairs but the fit is under-determined, so the
// quality analyzer is relied on to reject it. CalibrateRotation itself only
// fails outright below this floor, where the centroid/covariance step is
// meaningless.
var ErrInsufficientDeltaPairs = errors.New("calibration: fewer than 2 valid delta-rotation pairs")

// CalibrateRotation fits the rotation between the reference and target
// universes via Kabsch alignment of paired rotation-delta axes, per
// spec.md §4.3.
func CalibrateRotation(samples []Sample) (mathutil.EulerZYX, error) {
	var refAxes, targetAxes []mathutil.Vec3

	for i := 1; i < len(samples); i++ {
		for j := 0; j < i; j++ {
			d := DeltaRotationSamples(samples[i], samples[j])
			if !d.Valid {
				continue
			}
			refAxes = append(refAxes, d.RefAxis)
			targetAxes = append(targetAxes, d.TargetAxis)
		}
	}

	if len(refAxes) < 2 {
		return mathutil.EulerZYX{}, ErrInsufficientDeltaPairs
	}

	refCentroid := centroid(refAxes)
	targetCentroid := centroid(targetAxes)

	H := mathutil.NewMatrix(3, 3)
	for k := range refAxes {
		a := refAxes[k].Sub(refCentroid)
		b := targetAxes[k].Sub(targetCentroid)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				H[r][c] += a[r] * b[c]
			}
		}
	}

	svd, err := mathutil.SVD(H)
	if err != nil {
		return mathutil.EulerZYX{}, err
	}

	U := mathutil.MatrixToMat3(svd.U)
	Vt := mathutil.MatrixToMat3(svd.Vt)
	V := Vt.Transpose()

	d := U.Mul(Vt).Det()
	D := mathutil.Identity3()
	if d < 0 {
		D[2][2] = -1
	}

	R := V.Mul(D).Mul(U.Transpose())
	R = R.Transpose() // align with this package's storage convention

	return mathutil.Mat3ToEulerZYX(R), nil
}

func centroid(vs []mathutil.Vec3) mathutil.Vec3 {
	var sum mathutil.Vec3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	if len(vs) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(vs)))
}
