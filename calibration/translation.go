package calibration

import "github.com/itohio/spacecalibrator/mathutil"

// CalibrateTranslation fits the translational offset between the
// reference and target universes, per spec.md §4.4. Must be called after
// the caller has rotated every samples[*].Target pose in place by the
// candidate rotation from CalibrateRotation.
func CalibrateTranslation(samples []Sample) (mathutil.Vec3, error) {
	var rows [][3]float64
	var constants []float64

	appendRow := func(row mathutil.Vec3, rhs float64) {
		rows = append(rows, [3]float64{row[0], row[1], row[2]})
		constants = append(constants, rhs)
	}

	for i := 1; i < len(samples); i++ {
		for j := 0; j < i; j++ {
			si, sj := samples[i], samples[j]
			if !si.Valid || !sj.Valid {
				continue
			}

			deltaI := si.Ref.Trans.Sub(si.Target.Trans)
			deltaJ := sj.Ref.Trans.Sub(sj.Target.Trans)

			qaI := si.Ref.Rot.Transpose()
			qaJ := sj.Ref.Rot.Transpose()
			dQA := mat3Sub(qaJ, qaI)
			cA := qaJ.MulVec3(deltaJ).Sub(qaI.MulVec3(deltaI))
			for r := 0; r < 3; r++ {
				appendRow(mathutil.Vec3{dQA[r][0], dQA[r][1], dQA[r][2]}, cA[r])
			}

			qbI := si.Target.Rot.Transpose()
			qbJ := sj.Target.Rot.Transpose()
			dQB := mat3Sub(qbJ, qbI)
			cB := qbJ.MulVec3(deltaJ).Sub(qbI.MulVec3(deltaI))
			for r := 0; r < 3; r++ {
				appendRow(mathutil.Vec3{dQB[r][0], dQB[r][1], dQB[r][2]}, cB[r])
			}
		}
	}

	if len(rows) < 3 {
		return mathutil.Vec3{}, ErrInsufficientDeltaPairs
	}

	coefficients := mathutil.NewMatrix(len(rows), 3)
	for i, row := range rows {
		coefficients[i][0], coefficients[i][1], coefficients[i][2] = row[0], row[1], row[2]
	}

	t, err := mathutil.SolveLeastSquares(coefficients, constants)
	if err != nil {
		return mathutil.Vec3{}, err
	}

	return mathutil.Vec3{t[0] * 100, t[1] * 100, t[2] * 100}, nil
}

func mat3Sub(a, b mathutil.Mat3) mathutil.Mat3 {
	var r mathutil.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}
	return r
}
