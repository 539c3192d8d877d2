package mathutil

// SolveLeastSquares solves A*x = b in the least-squares sense via the
// Moore-Penrose pseudo-inverse built from SVD: x = V*S^+*U^T*b, per
// spec.md §4.4.
func SolveLeastSquares(A Matrix, b []float64) ([]float64, error) {
	res, err := SVD(A)
	if err != nil {
		return nil, err
	}

	utb := res.U.Transpose().MulVector(b)
	for i := range res.S {
		if res.S[i] > 1e-10 {
			utb[i] /= res.S[i]
		} else {
			utb[i] = 0
		}
	}
	return res.Vt.Transpose().MulVector(utb), nil
}
