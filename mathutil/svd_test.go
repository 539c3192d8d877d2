package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVDReconstructsMatrix(t *testing.T) {
	m := NewMatrix(4, 3)
	vals := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
		{1, 0, -1},
	}
	for i, row := range vals {
		copy(m[i], row)
	}

	res, err := SVD(m)
	require.NoError(t, err)

	// Reconstruct m = U * diag(S) * Vt
	US := NewMatrix(4, 3)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			US[i][j] = res.U[i][j] * res.S[j]
		}
	}
	got := US.Mul(res.Vt)

	for i := range vals {
		for j := range vals[i] {
			assert.InDelta(t, vals[i][j], got[i][j], 1e-6)
		}
	}
}

func TestSolveLeastSquaresIdentitySystem(t *testing.T) {
	A := NewMatrix(3, 3)
	A[0][0], A[1][1], A[2][2] = 1, 1, 1
	b := []float64{1, 2, 3}

	x, err := SolveLeastSquares(A, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x[0], 1e-9)
	assert.InDelta(t, 2.0, x[1], 1e-9)
	assert.InDelta(t, 3.0, x[2], 1e-9)
}

func TestSolveLeastSquaresOverdetermined(t *testing.T) {
	// Solve for x such that A*x ~= b, where the true x is (2, -1, 0.5) and
	// the system has more rows than unknowns.
	trueX := []float64{2, -1, 0.5}
	A := NewMatrix(6, 3)
	b := make([]float64, 6)
	rows := [][]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 0}, {0, 1, 1}, {1, 0, 1},
	}
	for i, row := range rows {
		copy(A[i], row)
		sum := 0.0
		for j, v := range row {
			sum += v * trueX[j]
		}
		b[i] = sum
	}

	x, err := SolveLeastSquares(A, b)
	require.NoError(t, err)
	for i := range trueX {
		assert.InDelta(t, trueX[i], x[i], 1e-6)
	}
}

func TestSymmetricEigen3OnDiagonalMatrix(t *testing.T) {
	m := Mat3{{2, 0, 0}, {0, 5, 0}, {0, 0, 9}}
	vals, vecs := SymmetricEigen3(m)

	sum := vals[0] + vals[1] + vals[2]
	assert.InDelta(t, 16.0, sum, 1e-9)

	// Eigenvectors are returned as columns, each of unit length.
	for c := 0; c < 3; c++ {
		col := Vec3{vecs[0][c], vecs[1][c], vecs[2][c]}
		assert.InDelta(t, 1.0, col.Norm(), 1e-9)
	}
}
