package mathutil

import "fmt"

// Matrix is a row-major dense matrix, used only by the SVD-backed solvers
// (CalibrateRotation's Kabsch fit and CalibrateTranslation's least squares).
// Mirrors the teacher's mat.Matrix layout convention, at float64.
type Matrix [][]float64

// NewMatrix allocates a rows x cols matrix, zero-filled.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	backing := make([]float64, rows*cols)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols]
	}
	return m
}

func (m Matrix) Rows() int { return len(m) }
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Transpose returns a new matrix that is the transpose of m.
func (m Matrix) Transpose() Matrix {
	r, c := m.Rows(), m.Cols()
	out := NewMatrix(c, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Mul computes m*o, panicking on a dimension mismatch (programmer error,
// not a runtime condition the solvers should ever hit).
func (m Matrix) Mul(o Matrix) Matrix {
	if m.Cols() != o.Rows() {
		panic(fmt.Sprintf("mathutil.Matrix.Mul: dimension mismatch %dx%d * %dx%d", m.Rows(), m.Cols(), o.Rows(), o.Cols()))
	}
	out := NewMatrix(m.Rows(), o.Cols())
	for i := 0; i < m.Rows(); i++ {
		for k := 0; k < m.Cols(); k++ {
			mik := m[i][k]
			if mik == 0 {
				continue
			}
			for j := 0; j < o.Cols(); j++ {
				out[i][j] += mik * o[k][j]
			}
		}
	}
	return out
}

// Mat3ToMatrix copies a fixed 3x3 matrix into a general Matrix, for feeding
// into the SVD solver.
func Mat3ToMatrix(m Mat3) Matrix {
	out := NewMatrix(3, 3)
	for i := 0; i < 3; i++ {
		copy(out[i], m[i][:])
	}
	return out
}

// MatrixToMat3 converts a 3x3 general Matrix back to the fixed type.
func MatrixToMat3(m Matrix) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		copy(out[i][:], m[i])
	}
	return out
}

// MulVector computes m*v for a column vector v.
func (m Matrix) MulVector(v []float64) []float64 {
	out := make([]float64, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		sum := 0.0
		for j := 0; j < m.Cols(); j++ {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}
