// Singular Value Decomposition, ported to float64 from the teacher's
// github.com/itohio/EasyRobot pkg/core/math/mat/svd.go.
// Algorithm: Golub-Reinsch (Householder bidiagonalization + QR iteration).
// Reference: Numerical Recipes in C, W. H. Press et al.
package mathutil

import (
	"errors"
	"math"
)

// SVDResult holds the result of a Singular Value Decomposition: m = U*S*Vt,
// S stored as the diagonal only.
type SVDResult struct {
	U  Matrix
	S  []float64
	Vt Matrix
}

// SVD computes the singular value decomposition of m (rows >= cols).
func SVD(m Matrix) (*SVDResult, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil, errors.New("mathutil: SVD of empty matrix")
	}

	rows, cols := m.Rows(), m.Cols()
	dst := &SVDResult{
		S:  make([]float64, cols),
		Vt: NewMatrix(cols, cols),
	}
	rv1 := make([]float64, cols)

	U := NewMatrix(rows, cols)
	for i := range m {
		copy(U[i], m[i])
	}

	var flag bool
	var i, its, j, jj, k, l, nm int
	var anorm, c, f, g, h, s, scale, x, y, z float64

	for i = 0; i < cols; i++ {
		l = i + 1
		rv1[i] = scale * g
		g, s, scale = 0, 0, 0

		if i < rows {
			for k = i; k < rows; k++ {
				scale += math.Abs(U[k][i])
			}
			if scale != 0 {
				for k = i; k < rows; k++ {
					U[k][i] /= scale
					s += U[k][i] * U[k][i]
				}
				f = U[i][i]
				g = -sign(math.Sqrt(s), f)
				h = f*g - s
				U[i][i] = f - g
				for j = l; j < cols; j++ {
					s = 0
					for k = i; k < rows; k++ {
						s += U[k][i] * U[k][j]
					}
					f = s / h
					for k = i; k < rows; k++ {
						U[k][j] += f * U[k][i]
					}
				}
				for k = i; k < rows; k++ {
					U[k][i] *= scale
				}
			}
		}
		dst.S[i] = scale * g
		g, s, scale = 0, 0, 0

		if i < rows && i != cols-1 {
			for k = l; k < cols; k++ {
				scale += math.Abs(U[i][k])
			}
			if scale != 0 {
				for k = l; k < cols; k++ {
					U[i][k] /= scale
					s += U[i][k] * U[i][k]
				}
				f = U[i][l]
				g = -sign(math.Sqrt(s), f)
				h = f*g - s
				U[i][l] = f - g
				for k = l; k < cols; k++ {
					rv1[k] = U[i][k] / h
				}
				for j = l; j < rows; j++ {
					s = 0
					for k = l; k < cols; k++ {
						s += U[j][k] * U[i][k]
					}
					for k = l; k < cols; k++ {
						U[j][k] += s * rv1[k]
					}
				}
				for k = l; k < cols; k++ {
					U[i][k] *= scale
				}
			}
		}
		anorm = fmax(anorm, math.Abs(dst.S[i])+math.Abs(rv1[i]))
	}

	for i = cols - 1; i >= 0; i-- {
		if i < cols-1 {
			if g != 0 {
				for j = l; j < cols; j++ {
					dst.Vt[j][i] = (U[i][j] / U[i][l]) / g
				}
				for j = l; j < cols; j++ {
					s = 0
					for k = l; k < cols; k++ {
						s += U[i][k] * dst.Vt[k][j]
					}
					for k = l; k < cols; k++ {
						dst.Vt[k][j] += s * dst.Vt[k][i]
					}
				}
			}
			for j = l; j < cols; j++ {
				dst.Vt[i][j] = 0
				dst.Vt[j][i] = 0
			}
		}
		dst.Vt[i][i] = 1
		g = rv1[i]
		l = i
	}

	for i = imin(rows, cols) - 1; i >= 0; i-- {
		l = i + 1
		g = dst.S[i]
		for j = l; j < cols; j++ {
			U[i][j] = 0
		}
		if g != 0 {
			g = 1 / g
			for j = l; j < cols; j++ {
				s = 0
				for k = l; k < rows; k++ {
					s += U[k][i] * U[k][j]
				}
				f = (s / U[i][i]) * g
				for k = i; k < rows; k++ {
					U[k][j] += f * U[k][i]
				}
			}
			for j = i; j < rows; j++ {
				U[j][i] *= g
			}
		} else {
			for j = i; j < rows; j++ {
				U[j][i] = 0
			}
		}
		U[i][i] += 1
	}

	const maxIterations = 30
	for k = cols - 1; k >= 0; k-- {
		for its = 1; its <= maxIterations; its++ {
			flag = true
			for l = k; l >= 0; l-- {
				nm = l - 1
				if math.Abs(rv1[l])+anorm == anorm {
					flag = false
					break
				}
				if nm >= 0 && math.Abs(dst.S[nm])+anorm == anorm {
					break
				}
			}
			if flag {
				c = 0
				s = 1
				for i = l; i <= k; i++ {
					f = s * rv1[i]
					rv1[i] = c * rv1[i]
					if math.Abs(f)+anorm == anorm {
						break
					}
					g = dst.S[i]
					h = pytag(f, g)
					dst.S[i] = h
					h = 1 / h
					c = g * h
					s = -f * h
					for j = 0; j < rows; j++ {
						y = U[j][nm]
						z = U[j][i]
						U[j][nm] = y*c + z*s
						U[j][i] = z*c - y*s
					}
				}
			}
			z = dst.S[k]
			if l == k {
				if z < 0 {
					dst.S[k] = -z
					for j = 0; j < cols; j++ {
						dst.Vt[j][k] = -dst.Vt[j][k]
					}
				}
				break
			}
			if its == maxIterations {
				return nil, errors.New("mathutil: SVD did not converge in 30 iterations")
			}
			x = dst.S[l]
			nm = k - 1
			y = dst.S[nm]
			g = rv1[nm]
			h = rv1[k]
			f = ((y-z)*(y+z) + (g-h)*(g+h)) / (2 * h * y)
			g = pytag(f, 1)
			f = ((x-z)*(x+z) + h*((y/(f+sign(g, f)))-h)) / x
			c, s = 1, 1
			for j = l; j < nm+1; j++ {
				i = j + 1
				g = rv1[i]
				y = dst.S[i]
				h = s * g
				g = c * g
				z = pytag(f, h)
				rv1[j] = z
				c = f / z
				s = h / z
				f = x*c + g*s
				g = g*c - x*s
				h = y * s
				y *= c
				for jj = 0; jj < cols; jj++ {
					x2 := dst.Vt[jj][j]
					z2 := dst.Vt[jj][i]
					dst.Vt[jj][j] = x2*c + z2*s
					dst.Vt[jj][i] = z2*c - x2*s
				}
				z = pytag(f, h)
				dst.S[j] = z
				if z != 0 {
					z = 1 / z
					c = f * z
					s = h * z
				}
				f = c*g + s*y
				x = c*y - s*g
				for jj = 0; jj < rows; jj++ {
					y2 := U[jj][j]
					z2 := U[jj][i]
					U[jj][j] = y2*c + z2*s
					U[jj][i] = z2*c - y2*s
				}
			}
			rv1[l] = 0
			rv1[k] = f
			dst.S[k] = x
		}
	}

	dst.U = U
	// The accumulation above builds V column-wise; store its transpose so
	// that m = U*S*Vt holds.
	dst.Vt = dst.Vt.Transpose()
	return dst, nil
}
