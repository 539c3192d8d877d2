package mathutil

import "math"

// SymmetricEigen3 computes the eigenvalues and eigenvectors of a symmetric
// 3x3 matrix using the classic cyclic Jacobi rotation method (Numerical
// Recipes in C, same reference family as SVD above). Eigenvectors are
// returned as the columns of the returned matrix, matching eigenvalues[i].
func SymmetricEigen3(a Mat3) (eigenvalues Vec3, eigenvectors Mat3) {
	const maxSweeps = 50

	v := Identity3()
	d := Vec3{a[0][0], a[1][1], a[2][2]}
	b := d
	z := Vec3{}

	offDiag := func(m Mat3) float64 {
		return math.Abs(m[0][1]) + math.Abs(m[0][2]) + math.Abs(m[1][2])
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		sm := offDiag(a)
		if sm == 0 {
			break
		}
		thresh := 0.0
		if sweep < 3 {
			thresh = 0.2 * sm / 9
		}

		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				g := 100 * math.Abs(a[p][q])
				if sweep > 3 && math.Abs(d[p])+g == math.Abs(d[p]) && math.Abs(d[q])+g == math.Abs(d[q]) {
					a[p][q] = 0
					continue
				}
				if math.Abs(a[p][q]) <= thresh {
					continue
				}

				h := d[q] - d[p]
				var t float64
				if math.Abs(h)+g == math.Abs(h) {
					t = a[p][q] / h
				} else {
					theta := 0.5 * h / a[p][q]
					t = 1 / (math.Abs(theta) + math.Sqrt(1+theta*theta))
					if theta < 0 {
						t = -t
					}
				}
				c := 1 / math.Sqrt(1+t*t)
				s := t * c
				tau := s / (1 + c)
				hh := t * a[p][q]

				z[p] -= hh
				z[q] += hh
				d[p] -= hh
				d[q] += hh
				a[p][q] = 0

				rotate := func(m *Mat3, i, j, k, l int) {
					g := m[i][j]
					h := m[k][l]
					m[i][j] = g - s*(h+g*tau)
					m[k][l] = h + s*(g-h*tau)
				}
				for i := 0; i < p; i++ {
					rotate(&a, i, p, i, q)
				}
				for i := p + 1; i < q; i++ {
					rotate(&a, p, i, i, q)
				}
				for i := q + 1; i < 3; i++ {
					rotate(&a, p, i, q, i)
				}
				for i := 0; i < 3; i++ {
					rotate(&v, i, p, i, q)
				}
			}
		}

		for i := 0; i < 3; i++ {
			b[i] += z[i]
			d[i] = b[i]
			z[i] = 0
		}
	}

	return d, v
}
