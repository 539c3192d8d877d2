package mathutil

import "math"

// pytag computes sqrt(a^2+b^2) without overflow, as in the teacher's
// pkg/core/math/mat/helpers.go.
func pytag(a, b float64) float64 {
	absa := math.Abs(a)
	absb := math.Abs(b)
	if absa > absb {
		return absa * math.Sqrt(1+(absb/absa)*(absb/absa))
	}
	if absb == 0 {
		return 0
	}
	return absb * math.Sqrt(1+(absa/absb)*(absa/absb))
}

// sign returns the magnitude of a with the sign of b.
func sign(a, b float64) float64 {
	if b >= 0 {
		return math.Abs(a)
	}
	return -math.Abs(a)
}

func fmax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}
