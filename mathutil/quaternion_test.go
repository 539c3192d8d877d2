package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuaternionProductMatchesMatrixComposition(t *testing.T) {
	a := RotateAboutAxis(Vec3{0, 0, 1}, math.Pi/3)
	b := RotateAboutAxis(Vec3{1, 0, 0}, math.Pi/5)

	combinedQuat := a.Product(b).ToMat3()
	combinedMat := a.ToMat3().Mul(b.ToMat3())

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, combinedMat[i][j], combinedQuat[i][j], 1e-9)
		}
	}
}

func TestQuaternionConjugateInvertsRotation(t *testing.T) {
	q := RotateAboutAxis(Vec3{1, 1, 1}, 0.7)
	v := Vec3{1, 2, 3}
	rotated := q.RotateVec3(v)
	back := q.Conjugate().RotateVec3(rotated)
	assert.InDelta(t, v[0], back[0], 1e-9)
	assert.InDelta(t, v[1], back[1], 1e-9)
	assert.InDelta(t, v[2], back[2], 1e-9)
}

func TestMat3ToQuaternionRoundTrip(t *testing.T) {
	m := EulerZYX{25, -40, 80}.ToMat3()
	q := m.ToQuaternion()
	back := q.ToMat3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, m[i][j], back[i][j], 1e-9)
		}
	}
}

func TestNormalOfZeroQuaternionIsIdentity(t *testing.T) {
	q := Quaternion{}.Normal()
	assert.Equal(t, IdentityQuaternion(), q)
}
