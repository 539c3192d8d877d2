package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat3AxisAndAngle(t *testing.T) {
	m := RotationZ(math.Pi / 2)
	axis := m.AxisUnnormalized()
	assert.InDelta(t, 0, axis[0], 1e-9)
	assert.InDelta(t, 0, axis[1], 1e-9)
	assert.Greater(t, axis[2], 0.0)
	assert.InDelta(t, math.Pi/2, m.Angle(), 1e-9)
}

func TestMat3TransposeIsInverseForRotation(t *testing.T) {
	m := EulerZYX{12, -34, 56}.ToMat3()
	identity := m.Mul(m.Transpose())
	want := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], identity[i][j], 1e-9)
		}
	}
}

func TestMat3DetOfRotationIsOne(t *testing.T) {
	m := EulerZYX{40, 10, -20}.ToMat3()
	assert.InDelta(t, 1.0, m.Det(), 1e-9)
}

func TestMat3MulVec3(t *testing.T) {
	m := RotationX(math.Pi / 2)
	v := Vec3{0, 1, 0}
	got := m.MulVec3(v)
	assert.InDelta(t, 0, got[0], 1e-9)
	assert.InDelta(t, 0, got[1], 1e-9)
	assert.InDelta(t, 1, got[2], 1e-9)
}
