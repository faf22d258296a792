package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertVec4(t *testing.T, want, got Vec4) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
	assert.InDelta(t, want.W, got.W, eps, "w")
}

func TestMulIdentity(t *testing.T) {
	m := Mul(Translate(1, 2, 3), Scale(2, 2, 2))
	assert.Equal(t, m, Mul(Identity(), m))
	assert.Equal(t, m, Mul(m, Identity()))
}

func TestTranslateScale(t *testing.T) {
	// Scale applied first, then translate
	m := Mul(Translate(1, 2, 3), Scale(2, 3, 4))
	assertVec4(t, Vec4{3, 5, 7, 1}, MulVec3(m, Vec3{1, 1, 1}))
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		in      Vec3
		want    Vec4
	}{
		{"z quarter turn", 0, 0, math.Pi / 2, Vec3{1, 0, 0}, Vec4{0, 1, 0, 1}},
		{"x quarter turn", math.Pi / 2, 0, 0, Vec3{0, 1, 0}, Vec4{0, 0, 1, 1}},
		{"y quarter turn", 0, math.Pi / 2, 0, Vec3{0, 0, 1}, Vec4{1, 0, 0, 1}},
		{"zero", 0, 0, 0, Vec3{1, 2, 3}, Vec4{1, 2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec4(t, tt.want, MulVec3(Rotate(tt.x, tt.y, tt.z), tt.in))
		})
	}
}

func TestCameraDepthRange(t *testing.T) {
	const near, far = 0.1, 10.0
	m := Camera(80, 40, math.Pi/2, near, far)

	n := PerspectiveDivide(MulVec3(m, Vec3{0, 0, near}))
	f := PerspectiveDivide(MulVec3(m, Vec3{0, 0, far}))
	assert.InDelta(t, 1, n.Z, 1e-4)
	assert.InDelta(t, -1, f.Z, 1e-4)

	// Aspect: x is scaled by height/width
	p := PerspectiveDivide(MulVec3(m, Vec3{1, 1, 1}))
	assert.InDelta(t, 0.5, p.X, eps)
	assert.InDelta(t, 1, p.Y, eps)
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	got := PerspectiveDivide(Vec4{1, 2, 3, 0})
	assert.Equal(t, Vec3{1, 2, 3}, got)
	assert.Equal(t, Vec3{0.5, 1, 1.5}, PerspectiveDivide(Vec4{1, 2, 3, 2}))
}

func TestV4Lerp(t *testing.T) {
	a := Vec4{0, 0, 0, 1}
	b := Vec4{2, 4, 6, 3}
	assertVec4(t, a, V4Lerp(a, b, 0))
	assertVec4(t, b, V4Lerp(a, b, 1))
	assertVec4(t, Vec4{1, 2, 3, 2}, V4Lerp(a, b, 0.5))
}

func TestVec3Ops(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, V3Cross(x, y))
	assert.Equal(t, float32(0), V3Dot(x, y))
	assert.InDelta(t, 5, V3Mag(Vec3{3, 4, 0}), eps)
	assert.InDelta(t, 1, V3Mag(V3Normalize(Vec3{3, 4, 12})), eps)
	assert.Equal(t, Vec3{}, V3Normalize(Vec3{}))
}
