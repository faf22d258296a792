// Package vmath provides float32 vector and 4x4 matrix math for the 3D pipeline.
// Matrices are row-major and multiply column vectors: v' = M * v.
package vmath

import (
	"math"
)

// Mat4 is a row-major 4x4 matrix
type Mat4 [4][4]float32

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns a * b
func Mul(a, b Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for d := 0; d < 4; d++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[c][k] * b[k][d]
			}
			r[c][d] = sum
		}
	}
	return r
}

// MulVec3 transforms a point (implicit w = 1) into homogeneous space
func MulVec3(m Mat4, v Vec3) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3],
	}
}

// MulVec4 transforms a homogeneous vector
func MulVec4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// Camera returns a perspective projection for a width x height cell grid
// The x axis is scaled by height/width to keep the grid aspect
// Depth maps near -> +1 and far -> -1, so larger z is closer
func Camera(width, height int, fov, near, far float32) Mat4 {
	f := 1 / tan(fov*0.5)
	return Mat4{
		{float32(height) / float32(width) * f, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, -(far + near) / (far - near), 2 * far * near / (far - near)},
		{0, 0, 1, 0},
	}
}

// Rotate returns a rotation of x, y, z radians about the respective axes (applied x, then y, then z)
func Rotate(x, y, z float32) Mat4 {
	sx, cx := sincos(x)
	sy, cy := sincos(y)
	sz, cz := sincos(z)
	return Mat4{
		{cz * cy, -sz*cx + cz*sy*sx, sz*sx + cz*sy*cx, 0},
		{sz * cy, cz*cx + sz*sy*sx, -cz*sx + sz*sy*cx, 0},
		{-sy, cy * sx, cy * cx, 0},
		{0, 0, 0, 1},
	}
}

// Scale returns a per-axis scale matrix
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a translation matrix
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

func tan(a float32) float32 {
	return float32(math.Tan(float64(a)))
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
