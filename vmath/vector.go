package vmath

// Vec4 is a homogeneous vector, the clip-space vertex type
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 extends a 3D point with w = 1
func V4(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// XYZ drops the w component without dividing
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide returns (x,y,z)/w
// w == 0 is treated as w == 1 so the result stays finite for finite input
func PerspectiveDivide(v Vec4) Vec3 {
	if v.W == 0 {
		return Vec3{v.X, v.Y, v.Z}
	}
	inv := 1 / v.W
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V4Lerp returns a*(1-t) + b*t
func V4Lerp(a, b Vec4, t float32) Vec4 {
	s := 1 - t
	return Vec4{
		a.X*s + b.X*t,
		a.Y*s + b.Y*t,
		a.Z*s + b.Z*t,
		a.W*s + b.W*t,
	}
}
