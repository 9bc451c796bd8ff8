package math3d

import "math"

// Mat4 is a column-major 4x4 matrix: element (row, col) is m[row+col*4] and
// the translation sits in m[12:15].
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Translate returns a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// RotateX turns by angle radians about +X. Positive angles tip -Z upward.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY turns by angle radians about +Y. Positive angles turn -Z toward -X.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// Orientation is the eye-to-world rotation of a first-person viewer: yaw
// about +Y applied after pitch about +X. Column 2 is the backward axis, so
// the view direction is its negation.
func Orientation(pitch, yaw float64) Mat4 {
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	return Mat4{
		cy, 0, -sy, 0,
		sp * sy, cp, sp * cy, 0,
		cp * sy, -sp, cp * cy, 0,
		0, 0, 0, 1,
	}
}

// FirstPersonView is the world-to-eye matrix for a viewer standing at eye.
// It equals RotateX(-pitch) * RotateY(-yaw) * Translate(-eye).
func FirstPersonView(eye Vec3, pitch, yaw float64) Mat4 {
	o := Orientation(pitch, yaw)
	var m Mat4
	for r := range 3 {
		axis := V3(o[r*4], o[r*4+1], o[r*4+2])
		m[r], m[r+4], m[r+8] = axis.X, axis.Y, axis.Z
		m[r+12] = -axis.Dot(eye)
	}
	m[15] = 1
	return m
}

// Perspective is a right-handed projection mapping view depth -near..-far
// to NDC -1..1. fovy is vertical, in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	inv := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * inv
	m[11] = -1
	m[14] = 2 * far * near * inv
	return m
}

// Mul returns a * b, so b applies first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for i := range m {
		row, col := i%4, i/4
		m[i] = a[row]*b[col*4] + a[row+4]*b[col*4+1] + a[row+8]*b[col*4+2] + a[row+12]*b[col*4+3]
	}
	return m
}

// MulVec3 transforms v as a point and divides by w.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).PerspectiveDivide()
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}
