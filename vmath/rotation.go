package vmath

import (
	"math"
)

// Angle is a rotation in degrees
// Not normalized: auto-spin accumulates past ±360 across frames
type Angle float64

// Radians converts degrees to radians
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180
}

// SinCos returns sin and cos of the angle
// Multiples of 90° return exact values so quarter turns introduce no rounding error
func (a Angle) SinCos() (sin, cos float64) {
	deg := math.Mod(float64(a), 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(a.Radians())
}

// RotateX rotates v about the X axis (right-handed)
func RotateX(v Vec3, a Angle) Vec3 {
	sin, cos := a.SinCos()
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// RotateY rotates v about the Y axis (right-handed)
func RotateY(v Vec3, a Angle) Vec3 {
	sin, cos := a.SinCos()
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// RotateZ rotates v about the Z axis (right-handed)
func RotateZ(v Vec3, a Angle) Vec3 {
	sin, cos := a.SinCos()
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// Axis identifies a rotation axis as a bit in AxisSet
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ
)

// AxisAll selects all three axes
const AxisAll = AxisX | AxisY | AxisZ

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Euler is a multi-axis rotation request
// Axes not present in Axes are skipped entirely, which differs from a 0° rotation only in
// floating-point exactness
type Euler struct {
	X, Y, Z Angle
	Axes    Axis
}

// EulerXYZ returns a rotation with all three axes active
func EulerXYZ(x, y, z Angle) Euler {
	return Euler{X: x, Y: y, Z: z, Axes: AxisAll}
}

// With returns a copy with the given axis set to a and marked active
func (e Euler) With(axis Axis, a Angle) Euler {
	switch axis {
	case AxisX:
		e.X = a
	case AxisY:
		e.Y = a
	case AxisZ:
		e.Z = a
	default:
		return e
	}
	e.Axes |= axis
	return e
}

// Angle returns the angle for an axis, zero if inactive
func (e Euler) Angle(axis Axis) Angle {
	if e.Axes&axis == 0 {
		return 0
	}
	switch axis {
	case AxisX:
		return e.X
	case AxisY:
		return e.Y
	case AxisZ:
		return e.Z
	}
	return 0
}

// Apply rotates v by the active axes in fixed order: X, then Y, then Z
// Rotation is not commutative; callers rely on this order
func (e Euler) Apply(v Vec3) Vec3 {
	if e.Axes&AxisX != 0 {
		v = RotateX(v, e.X)
	}
	if e.Axes&AxisY != 0 {
		v = RotateY(v, e.Y)
	}
	if e.Axes&AxisZ != 0 {
		v = RotateZ(v, e.Z)
	}
	return v
}
