package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
}

func TestVectorArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	assert.Equal(t, Vec3{5, -3, 9}, V3Add(a, b))
	assert.Equal(t, Vec3{-3, 7, -3}, V3Sub(a, b))
	assert.Equal(t, Vec3{2, 4, 6}, V3Scale(a, 2))
	assert.Equal(t, Vec2{4, 6}, V2Add(Vec2{1, 2}, Vec2{3, 4}))
	assert.Equal(t, Vec2{-2, -2}, V2Sub(Vec2{1, 2}, Vec2{3, 4}))
	assert.Equal(t, Vec2{0.5, 1}, V2Scale(Vec2{1, 2}, 0.5))

	// Inputs are values; operations never alter them
	assert.Equal(t, Vec3{1, 2, 3}, a)
}

func TestCrossAndNormalize(t *testing.T) {
	assert.Equal(t, Vec3{0, 0, 1}, V3Cross(Vec3{1, 0, 0}, Vec3{0, 1, 0}))
	assert.Equal(t, Vec3{0, 0, -1}, V3Cross(Vec3{0, 1, 0}, Vec3{1, 0, 0}))

	n := V3Normalize(Vec3{3, 0, 4})
	assertVec3(t, Vec3{0.6, 0, 0.8}, n)
	assert.InDelta(t, 1.0, V3Mag(n), tol)

	assert.Equal(t, Vec3{}, V3Normalize(Vec3{}))
}

func TestCentroid(t *testing.T) {
	c := V3Centroid(Vec3{0, 0, 0}, Vec3{3, 0, 0}, Vec3{0, 3, 3})
	assertVec3(t, Vec3{1, 1, 1}, c)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, V3IsFinite(Vec3{1, 2, 3}))
	assert.False(t, V3IsFinite(Vec3{math.Inf(1), 0, 0}))
	assert.False(t, V2IsFinite(Vec2{0, math.NaN()}))
}

func TestRotateIdentity(t *testing.T) {
	vs := []Vec3{{1, 2, 3}, {-4, 0.5, 7}, {0, 0, 0}}
	for _, v := range vs {
		assert.Equal(t, v, RotateX(v, 0))
		assert.Equal(t, v, RotateY(v, 0))
		assert.Equal(t, v, RotateZ(v, 0))
	}
}

func TestRotateQuarterTurnExact(t *testing.T) {
	v := Vec3{1, 2, 3}

	tests := []struct {
		name string
		fn   func(Vec3, Angle) Vec3
		want Vec3
	}{
		{"X", RotateX, Vec3{1, -3, 2}},
		{"Y", RotateY, Vec3{3, 2, -1}},
		{"Z", RotateZ, Vec3{-2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(v, 90)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRotateFullTurn(t *testing.T) {
	v := Vec3{1.5, -2.25, 3.75}
	for _, a := range []Angle{360, -360, 720} {
		assertVec3(t, v, RotateX(v, a))
		assertVec3(t, v, RotateY(v, a))
		assertVec3(t, v, RotateZ(v, a))
	}

	// Non-quarter angles summing to a full turn also come back within epsilon
	got := v
	for i := 0; i < 36; i++ {
		got = RotateY(got, 10)
	}
	assertVec3(t, v, got)
}

func TestAngleRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, Angle(180).Radians(), tol)
	assert.InDelta(t, -math.Pi/2, Angle(-90).Radians(), tol)
	// No normalization
	assert.InDelta(t, 4*math.Pi, Angle(720).Radians(), tol)
}

func TestEulerOrderIsXThenYThenZ(t *testing.T) {
	v := Vec3{1, 2, 3}
	e := EulerXYZ(90, 90, 0)

	want := RotateY(RotateX(v, 90), 90)
	if got := e.Apply(v); got != want {
		t.Errorf("Expected X then Y %v, got %v", want, got)
	}

	reversed := RotateX(RotateY(v, 90), 90)
	if reversed == want {
		t.Fatal("Expected test rotations to be order dependent")
	}

	e3 := EulerXYZ(30, 45, 60)
	assertVec3(t, RotateZ(RotateY(RotateX(v, 30), 45), 60), e3.Apply(v))
}

func TestEulerInactiveAxesSkipped(t *testing.T) {
	v := Vec3{1, 2, 3}

	var none Euler
	assert.Equal(t, v, none.Apply(v))

	e := Euler{}.With(AxisZ, 90)
	assert.Equal(t, Vec3{-2, 1, 3}, e.Apply(v))
	assert.Equal(t, Angle(90), e.Angle(AxisZ))
	assert.Equal(t, Angle(0), e.Angle(AxisX))

	// X value without the X bit is ignored
	e.X = 45
	assert.Equal(t, Vec3{-2, 1, 3}, e.Apply(v))
}
