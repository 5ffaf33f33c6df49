package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := a.Add(b); got != V3(5, -3, 9) {
		t.Errorf("Add() = %v, expected (5,-3,9)", got)
	}
	if got := a.Sub(b); got != V3(-3, 7, -3) {
		t.Errorf("Sub() = %v, expected (-3,7,-3)", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot() = %v, expected 12", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross(x, y) = %v, expected z", got)
	}
}

func TestVecDistanceTo(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"same point", V3(1, 1, 1), V3(1, 1, 1), 0},
		{"axis aligned", V3(0, 0, 0), V3(0, 0, 3), 3},
		{"3-4-5", V3(0, 0.5, 0), V3(3, 0.5, 4), 5},
		{"vertical offset counts", V3(0, 0.5, 0), V3(0, 0.25, 0), 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.DistanceTo(tc.b); math.Abs(got-tc.expected) > eps {
				t.Errorf("DistanceTo() = %f, expected %f", got, tc.expected)
			}
			if got := tc.b.DistanceTo(tc.a); math.Abs(got-tc.expected) > eps {
				t.Errorf("DistanceTo() (reversed) = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestVecRotateY(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		angle    float64
		expected Vec3
	}{
		{"zero angle", V3(0.1, 0, -0.1), 0, V3(0.1, 0, -0.1)},
		{"forward quarter turn", V3(0, 0, -1), math.Pi / 2, V3(-1, 0, 0)},
		{"right quarter turn", V3(1, 0, 0), math.Pi / 2, V3(0, 0, -1)},
		{"half turn", V3(1, 2, 0), math.Pi, V3(-1, 2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.RotateY(tc.angle); !vecNear(got, tc.expected) {
				t.Errorf("RotateY(%f) = %v, expected %v", tc.angle, got, tc.expected)
			}
		})
	}
}

func TestVecNormalize(t *testing.T) {
	if got := V3(3, 0, 4).Normalize(); !vecNear(got, V3(0.6, 0, 0.8)) {
		t.Errorf("Normalize() = %v, expected (0.6,0,0.8)", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, expected zero", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, -10, 10, 5.5},
		{-10.1, -10, 10, -10},
		{10.1, -10, 10, 10},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
