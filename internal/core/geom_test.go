package core

import (
	"math"
	"testing"
)

func TestVec2Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
	}{
		{"axis aligned", V(10, 0)},
		{"diagonal", V(3, 4)},
		{"negative", V(-400, 240)},
		{"tiny", V(1e-9, -1e-9)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.in.Normalized()
			if math.Abs(n.Len()-1) > 1e-9 {
				t.Errorf("Normalized(%v) length = %f, expected 1", tc.in, n.Len())
			}
			// Direction preserved
			if math.Signbit(n.X) != math.Signbit(tc.in.X) || math.Signbit(n.Y) != math.Signbit(tc.in.Y) {
				t.Errorf("Normalized(%v) = %v changed direction", tc.in, n)
			}
		})
	}
}

func TestVec2NormalizedZero(t *testing.T) {
	n := Vec2{}.Normalized()
	if n.X != 0 || n.Y != 0 {
		t.Errorf("zero vector should stay zero, got %v", n)
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vec2
	}{
		{0, V(1, 0)},
		{90, V(0, 1)},
		{180, V(-1, 0)},
		{270, V(0, -1)},
	}

	for _, tc := range tests {
		got := FromAngle(tc.deg)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("FromAngle(%v) = %v, expected %v", tc.deg, got, tc.want)
		}
	}
}

func TestCircleOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{"same centre", Circle{V(100, 100), 10}, Circle{V(100, 100), 5}, true},
		{"touching edges", Circle{V(0, 0), 10}, Circle{V(15, 0), 5}, true},
		{"apart", Circle{V(0, 0), 10}, Circle{V(15.01, 0), 5}, false},
		{"diagonal overlap", Circle{V(0, 0), 5}, Circle{V(6, 6), 5}, true},
		{"diagonal apart", Circle{V(0, 0), 4}, Circle{V(6, 6), 4}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{25.5, 1, 20, 20},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
