package core

import "testing"

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
		{"last inside pixel", 29, 24, true},
		{"left of rect", 9, 15, false},
		{"above rect", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{-8, -8, 8, -8},
		{9, -8, 8, 8},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(2, 7) != 7 || Max(7, 2) != 7 {
		t.Error("Max returned wrong value")
	}
}

func TestWrapF(t *testing.T) {
	if got := WrapF(-0.5, 0, 10); got != 9.5 {
		t.Errorf("WrapF(-0.5, 0, 10) = %v, expected 9.5", got)
	}
	if got := WrapF(12.25, 0, 10); got != 2.25 {
		t.Errorf("WrapF(12.25, 0, 10) = %v, expected 2.25", got)
	}
}
