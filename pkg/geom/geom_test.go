package geom

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Distance(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	got := a.Distance(b)
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Distance() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestRectFrom(t *testing.T) {
	r := RectFrom(Vec2{5, -2}, Vec2{-1, 3}, Vec2{2, 2})
	if r.Min != (Vec2{-1, -2}) {
		t.Errorf("RectFrom min = %v, want {-1 -2}", r.Min)
	}
	if r.Max != (Vec2{5, 3}) {
		t.Errorf("RectFrom max = %v, want {5 3}", r.Max)
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{Min: Vec2{0, 0}, Max: Vec2{10, 10}}

	tests := []struct {
		x, y     float64
		expected bool
	}{
		{5, 5, true},
		{0, 0, true},   // corner is inclusive
		{10, 10, true}, // corner is inclusive
		{10.001, 5, false},
		{-0.001, 5, false},
		{5, 11, false},
	}

	for _, tc := range tests {
		if r.ContainsPoint(tc.x, tc.y) != tc.expected {
			t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tc.x, tc.y, !tc.expected, tc.expected)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	b := Rect{Min: Vec2{5, 5}, Max: Vec2{15, 15}}
	c := Rect{Min: Vec2{11, 0}, Max: Vec2{20, 10}}
	d := Rect{Min: Vec2{10, 10}, Max: Vec2{20, 20}} // touches at corner

	if !a.Intersects(b) {
		t.Error("expected a to intersect b")
	}
	if a.Intersects(c) {
		t.Error("expected a not to intersect c")
	}
	if !a.Intersects(d) {
		t.Error("expected a to intersect d at the shared corner")
	}
}

func TestRectQuadrants(t *testing.T) {
	r := Rect{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	quads := r.Quadrants()

	// Quadrants tile the parent.
	union := quads[0]
	for _, q := range quads[1:] {
		union = union.Union(q)
	}
	if union != r {
		t.Errorf("quadrant union = %v, want %v", union, r)
	}

	// A point on the split line is contained by every touching quadrant.
	n := 0
	for _, q := range quads {
		if q.ContainsPoint(5, 5) {
			n++
		}
	}
	if n != 4 {
		t.Errorf("center contained by %d quadrants, want 4", n)
	}
}
