package aspen

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApproxEqual(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

func TestContainsPoint(t *testing.T) {
	box := BoundingBox{Anchor: Vec2{X: 10, Y: -5}, Size: Size{Width: 4, Height: 6}}
	tests := []struct {
		name  string
		point Vec2
		want  bool
	}{
		{"center", Vec2{X: 10, Y: -5}, true},
		{"inside", Vec2{X: 11, Y: -3}, true},
		{"right edge", Vec2{X: 12, Y: -5}, true},
		{"top-left corner", Vec2{X: 8, Y: -2}, true},
		{"past right edge", Vec2{X: 12.001, Y: -5}, false},
		{"above", Vec2{X: 10, Y: -1.9}, false},
		{"far away", Vec2{X: -10, Y: 5}, false},
	}
	for _, tt := range tests {
		if got := box.ContainsPoint(tt.point); got != tt.want {
			t.Errorf("%s: ContainsPoint(%v) = %v, want %v", tt.name, tt.point, got, tt.want)
		}
	}
}

func TestContainsBox(t *testing.T) {
	outer := BoundingBox{Size: Size{Width: 10, Height: 10}}
	tests := []struct {
		name  string
		inner BoundingBox
		want  bool
	}{
		{"centered smaller", BoundingBox{Size: Size{Width: 4, Height: 4}}, true},
		{"identical", BoundingBox{Size: Size{Width: 10, Height: 10}}, true},
		{"touching edge", BoundingBox{Anchor: Vec2{X: 3, Y: 0}, Size: Size{Width: 4, Height: 4}}, true},
		{"poking out right", BoundingBox{Anchor: Vec2{X: 4, Y: 0}, Size: Size{Width: 4, Height: 4}}, false},
		{"larger", BoundingBox{Size: Size{Width: 12, Height: 4}}, false},
		{"disjoint", BoundingBox{Anchor: Vec2{X: 20, Y: 20}, Size: Size{Width: 2, Height: 2}}, false},
	}
	for _, tt := range tests {
		if got := outer.ContainsBox(tt.inner); got != tt.want {
			t.Errorf("%s: ContainsBox = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIntersects(t *testing.T) {
	box := BoundingBox{Size: Size{Width: 10, Height: 10}}
	tests := []struct {
		name  string
		other BoundingBox
		want  bool
	}{
		{"overlapping", BoundingBox{Anchor: Vec2{X: 8, Y: 0}, Size: Size{Width: 10, Height: 10}}, true},
		{"contained", BoundingBox{Size: Size{Width: 2, Height: 2}}, true},
		{"edge touching only", BoundingBox{Anchor: Vec2{X: 10, Y: 0}, Size: Size{Width: 10, Height: 10}}, false},
		{"disjoint", BoundingBox{Anchor: Vec2{X: 11, Y: 0}, Size: Size{Width: 10, Height: 10}}, false},
	}
	for _, tt := range tests {
		if got := box.Intersects(tt.other); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
		// Intersection is symmetric.
		if got := tt.other.Intersects(box); got != tt.want {
			t.Errorf("%s: reverse Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClampBoxInsideContainedNeedsNoCorrection(t *testing.T) {
	container := BoundingBox{Size: Size{Width: 100, Height: 100}}
	inner := BoundingBox{Anchor: Vec2{X: 30, Y: -20}, Size: Size{Width: 10, Height: 10}}
	if _, ok := container.ClampBoxInside(inner); ok {
		t.Error("ClampBoxInside reported a correction for a contained box")
	}
}

func TestClampBoxInsideCorrection(t *testing.T) {
	container := BoundingBox{Size: Size{Width: 100, Height: 100}}
	tests := []struct {
		name  string
		inner BoundingBox
		want  Vec2
	}{
		{"out right", BoundingBox{Anchor: Vec2{X: 60, Y: 0}, Size: Size{Width: 10, Height: 10}}, Vec2{X: 45, Y: 0}},
		{"out left", BoundingBox{Anchor: Vec2{X: -70, Y: 0}, Size: Size{Width: 10, Height: 10}}, Vec2{X: -45, Y: 0}},
		{"out top", BoundingBox{Anchor: Vec2{X: 0, Y: 55}, Size: Size{Width: 10, Height: 10}}, Vec2{X: 0, Y: 45}},
		{"out corner", BoundingBox{Anchor: Vec2{X: 60, Y: -60}, Size: Size{Width: 10, Height: 10}}, Vec2{X: 45, Y: -45}},
		{"one axis only", BoundingBox{Anchor: Vec2{X: 60, Y: 10}, Size: Size{Width: 10, Height: 10}}, Vec2{X: 45, Y: 10}},
	}
	for _, tt := range tests {
		anchor, ok := container.ClampBoxInside(tt.inner)
		if !ok {
			t.Errorf("%s: expected a correction", tt.name)
			continue
		}
		if !vecApproxEqual(anchor, tt.want, epsilon) {
			t.Errorf("%s: corrected anchor = %v, want %v", tt.name, anchor, tt.want)
		}
		// The corrected box must actually fit.
		corrected := BoundingBox{Anchor: anchor, Size: tt.inner.Size}
		if !container.ContainsBox(corrected) {
			t.Errorf("%s: corrected box %v not contained", tt.name, corrected)
		}
		// Clamping is idempotent.
		if _, again := container.ClampBoxInside(corrected); again {
			t.Errorf("%s: corrected box was corrected again", tt.name)
		}
	}
}

func TestClampBoxInsideOversizedAxisSnapsToAnchor(t *testing.T) {
	container := BoundingBox{Anchor: Vec2{X: 5, Y: 5}, Size: Size{Width: 100, Height: 100}}
	inner := BoundingBox{Anchor: Vec2{X: 200, Y: 80}, Size: Size{Width: 300, Height: 10}}
	anchor, ok := container.ClampBoxInside(inner)
	if !ok {
		t.Fatal("expected a correction")
	}
	// Wider than the container: the x axis snaps to the container's anchor.
	if !approxEqual(anchor.X, 5, epsilon) {
		t.Errorf("oversized axis anchor.X = %f, want 5", anchor.X)
	}
	// The y axis still clamps normally.
	if !approxEqual(anchor.Y, 50, epsilon) {
		t.Errorf("anchor.Y = %f, want 50", anchor.Y)
	}
}
