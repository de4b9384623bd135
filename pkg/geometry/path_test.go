package geometry

import (
	"math"
	"testing"
)

func TestResolvePathHorizontal(t *testing.T) {
	a := Rect{X: 0, Y: 100, W: 156, H: 176}
	b := Rect{X: 810, Y: 100, W: 156, H: 176}

	p := ResolvePath(a, b)

	// Exit the right edge of a, enter the left edge of b.
	if p.Start.X != 156 || p.Start.Y != 188 {
		t.Errorf("Expected start (156, 188), got (%g, %g)", p.Start.X, p.Start.Y)
	}
	if p.End.X != 810 || p.End.Y != 188 {
		t.Errorf("Expected end (810, 188), got (%g, %g)", p.End.X, p.End.Y)
	}

	// Tangents must leave the boundaries perpendicularly: control points sit
	// on the same horizontal as their endpoints.
	if p.C1.Y != p.Start.Y || p.C2.Y != p.End.Y {
		t.Errorf("Control points not normal-aligned: C1=(%g,%g) C2=(%g,%g)", p.C1.X, p.C1.Y, p.C2.X, p.C2.Y)
	}
	if p.C1.X <= p.Start.X {
		t.Errorf("C1 should point outward from a's right edge, got %g <= %g", p.C1.X, p.Start.X)
	}
	if p.C2.X >= p.End.X {
		t.Errorf("C2 should point outward from b's left edge, got %g >= %g", p.C2.X, p.End.X)
	}
}

func TestResolvePathVertical(t *testing.T) {
	a := Rect{X: 100, Y: 0, W: 80, H: 40}
	b := Rect{X: 110, Y: 400, W: 80, H: 40}

	p := ResolvePath(a, b)

	if p.Start.Y != 40 {
		t.Errorf("Expected exit from a's bottom edge (y=40), got y=%g", p.Start.Y)
	}
	if p.End.Y != 400 {
		t.Errorf("Expected entry at b's top edge (y=400), got y=%g", p.End.Y)
	}
	if p.C1.X != p.Start.X || p.C2.X != p.End.X {
		t.Errorf("Control points not normal-aligned: C1=(%g,%g) C2=(%g,%g)", p.C1.X, p.C1.Y, p.C2.X, p.C2.Y)
	}
}

func TestResolvePathReversedDirections(t *testing.T) {
	a := Rect{X: 500, Y: 100, W: 50, H: 50}
	b := Rect{X: 0, Y: 100, W: 50, H: 50}

	p := ResolvePath(a, b)
	if p.Start.X != 500 {
		t.Errorf("Expected exit from a's left edge (x=500), got x=%g", p.Start.X)
	}
	if p.End.X != 50 {
		t.Errorf("Expected entry at b's right edge (x=50), got x=%g", p.End.X)
	}

	c := Rect{X: 100, Y: 500, W: 50, H: 50}
	d := Rect{X: 100, Y: 0, W: 50, H: 50}

	q := ResolvePath(c, d)
	if q.Start.Y != 500 {
		t.Errorf("Expected exit from c's top edge (y=500), got y=%g", q.Start.Y)
	}
	if q.End.Y != 50 {
		t.Errorf("Expected entry at d's bottom edge (y=50), got y=%g", q.End.Y)
	}
}

func TestResolvePathTieBreaksHorizontal(t *testing.T) {
	// Equal |dx| and |dy|: horizontal classification wins.
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 200, Y: 200, W: 100, H: 100}

	p := ResolvePath(a, b)
	if p.Start.X != 100 || p.Start.Y != 50 {
		t.Errorf("Tie should exit a's right edge at (100, 50), got (%g, %g)", p.Start.X, p.Start.Y)
	}
}

func TestResolvePathCoincidentRects(t *testing.T) {
	a := Rect{X: 50, Y: 50, W: 100, H: 100}

	p := ResolvePath(a, a)

	for _, v := range []float64{p.Start.X, p.Start.Y, p.C1.X, p.C1.Y, p.C2.X, p.C2.Y, p.End.X, p.End.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Degenerate geometry produced non-finite coordinate: %+v", p)
		}
	}

	// Coincident centers still classify as horizontal.
	if p.Start.X != 150 {
		t.Errorf("Expected exit from right edge (x=150), got x=%g", p.Start.X)
	}
}

func TestResolvePathControlOffsetClamped(t *testing.T) {
	// Very close rectangles: offset clamps to the minimum.
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 12, Y: 0, W: 10, H: 10}
	p := ResolvePath(a, b)
	if got := p.C1.X - p.Start.X; got != minControlOffset {
		t.Errorf("Expected minimum control offset %d, got %g", minControlOffset, got)
	}

	// Very distant rectangles: offset clamps to the maximum.
	c := Rect{X: 5000, Y: 0, W: 10, H: 10}
	q := ResolvePath(a, c)
	if got := q.C1.X - q.Start.X; got != maxControlOffset {
		t.Errorf("Expected maximum control offset %d, got %g", maxControlOffset, got)
	}
}

func TestResolvePathPure(t *testing.T) {
	a := Rect{X: 0, Y: 100, W: 156, H: 176}
	b := Rect{X: 810, Y: 300, W: 156, H: 176}

	first := ResolvePath(a, b)
	second := ResolvePath(a, b)

	if first != second {
		t.Errorf("ResolvePath not pure: %+v != %+v", first, second)
	}
	if first.SVG() != second.SVG() {
		t.Errorf("SVG path data differs between identical inputs")
	}
}
