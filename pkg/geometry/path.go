package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Control point offsets stay within this range so short links still
	// curve and long links don't balloon.
	minControlOffset = 40
	maxControlOffset = 120

	// Coincident rectangles would otherwise feed a zero distance into the
	// control point scale.
	minSpan = 1e-3
)

// Path is a cubic Bezier connector between two rectangles.
type Path struct {
	Start r2.Vec
	C1    r2.Vec
	C2    r2.Vec
	End   r2.Vec
}

// SVG renders the path as an SVG path data string.
func (p Path) SVG() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		p.Start.X, p.Start.Y, p.C1.X, p.C1.Y, p.C2.X, p.C2.Y, p.End.X, p.End.Y)
}

// ResolvePath routes a connector from rectangle a to rectangle b.
//
// The connection is classified as horizontal when the center-to-center delta
// is wider than it is tall (ties go horizontal). The curve exits the
// midpoint of a's side facing b and enters b symmetrically, with control
// points pushed out along each side's outward normal, so the tangent at
// each endpoint is perpendicular to the rectangle boundary regardless of
// where the two rectangles sit relative to each other.
//
// Pure function of the two rectangles; callers must re-resolve whenever a
// node moves.
func ResolvePath(a, b Rect) Path {
	delta := r2.Sub(b.Center(), a.Center())

	var start, end, outA, outB r2.Vec
	if math.Abs(delta.X) >= math.Abs(delta.Y) {
		if delta.X >= 0 {
			start, outA = a.MidRight(), r2.Vec{X: 1}
			end, outB = b.MidLeft(), r2.Vec{X: -1}
		} else {
			start, outA = a.MidLeft(), r2.Vec{X: -1}
			end, outB = b.MidRight(), r2.Vec{X: 1}
		}
	} else {
		if delta.Y >= 0 {
			start, outA = a.MidBottom(), r2.Vec{Y: 1}
			end, outB = b.MidTop(), r2.Vec{Y: -1}
		} else {
			start, outA = a.MidTop(), r2.Vec{Y: -1}
			end, outB = b.MidBottom(), r2.Vec{Y: 1}
		}
	}

	span := math.Max(r2.Norm(r2.Sub(end, start)), minSpan)
	k := clamp(span/3, minControlOffset, maxControlOffset)

	return Path{
		Start: start,
		C1:    r2.Add(start, r2.Scale(k, outA)),
		C2:    r2.Add(end, r2.Scale(k, outB)),
		End:   end,
	}
}
