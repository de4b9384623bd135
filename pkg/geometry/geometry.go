// Package geometry holds the coordinate model for the diagram canvas:
// rectangles in virtual canvas units, the screen-to-canvas viewport
// transform, and the adaptive connector path resolver.
package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle in virtual canvas units.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// MidRight returns the midpoint of the right edge.
func (r Rect) MidRight() r2.Vec {
	return r2.Vec{X: r.X + r.W, Y: r.Y + r.H/2}
}

// MidLeft returns the midpoint of the left edge.
func (r Rect) MidLeft() r2.Vec {
	return r2.Vec{X: r.X, Y: r.Y + r.H/2}
}

// MidTop returns the midpoint of the top edge.
func (r Rect) MidTop() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y}
}

// MidBottom returns the midpoint of the bottom edge.
func (r Rect) MidBottom() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
