package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps pointer positions from a variable-size container into a
// fixed-aspect virtual canvas. The canvas is scaled to fit and letterboxed
// inside the container.
type Viewport struct {
	CanvasW float64
	CanvasH float64
}

// Scale returns the canvas-to-container scale factor for the given
// container size. A non-positive or degenerate container yields scale 1.
func (v Viewport) Scale(containerW, containerH float64) float64 {
	if containerW <= 0 || containerH <= 0 || v.CanvasW <= 0 || v.CanvasH <= 0 {
		return 1
	}
	return math.Min(containerW/v.CanvasW, containerH/v.CanvasH)
}

// ToCanvas converts a screen-space point into canvas space by inverting the
// fit-and-letterbox transform. The transform is derived from the container
// size on every call; the container may resize between pointer events, so
// nothing here is cached.
func (v Viewport) ToCanvas(screen r2.Vec, containerW, containerH float64) r2.Vec {
	scale := v.Scale(containerW, containerH)
	offset := r2.Vec{
		X: (containerW - v.CanvasW*scale) / 2,
		Y: (containerH - v.CanvasH*scale) / 2,
	}
	return r2.Scale(1/scale, r2.Sub(screen, offset))
}

// ToScreen converts a canvas-space point into screen space for the given
// container size. Inverse of ToCanvas.
func (v Viewport) ToScreen(canvas r2.Vec, containerW, containerH float64) r2.Vec {
	scale := v.Scale(containerW, containerH)
	offset := r2.Vec{
		X: (containerW - v.CanvasW*scale) / 2,
		Y: (containerH - v.CanvasH*scale) / 2,
	}
	return r2.Add(r2.Scale(scale, canvas), offset)
}
