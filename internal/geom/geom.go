// Package geom provides the rectangle and ratio primitives used by the layout engine.
package geom

// Epsilon is the tolerance applied to every overlap test so that touching
// rectangles do not register as colliding because of rounding.
const Epsilon = 0.001

// Rect is an axis-aligned rectangle. The horizontal axis may be expressed in
// time units (milliseconds) or pixels; the vertical axis is always pixels.
type Rect struct {
	Left   float64
	Width  float64
	Top    float64
	Height float64
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Collides reports whether a and b overlap by more than Epsilon on both axes.
func Collides(a, b Rect) bool {
	return OverlapsHorizontally(a, b) &&
		a.Top+Epsilon < b.Bottom() &&
		a.Bottom()-Epsilon > b.Top
}

// OverlapsHorizontally reports whether the horizontal intervals of a and b
// overlap by more than Epsilon.
func OverlapsHorizontally(a, b Rect) bool {
	return a.Left+Epsilon < b.Right() && a.Right()-Epsilon > b.Left
}

// TimeToPixelRatio returns how many time units one pixel of the canvas spans.
// The canvas width and time span must both be positive.
func TimeToPixelRatio(canvasStart, canvasEnd, canvasWidth float64) float64 {
	return (canvasEnd - canvasStart) / canvasWidth
}
