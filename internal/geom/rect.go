package geom

import "math"

// Rect is a field-of-view rectangle in tangent space, as seen from the eye
// at unit distance.
type Rect struct {
	Left, Right, Bottom, Top float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Top - r.Bottom
}

// Scale returns the rectangle with every bound multiplied by k.
func (r Rect) Scale(k float64) Rect {
	return Rect{Left: r.Left * k, Right: r.Right * k, Bottom: r.Bottom * k, Top: r.Top * k}
}

// SymmetricFOVRect converts full horizontal and vertical field-of-view angles
// in degrees into a rectangle centered on the view axis.
func SymmetricFOVRect(hFovDegrees, vFovDegrees float64) Rect {
	h := math.Tan(DegToRad(hFovDegrees) / 2)
	v := math.Tan(DegToRad(vFovDegrees) / 2)
	return Rect{Left: -h, Right: h, Bottom: -v, Top: v}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
