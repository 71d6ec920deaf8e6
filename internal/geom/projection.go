package geom

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a column-major 4x4 matrix.
type Mat4 = mgl64.Mat4

// ErrInvalidClip is returned for near/far distances that cannot form a
// frustum.
var ErrInvalidClip = errors.New("invalid clipping planes")

// Projection builds an OpenGL-style off-axis perspective matrix from a
// tangent-space rectangle. near and far are positive distances along -Z.
func Projection(rect Rect, near, far float64) (Mat4, error) {
	switch {
	case near == 0 || far == 0:
		return Mat4{}, fmt.Errorf("%w: near and far must be non-zero", ErrInvalidClip)
	case near < 0 || far < 0:
		return Mat4{}, fmt.Errorf("%w: near and far must be positive", ErrInvalidClip)
	case near >= far:
		return Mat4{}, fmt.Errorf("%w: near %g must be less than far %g", ErrInvalidClip, near, far)
	case rect.Width() <= 0 || rect.Height() <= 0:
		return Mat4{}, fmt.Errorf("%w: empty field of view", ErrInvalidClip)
	}

	b := rect.Scale(near)
	return mgl64.Frustum(b.Left, b.Right, b.Bottom, b.Top, near, far), nil
}

// Rotate180 turns a projection half a turn about the view axis, for panels
// mounted upside down. It negates the first two rows.
func Rotate180(m Mat4) Mat4 {
	for c := 0; c < 4; c++ {
		m.Set(0, c, -m.At(0, c))
		m.Set(1, c, -m.At(1, c))
	}
	return m
}
