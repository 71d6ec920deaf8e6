// Package client builds the per-session display configuration: the viewers,
// their eyes, and each eye's viewport, field of view and head-relative offset.
package client

import (
	"fmt"

	"github.com/bnema/vrkit/internal/geom"
)

// Viewport is a pixel rectangle on the physical display, origin bottom-left.
type Viewport struct {
	Left   int
	Bottom int
	Width  int
	Height int
}

// DisplayConfig is the immutable set of viewers derived from a display
// descriptor.
type DisplayConfig struct {
	viewers []Viewer
}

// Size returns the number of viewers.
func (c *DisplayConfig) Size() int {
	return len(c.viewers)
}

// Viewer returns viewer i.
func (c *DisplayConfig) Viewer(i int) (*Viewer, error) {
	if i < 0 || i >= len(c.viewers) {
		return nil, fmt.Errorf("%w: viewer %d of %d", ErrIndexOutOfRange, i, len(c.viewers))
	}
	return &c.viewers[i], nil
}

// NumViewerEyes returns the number of eyes of viewer v.
func (c *DisplayConfig) NumViewerEyes(v int) (int, error) {
	viewer, err := c.Viewer(v)
	if err != nil {
		return 0, err
	}
	return viewer.Size(), nil
}

// ViewerEye returns eye e of viewer v.
func (c *DisplayConfig) ViewerEye(v, e int) (*ViewerEye, error) {
	viewer, err := c.Viewer(v)
	if err != nil {
		return nil, err
	}
	return viewer.Eye(e)
}

// ViewerEyePose resolves the world pose of eye e of viewer v. Index errors
// are reported before ErrNoPoseYet.
func (c *DisplayConfig) ViewerEyePose(v, e int) (geom.Pose, error) {
	eye, err := c.ViewerEye(v, e)
	if err != nil {
		return geom.Pose{}, err
	}
	return eye.Pose()
}

// Viewer is one tracked head and its eyes.
type Viewer struct {
	ctx  ClientContext
	path string
	eyes []ViewerEye
}

// Path returns the body path the viewer's pose is tracked under.
func (v *Viewer) Path() string {
	return v.path
}

// Size returns the number of eyes.
func (v *Viewer) Size() int {
	return len(v.eyes)
}

// Eye returns eye i.
func (v *Viewer) Eye(i int) (*ViewerEye, error) {
	if i < 0 || i >= len(v.eyes) {
		return nil, fmt.Errorf("%w: eye %d of %d", ErrIndexOutOfRange, i, len(v.eyes))
	}
	return &v.eyes[i], nil
}

// Pose returns the latest head pose.
func (v *Viewer) Pose() (geom.Pose, error) {
	p, ok := v.ctx.Pose(v.path)
	if !ok {
		return geom.Pose{}, fmt.Errorf("%w: %s", ErrNoPoseYet, v.path)
	}
	return p, nil
}

// ViewerEye is one eye of a viewer. It holds a non-owning reference to its
// viewer, valid for the lifetime of the DisplayConfig.
type ViewerEye struct {
	viewer    *Viewer
	offset    geom.Vec3
	viewport  Viewport
	rect      geom.Rect
	rotate180 bool
	pitchTilt float64
}

// Offset returns the eye position relative to the head, in meters.
func (e *ViewerEye) Offset() geom.Vec3 {
	return e.offset
}

// Viewport returns the eye's pixel rectangle.
func (e *ViewerEye) Viewport() Viewport {
	return e.viewport
}

// FOVRect returns the eye's tangent-space field of view.
func (e *ViewerEye) FOVRect() geom.Rect {
	return e.rect
}

// Rotate180 reports whether the eye's panel is mounted upside down.
func (e *ViewerEye) Rotate180() bool {
	return e.rotate180
}

// PitchTilt returns the display's pitch relative to the head, in radians.
func (e *ViewerEye) PitchTilt() float64 {
	return e.pitchTilt
}

// Pose returns the eye's pose: the head pose, moved by the eye offset and
// pitched by the display tilt.
func (e *ViewerEye) Pose() (geom.Pose, error) {
	head, err := e.viewer.Pose()
	if err != nil {
		return geom.Pose{}, err
	}
	return head.Compose(geom.Pose{
		Translation: e.offset,
		Rotation:    geom.AxisAngle(geom.UnitX(), e.pitchTilt),
	}), nil
}

// Projection returns the eye's column-major projection matrix for the given
// clip planes.
func (e *ViewerEye) Projection(near, far float64) (geom.Mat4, error) {
	m, err := geom.Projection(e.rect, near, far)
	if err != nil {
		return geom.Mat4{}, err
	}
	if e.rotate180 {
		m = geom.Rotate180(m)
	}
	return m, nil
}

// NumSurfaces returns the number of render surfaces of the eye, always one.
func (e *ViewerEye) NumSurfaces() int {
	return 1
}

// SurfaceViewport returns the viewport of surface i.
func (e *ViewerEye) SurfaceViewport(i int) (Viewport, error) {
	if i != 0 {
		return Viewport{}, fmt.Errorf("%w: surface %d of %d", ErrIndexOutOfRange, i, e.NumSurfaces())
	}
	return e.viewport, nil
}
