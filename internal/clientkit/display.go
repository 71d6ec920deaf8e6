// Package clientkit is the handle-based display API handed to applications.
// Every call validates its arguments, never panics, and reports the outcome
// as a ReturnCode; the reason for a failure goes to the debug log.
package clientkit

import (
	"errors"

	"github.com/bnema/vrkit/internal/client"
	"github.com/bnema/vrkit/internal/geom"
	"github.com/bnema/vrkit/internal/logger"
	"golang.org/x/image/math/f64"
)

// ReturnCode is the outcome of a clientkit call.
type ReturnCode int

const (
	Success ReturnCode = iota
	Failure
	NoPoseYet  // pose not reported yet, retry later
	OutOfRange // bad viewer, eye or surface index
)

func (r ReturnCode) String() string {
	switch r {
	case Success:
		return "success"
	case NoPoseYet:
		return "no pose yet"
	case OutOfRange:
		return "out of range"
	default:
		return "failure"
	}
}

// OK reports whether the call succeeded.
func (r ReturnCode) OK() bool {
	return r == Success
}

// Display is an open display configuration owned by a client context.
type Display struct {
	ctx *client.Context
	cfg *client.DisplayConfig
}

func codeFor(err error) ReturnCode {
	switch client.KindOf(err) {
	case client.KindNone:
		return Success
	case client.KindNoPoseYet:
		return NoPoseYet
	case client.KindIndexOutOfRange:
		return OutOfRange
	default:
		return Failure
	}
}

func fail(what string, err error) ReturnCode {
	code := codeFor(err)
	logger.Debug("clientkit call failed", "op", what, "code", code, "err", err)
	return code
}

// ErrNilContext is returned by OpenDisplay for a nil client context.
var ErrNilContext = errors.New("nil client context")

// OpenDisplay creates the display configuration of ctx and hands it to the
// context, which owns it until FreeDisplay. Unlike GetDisplay it returns the
// reason for a failure; classify it with client.KindOf.
func OpenDisplay(ctx *client.Context) (*Display, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	cfg, err := client.Create(ctx)
	if err != nil {
		return nil, err
	}
	d := &Display{ctx: ctx, cfg: cfg}
	ctx.AcquireObject(d)
	logger.Debug("Created a display config", "app", ctx.AppID())
	return d, nil
}

// GetDisplay is OpenDisplay reporting a ReturnCode.
func GetDisplay(ctx *client.Context) (*Display, ReturnCode) {
	d, err := OpenDisplay(ctx)
	if err != nil {
		logger.Debug("Error creating display config", "err", err)
		return nil, Failure
	}
	return d, Success
}

// FreeDisplay hands the display back to its context.
func FreeDisplay(d *Display) ReturnCode {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return Failure
	}
	if d.ctx == nil || !d.ctx.ReleaseObject(d) {
		logger.Debug("Display config not owned by its context")
		return Failure
	}
	return Success
}

// Config exposes the underlying configuration for richer queries.
func (d *Display) Config() *client.DisplayConfig {
	return d.cfg
}

// GetNumViewers returns the viewer count.
func GetNumViewers(d *Display) (int, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return 0, Failure
	}
	return d.cfg.Size(), Success
}

// GetViewerPose returns the head pose of viewer.
func GetViewerPose(d *Display, viewer int) (geom.Pose, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return geom.Pose{}, Failure
	}
	v, err := d.cfg.Viewer(viewer)
	if err != nil {
		return geom.Pose{}, fail("viewer pose", err)
	}
	p, err := v.Pose()
	if err != nil {
		return geom.Pose{}, fail("viewer pose", err)
	}
	return p, Success
}

// GetNumEyesForViewer returns the eye count of viewer.
func GetNumEyesForViewer(d *Display, viewer int) (int, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return 0, Failure
	}
	n, err := d.cfg.NumViewerEyes(viewer)
	if err != nil {
		return 0, fail("eye count", err)
	}
	return n, Success
}

// GetViewerEyePose returns the pose of one eye.
func GetViewerEyePose(d *Display, viewer, eye int) (geom.Pose, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return geom.Pose{}, Failure
	}
	p, err := d.cfg.ViewerEyePose(viewer, eye)
	if err != nil {
		return geom.Pose{}, fail("eye pose", err)
	}
	return p, Success
}

// GetNumSurfacesForViewerEye returns the surface count of one eye.
func GetNumSurfacesForViewerEye(d *Display, viewer, eye int) (int, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return 0, Failure
	}
	e, err := d.cfg.ViewerEye(viewer, eye)
	if err != nil {
		return 0, fail("surface count", err)
	}
	return e.NumSurfaces(), Success
}

// GetRelativeViewportForViewerEyeSurface returns the pixel viewport of one
// eye surface.
func GetRelativeViewportForViewerEyeSurface(d *Display, viewer, eye, surface int) (client.Viewport, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return client.Viewport{}, Failure
	}
	e, err := d.cfg.ViewerEye(viewer, eye)
	if err != nil {
		return client.Viewport{}, fail("viewport", err)
	}
	vp, err := e.SurfaceViewport(surface)
	if err != nil {
		return client.Viewport{}, fail("viewport", err)
	}
	return vp, Success
}

// GetProjectionForViewerEyeSurface returns the projection matrix of one eye
// surface as 16 row-major values. near and far must be positive.
func GetProjectionForViewerEyeSurface(d *Display, viewer, eye, surface int, near, far float64) (f64.Mat4, ReturnCode) {
	if d == nil {
		logger.Debug("Passed a null display config!")
		return f64.Mat4{}, Failure
	}
	if near == 0 || far == 0 {
		logger.Debug("Can't specify a near or far distance as 0!")
		return f64.Mat4{}, Failure
	}
	if near < 0 || far < 0 {
		logger.Debug("Can't specify a negative near or far distance!")
		return f64.Mat4{}, Failure
	}
	e, err := d.cfg.ViewerEye(viewer, eye)
	if err != nil {
		return f64.Mat4{}, fail("projection", err)
	}
	if _, err := e.SurfaceViewport(surface); err != nil {
		return f64.Mat4{}, fail("projection", err)
	}
	m, err := e.Projection(near, far)
	if err != nil {
		return f64.Mat4{}, fail("projection", err)
	}
	return rowMajor(m), Success
}

// rowMajor flattens a column-major matrix in row order.
func rowMajor(m geom.Mat4) f64.Mat4 {
	return f64.Mat4(m.Transpose())
}
