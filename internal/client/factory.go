package client

import (
	"errors"
	"fmt"

	"github.com/bnema/vrkit/internal/descriptor"
	"github.com/bnema/vrkit/internal/geom"
	"github.com/bnema/vrkit/internal/logger"
)

const (
	// DisplayPath is the parameter holding the display descriptor.
	DisplayPath = "/display"
	// HeadPath is the body path of the single viewer.
	HeadPath = "/me/head"
)

// Create builds the display configuration from the descriptor stored in the
// context under DisplayPath.
func Create(ctx ClientContext) (*DisplayConfig, error) {
	s, err := ctx.GetStringParameter(DisplayPath)
	if err != nil {
		if !errors.Is(err, ErrParameterMissing) {
			err = fmt.Errorf("%w: %w", ErrParameterMissing, err)
		}
		return nil, fmt.Errorf("failed to fetch display descriptor: %w", err)
	}

	desc, err := descriptor.Parse(s)
	if err != nil {
		if !errors.Is(err, ErrInvalidDescriptor) {
			err = fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
		return nil, err
	}

	return FromDescriptor(ctx, desc)
}

// FromDescriptor builds the display configuration from an already parsed
// descriptor. Only one- and two-eye descriptors are accepted.
func FromDescriptor(ctx ClientContext, desc *descriptor.Descriptor) (*DisplayConfig, error) {
	var (
		offset geom.Vec3
		eyes   []int
	)
	switch len(desc.Eyes) {
	case 2:
		offset = geom.UnitX().Mul(desc.IPDMeters / 2)
		eyes = []int{0, 1}
	case 1:
		offset = geom.Zero()
		eyes = []int{0}
	default:
		return nil, fmt.Errorf("%w: %d eyes, want 1 or 2", ErrInvalidDescriptor, len(desc.Eyes))
	}

	rect := computeRect(desc)

	cfg := &DisplayConfig{viewers: make([]Viewer, 1)}
	viewer := &cfg.viewers[0]
	viewer.ctx = ctx
	viewer.path = HeadPath
	viewer.eyes = make([]ViewerEye, 0, len(eyes))

	for _, e := range eyes {
		vp, err := computeViewport(e, desc)
		if err != nil {
			return nil, err
		}
		// -1 for eye 0, +1 for eye 1; mono has a zero offset anyway.
		factor := float64(2*e - 1)
		viewer.eyes = append(viewer.eyes, ViewerEye{
			viewer:    viewer,
			offset:    offset.Mul(factor),
			viewport:  vp,
			rect:      rect,
			rotate180: desc.Eyes[e].Rotate180,
			pitchTilt: desc.PitchTilt,
		})
	}

	logger.Debug("Created display config",
		"mode", desc.DisplayMode,
		"resolution", fmt.Sprintf("%dx%d", desc.DisplayWidth, desc.DisplayHeight),
		"eyes", len(eyes))
	return cfg, nil
}

// computeViewport assigns eye its share of the panel. Eye 0 gets the left
// column of a horizontal split and the top row of a vertical one.
func computeViewport(eye int, desc *descriptor.Descriptor) (Viewport, error) {
	var vp Viewport
	switch desc.DisplayMode {
	case descriptor.FullScreen:
		vp = Viewport{Left: 0, Bottom: 0, Width: desc.DisplayWidth, Height: desc.DisplayHeight}
	case descriptor.HorizontalSideBySide:
		vp.Bottom = 0
		vp.Height = desc.DisplayHeight
		vp.Width = desc.DisplayWidth / 2
		vp.Left = eye * vp.Width
	case descriptor.VerticalSideBySide:
		vp.Left = 0
		vp.Width = desc.DisplayWidth
		vp.Height = desc.DisplayHeight / 2
		if eye == 0 {
			vp.Bottom = vp.Height
		}
	default:
		return Viewport{}, fmt.Errorf("%w: %v", ErrUnrecognizedDisplayMode, desc.DisplayMode)
	}
	if eye < 0 || eye > 1 {
		return Viewport{}, fmt.Errorf("%w: eye %d", ErrIndexOutOfRange, eye)
	}
	return vp, nil
}

// computeRect is the same for every eye: the field of view is assumed
// symmetric.
func computeRect(desc *descriptor.Descriptor) geom.Rect {
	return geom.SymmetricFOVRect(desc.HorizontalFOV, desc.VerticalFOV)
}
