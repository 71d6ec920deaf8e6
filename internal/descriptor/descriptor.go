// Package descriptor parses display descriptors (schema version 1): the JSON
// document describing a head-mounted display's panel resolution, stereo
// layout, field of view and interpupillary distance.
package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bnema/vrkit/internal/geom"
)

// DefaultIPDMeters is used when the descriptor does not carry an IPD.
const DefaultIPDMeters = 0.062

// ErrInvalidDescriptor is returned for descriptors that parse but describe an
// impossible display.
var ErrInvalidDescriptor = errors.New("invalid display descriptor")

// DisplayMode is how eyes share the physical panel.
type DisplayMode int

const (
	ModeUnknown DisplayMode = iota
	FullScreen
	HorizontalSideBySide
	VerticalSideBySide
)

var modeNames = map[DisplayMode]string{
	FullScreen:           "full_screen",
	HorizontalSideBySide: "horz_side_by_side",
	VerticalSideBySide:   "vert_side_by_side",
}

func (m DisplayMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// ParseDisplayMode maps a schema string onto a mode. Unknown strings yield
// ModeUnknown rather than an error.
func ParseDisplayMode(s string) DisplayMode {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeUnknown
}

// Modes lists the recognized display modes in declaration order.
func Modes() []DisplayMode {
	return []DisplayMode{FullScreen, HorizontalSideBySide, VerticalSideBySide}
}

// Eye holds the per-eye flags of a descriptor.
type Eye struct {
	Rotate180 bool
}

// Descriptor is a parsed, validated display descriptor.
type Descriptor struct {
	DisplayMode   DisplayMode
	DisplayWidth  int
	DisplayHeight int
	HorizontalFOV float64 // degrees
	VerticalFOV   float64 // degrees
	IPDMeters     float64
	PitchTilt     float64 // radians
	Eyes          []Eye
}

// Stereo reports whether the descriptor describes two eyes.
func (d *Descriptor) Stereo() bool {
	return len(d.Eyes) == 2
}

type document struct {
	HMD hmd `json:"hmd"`
}

type hmd struct {
	FieldOfView fieldOfView  `json:"field_of_view"`
	Resolutions []resolution `json:"resolutions"`
	Eyes        []eye        `json:"eyes,omitempty"`
	IPDMeters   *float64     `json:"ipd_meters,omitempty"`
}

type fieldOfView struct {
	MonocularHorizontal float64 `json:"monocular_horizontal"`
	MonocularVertical   float64 `json:"monocular_vertical"`
	PitchTilt           float64 `json:"pitch_tilt"` // degrees
}

type resolution struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	DisplayMode string `json:"display_mode"`
}

type eye struct {
	Rotate180 int `json:"rotate_180"`
}

// Parse decodes and validates a schema 1 descriptor.
func Parse(s string) (*Descriptor, error) {
	var doc document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse display descriptor: %w", err)
	}

	h := doc.HMD
	if len(h.Resolutions) == 0 {
		return nil, fmt.Errorf("%w: no resolutions", ErrInvalidDescriptor)
	}
	res := h.Resolutions[0]

	d := &Descriptor{
		DisplayMode:   ParseDisplayMode(res.DisplayMode),
		DisplayWidth:  res.Width,
		DisplayHeight: res.Height,
		HorizontalFOV: h.FieldOfView.MonocularHorizontal,
		VerticalFOV:   h.FieldOfView.MonocularVertical,
		IPDMeters:     DefaultIPDMeters,
		PitchTilt:     geom.DegToRad(h.FieldOfView.PitchTilt),
	}
	if h.IPDMeters != nil {
		d.IPDMeters = *h.IPDMeters
	}
	if h.Eyes == nil {
		d.Eyes = []Eye{{}, {}}
	} else {
		d.Eyes = make([]Eye, len(h.Eyes))
		for i, e := range h.Eyes {
			d.Eyes[i] = Eye{Rotate180: e.Rotate180 != 0}
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the numeric ranges of a descriptor. The display mode is
// not checked here.
func (d *Descriptor) Validate() error {
	switch {
	case d.DisplayWidth <= 0 || d.DisplayHeight <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidDescriptor, d.DisplayWidth, d.DisplayHeight)
	case d.HorizontalFOV <= 0 || d.HorizontalFOV >= 180:
		return fmt.Errorf("%w: horizontal field of view %g", ErrInvalidDescriptor, d.HorizontalFOV)
	case d.VerticalFOV <= 0 || d.VerticalFOV >= 180:
		return fmt.Errorf("%w: vertical field of view %g", ErrInvalidDescriptor, d.VerticalFOV)
	case d.IPDMeters < 0:
		return fmt.Errorf("%w: negative IPD %g", ErrInvalidDescriptor, d.IPDMeters)
	case len(d.Eyes) != 1 && len(d.Eyes) != 2:
		return fmt.Errorf("%w: %d eyes, want 1 or 2", ErrInvalidDescriptor, len(d.Eyes))
	}
	return nil
}

// Marshal encodes a descriptor back into schema 1 JSON.
func Marshal(d *Descriptor) ([]byte, error) {
	if d.DisplayMode == ModeUnknown {
		return nil, fmt.Errorf("%w: display mode not set", ErrInvalidDescriptor)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	ipd := d.IPDMeters
	doc := document{HMD: hmd{
		FieldOfView: fieldOfView{
			MonocularHorizontal: d.HorizontalFOV,
			MonocularVertical:   d.VerticalFOV,
			PitchTilt:           d.PitchTilt * 180 / math.Pi,
		},
		Resolutions: []resolution{{
			Width:       d.DisplayWidth,
			Height:      d.DisplayHeight,
			DisplayMode: d.DisplayMode.String(),
		}},
		IPDMeters: &ipd,
	}}
	for _, e := range d.Eyes {
		var r int
		if e.Rotate180 {
			r = 1
		}
		doc.HMD.Eyes = append(doc.HMD.Eyes, eye{Rotate180: r})
	}
	return json.MarshalIndent(doc, "", "  ")
}
