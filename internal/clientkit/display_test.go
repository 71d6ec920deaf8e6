package clientkit

import (
	"testing"

	"github.com/bnema/vrkit/internal/client"
	"github.com/bnema/vrkit/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stereo = `{"hmd":{"field_of_view":{"monocular_horizontal":90,"monocular_vertical":90},
	"resolutions":[{"width":2160,"height":1200,"display_mode":"horz_side_by_side"}],
	"eyes":[{"rotate_180":0},{"rotate_180":0}],"ipd_meters":0.06}}`

func openDisplay(t *testing.T) (*client.Context, *Display) {
	t.Helper()
	ctx := client.NewContext("com.test")
	ctx.SetStringParameter(client.DisplayPath, stereo)
	d, rc := GetDisplay(ctx)
	require.Equal(t, Success, rc)
	require.NotNil(t, d)
	return ctx, d
}

func TestGetDisplay(t *testing.T) {
	t.Run("null context", func(t *testing.T) {
		d, rc := GetDisplay(nil)
		assert.Nil(t, d)
		assert.Equal(t, Failure, rc)
	})

	t.Run("missing descriptor", func(t *testing.T) {
		d, rc := GetDisplay(client.NewContext("t"))
		assert.Nil(t, d)
		assert.Equal(t, Failure, rc)
	})

	t.Run("context owns the display", func(t *testing.T) {
		ctx, d := openDisplay(t)
		assert.Equal(t, 1, ctx.Objects())
		assert.Equal(t, Success, FreeDisplay(d))
		assert.Equal(t, 0, ctx.Objects())
		assert.Equal(t, Failure, FreeDisplay(d), "double free")
		assert.Equal(t, Failure, FreeDisplay(nil))
	})
}

func TestOpenDisplayReportsReason(t *testing.T) {
	tests := []struct {
		name string
		ctx  *client.Context
		want error
		kind client.ErrorKind
	}{
		{"nil context", nil, ErrNilContext, client.KindOther},
		{"missing descriptor", client.NewContext("t"), client.ErrParameterMissing, client.KindParameterMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := OpenDisplay(tt.ctx)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, client.KindOf(err))
		})
	}

	bad := client.NewContext("t")
	bad.SetStringParameter(client.DisplayPath, "{not json")
	_, err := OpenDisplay(bad)
	assert.Equal(t, client.KindInvalidDescriptor, client.KindOf(err))
	assert.Equal(t, 0, bad.Objects())
}

func TestCounts(t *testing.T) {
	_, d := openDisplay(t)

	n, rc := GetNumViewers(d)
	assert.Equal(t, Success, rc)
	assert.Equal(t, 1, n)

	n, rc = GetNumEyesForViewer(d, 0)
	assert.Equal(t, Success, rc)
	assert.Equal(t, 2, n)

	_, rc = GetNumEyesForViewer(d, 1)
	assert.Equal(t, OutOfRange, rc)

	n, rc = GetNumSurfacesForViewerEye(d, 0, 1)
	assert.Equal(t, Success, rc)
	assert.Equal(t, 1, n)

	_, rc = GetNumSurfacesForViewerEye(d, 0, 2)
	assert.Equal(t, OutOfRange, rc)

	_, rc = GetNumViewers(nil)
	assert.Equal(t, Failure, rc)
}

func TestPoses(t *testing.T) {
	ctx, d := openDisplay(t)

	_, rc := GetViewerPose(d, 0)
	assert.Equal(t, NoPoseYet, rc)
	_, rc = GetViewerEyePose(d, 0, 0)
	assert.Equal(t, NoPoseYet, rc)
	_, rc = GetViewerEyePose(d, 0, 5)
	assert.Equal(t, OutOfRange, rc)

	ctx.SetPose(client.HeadPath, geom.IdentityPose())

	p, rc := GetViewerPose(d, 0)
	assert.Equal(t, Success, rc)
	assert.Equal(t, geom.IdentityPose().Translation, p.Translation)

	p, rc = GetViewerEyePose(d, 0, 1)
	assert.Equal(t, Success, rc)
	assert.InDelta(t, 0.03, p.Translation[0], 1e-12)
}

func TestViewport(t *testing.T) {
	_, d := openDisplay(t)

	vp, rc := GetRelativeViewportForViewerEyeSurface(d, 0, 1, 0)
	assert.Equal(t, Success, rc)
	assert.Equal(t, client.Viewport{Left: 1080, Bottom: 0, Width: 1080, Height: 1200}, vp)

	_, rc = GetRelativeViewportForViewerEyeSurface(d, 0, 1, 1)
	assert.Equal(t, OutOfRange, rc)
}

func TestProjection(t *testing.T) {
	_, d := openDisplay(t)

	m, rc := GetProjectionForViewerEyeSurface(d, 0, 0, 0, 0.1, 100)
	assert.Equal(t, Success, rc)
	// row-major: translation terms sit at the end of the third row
	assert.InDelta(t, 1, m[0], 1e-9)
	assert.InDelta(t, -2*100*0.1/(100-0.1), m[11], 1e-9)
	assert.Equal(t, -1.0, m[14])
	assert.Equal(t, 0.0, m[15])

	tests := []struct {
		name      string
		near, far float64
	}{
		{"zero near", 0, 100},
		{"zero far", 0.1, 0},
		{"negative near", -0.1, 100},
		{"negative far", 0.1, -100},
		{"inverted", 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rc := GetProjectionForViewerEyeSurface(d, 0, 0, 0, tt.near, tt.far)
			assert.Equal(t, Failure, rc)
		})
	}

	_, rc = GetProjectionForViewerEyeSurface(d, 0, 0, 3, 0.1, 100)
	assert.Equal(t, OutOfRange, rc)
}

func TestReturnCode(t *testing.T) {
	assert.True(t, Success.OK())
	assert.False(t, NoPoseYet.OK())
	assert.Equal(t, "out of range", OutOfRange.String())
	assert.Equal(t, "failure", ReturnCode(42).String())
}
