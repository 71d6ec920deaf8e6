package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestSymmetricFOVRect(t *testing.T) {
	t.Run("90 degrees maps to unit tangent", func(t *testing.T) {
		r := SymmetricFOVRect(90, 90)
		assert.InDelta(t, -1, r.Left, eps)
		assert.InDelta(t, 1, r.Right, eps)
		assert.InDelta(t, -1, r.Bottom, eps)
		assert.InDelta(t, 1, r.Top, eps)
	})

	t.Run("centered", func(t *testing.T) {
		r := SymmetricFOVRect(100, 60)
		assert.InDelta(t, -r.Left, r.Right, eps)
		assert.InDelta(t, -r.Bottom, r.Top, eps)
	})

	t.Run("strictly increasing in both angles", func(t *testing.T) {
		prev := SymmetricFOVRect(10, 10)
		for fov := 20.0; fov < 180; fov += 10 {
			r := SymmetricFOVRect(fov, fov)
			assert.Greater(t, r.Right, prev.Right)
			assert.Less(t, r.Left, prev.Left)
			assert.Greater(t, r.Top, prev.Top)
			assert.Less(t, r.Bottom, prev.Bottom)
			prev = r
		}
	})

	t.Run("horizontal does not move vertical bounds", func(t *testing.T) {
		a := SymmetricFOVRect(60, 40)
		b := SymmetricFOVRect(90, 40)
		assert.Equal(t, a.Top, b.Top)
		assert.Equal(t, a.Bottom, b.Bottom)
	})
}

func TestRectScale(t *testing.T) {
	r := Rect{Left: -1, Right: 2, Bottom: -3, Top: 4}.Scale(0.5)
	assert.Equal(t, Rect{Left: -0.5, Right: 1, Bottom: -1.5, Top: 2}, r)
	assert.Equal(t, 1.5, r.Width())
	assert.Equal(t, 3.5, r.Height())
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{"identity", Identity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"quarter turn about Y", AxisAngle(Vec3{0, 1, 0}, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"quarter turn about X", AxisAngle(Vec3{1, 0, 0}, math.Pi/2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"unnormalized axis", AxisAngle(Vec3{0, 0, 5}, math.Pi), Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"zero axis", AxisAngle(Vec3{}, 1), Vec3{1, 0, 0}, Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, tt.q.Rotate(tt.in))
		})
	}
}

func TestQuatMulOrder(t *testing.T) {
	yaw := AxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	pitch := AxisAngle(Vec3{1, 0, 0}, math.Pi/2)

	// pitch first, then yaw
	got := yaw.Mul(pitch).Rotate(Vec3{0, 1, 0})
	assertVec(t, yaw.Rotate(pitch.Rotate(Vec3{0, 1, 0})), got)
}

func TestPoseCompose(t *testing.T) {
	head := Pose{
		Translation: Vec3{0, 1.7, 0},
		Rotation:    AxisAngle(Vec3{0, 1, 0}, math.Pi/2),
	}
	eye := Pose{Translation: Vec3{0.03, 0, 0}, Rotation: Identity()}

	got := head.Compose(eye)
	assertVec(t, Vec3{0, 1.7, -0.03}, got.Translation)
	assertVec(t, head.Rotation.Rotate(Vec3{0, 0, 1}), got.Rotation.Rotate(Vec3{0, 0, 1}))

	id := IdentityPose().Compose(eye)
	assertVec(t, eye.Translation, id.Translation)
}

func TestProjection(t *testing.T) {
	t.Run("symmetric 90 degree frustum", func(t *testing.T) {
		m, err := Projection(SymmetricFOVRect(90, 90), 1, 100)
		require.NoError(t, err)

		assert.InDelta(t, 1, m.At(0, 0), eps)
		assert.InDelta(t, 0, m.At(0, 2), eps)
		assert.InDelta(t, 1, m.At(1, 1), eps)
		assert.InDelta(t, 0, m.At(1, 2), eps)
		assert.InDelta(t, -101.0/99.0, m.At(2, 2), eps)
		assert.InDelta(t, -200.0/99.0, m.At(2, 3), eps)
		assert.Equal(t, -1.0, m.At(3, 2))
		assert.Equal(t, 0.0, m.At(3, 3))
	})

	t.Run("off-axis rect shifts the third column", func(t *testing.T) {
		m, err := Projection(Rect{Left: -1, Right: 3, Bottom: -2, Top: 1}, 1, 10)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, m.At(0, 0), eps)
		assert.InDelta(t, 0.5, m.At(0, 2), eps)
		assert.InDelta(t, 2.0/3.0, m.At(1, 1), eps)
		assert.InDelta(t, -1.0/3.0, m.At(1, 2), eps)
	})

	t.Run("scale is independent of near", func(t *testing.T) {
		r := SymmetricFOVRect(70, 50)
		a, err := Projection(r, 0.1, 10)
		require.NoError(t, err)
		b, err := Projection(r, 1, 10)
		require.NoError(t, err)
		assert.InDelta(t, a.At(0, 0), b.At(0, 0), eps)
		assert.InDelta(t, a.At(1, 1), b.At(1, 1), eps)
	})

	t.Run("rejects bad clip planes", func(t *testing.T) {
		r := SymmetricFOVRect(90, 90)
		for _, c := range [][2]float64{{0, 10}, {1, 0}, {-1, 10}, {1, -10}, {10, 1}, {5, 5}} {
			_, err := Projection(r, c[0], c[1])
			assert.ErrorIs(t, err, ErrInvalidClip, "near=%g far=%g", c[0], c[1])
		}
	})

	t.Run("rejects empty rect", func(t *testing.T) {
		_, err := Projection(Rect{}, 1, 10)
		assert.ErrorIs(t, err, ErrInvalidClip)
	})
}

func TestRotate180(t *testing.T) {
	m, err := Projection(Rect{Left: -1, Right: 2, Bottom: -1, Top: 1}, 1, 10)
	require.NoError(t, err)

	r := Rotate180(m)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := m.At(row, col)
			if row < 2 {
				want = -want
			}
			assert.Equal(t, want, r.At(row, col), "row %d col %d", row, col)
		}
	}
	assert.Equal(t, m, Rotate180(r))
}
