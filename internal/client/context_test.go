package client

import (
	"sync"
	"testing"

	"github.com/bnema/vrkit/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextParameters(t *testing.T) {
	ctx := NewContext("com.test")
	assert.Equal(t, "com.test", ctx.AppID())

	_, err := ctx.GetStringParameter("/display")
	assert.ErrorIs(t, err, ErrParameterMissing)

	ctx.SetStringParameter("/display", "a")
	ctx.SetStringParameter("/display", "b")
	v, err := ctx.GetStringParameter("/display")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestContextObjects(t *testing.T) {
	ctx := NewContext("t")
	a, b := new(int), new(int)

	ctx.AcquireObject(a)
	assert.Equal(t, 1, ctx.Objects())
	assert.False(t, ctx.ReleaseObject(b))
	assert.True(t, ctx.ReleaseObject(a))
	assert.False(t, ctx.ReleaseObject(a))
	assert.Equal(t, 0, ctx.Objects())
}

func TestContextConcurrentPoses(t *testing.T) {
	ctx := NewContext("t")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			ctx.SetPose(HeadPath, geom.Pose{Translation: geom.Vec3{float64(i), 0, 0}, Rotation: geom.Identity()})
		}(i)
		go func() {
			defer wg.Done()
			ctx.Pose(HeadPath)
		}()
	}
	wg.Wait()

	_, ok := ctx.Pose(HeadPath)
	assert.True(t, ok)
}
