package scene

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-preview/internal/gpu"
	"spatial-preview/internal/gpu/gputest"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestBuildProducesFixedScene(t *testing.T) {
	sizes := [][2]int{{1, 1}, {640, 480}, {1920, 1080}, {300, 900}}
	for _, sz := range sizes {
		dev := &gputest.Device{}
		ctx, err := Build(dev, sz[0], sz[1], testRand())
		require.NoError(t, err)

		require.NotNil(t, ctx.Camera)
		require.NotNil(t, ctx.Scene.Root)
		assert.Nil(t, ctx.Scene.Root.Parent())
		assert.Equal(t, PointCount, len(ctx.Points.Children()))
		assert.Equal(t, 10, ctx.Points.Count(KindMesh))
		assert.InDelta(t, float32(sz[0])/float32(sz[1]), ctx.Camera.Aspect, 1e-6)

		w, h := ctx.Surface.Size()
		assert.Equal(t, sz[0], w)
		assert.Equal(t, sz[1], h)
		assert.Equal(t, map[string]int{"surface": 1, "mesh": 12, "material": 10}, dev.LiveByKind())
	}
}

func TestBuildFrameCarriesCameraFrustum(t *testing.T) {
	ctx, err := Build(&gputest.Device{}, 800, 400, testRand())
	require.NoError(t, err)

	near, far := ctx.Scene.Frame(ctx.Camera).View.ClipPlanes(0.01, 1000)
	assert.InDelta(t, 0.1, near, 1e-6)
	assert.Equal(t, 100.0, far)
}

func TestBuildPointsInsideVolume(t *testing.T) {
	ctx, err := Build(&gputest.Device{}, 800, 600, testRand())
	require.NoError(t, err)
	for _, p := range ctx.Points.Children() {
		pos := p.Transform.Position
		assert.GreaterOrEqual(t, pos[0], float32(-2))
		assert.Less(t, pos[0], float32(2))
		assert.GreaterOrEqual(t, pos[1], float32(0))
		assert.Less(t, pos[1], float32(3))
		assert.GreaterOrEqual(t, pos[2], float32(-2))
		assert.Less(t, pos[2], float32(2))
	}
}

func TestBuildTreeHasSingleParents(t *testing.T) {
	ctx, err := Build(&gputest.Device{}, 800, 600, testRand())
	require.NoError(t, err)

	seen := make(map[*Node]bool)
	ctx.Scene.Root.Walk(func(n *Node) bool {
		assert.False(t, seen[n], "node %q visited twice", n.Name)
		seen[n] = true
		for _, c := range n.Children() {
			assert.Same(t, n, c.Parent())
		}
		return true
	})

	legs := ctx.Scene.Root.Find("table")
	require.NotNil(t, legs)
	assert.Len(t, legs.Children(), 4)
	assert.NotNil(t, ctx.Scene.Root.Find("wall-back"))
	assert.NotNil(t, ctx.Scene.Root.Find("wall-side"))
	assert.Equal(t, 3, ctx.Scene.Root.Count(KindLight))
}

func TestBuildRejectsEmptyContainer(t *testing.T) {
	dev := &gputest.Device{}
	for _, sz := range [][2]int{{0, 100}, {100, 0}, {-1, 10}} {
		ctx, err := Build(dev, sz[0], sz[1], testRand())
		assert.ErrorIs(t, err, ErrEmptyContainer)
		assert.Nil(t, ctx)
	}
	assert.Zero(t, dev.Allocations())
}

func TestBuildWithoutContext(t *testing.T) {
	dev := &gputest.Device{NoContext: true}
	ctx, err := Build(dev, 640, 480, testRand())
	assert.ErrorIs(t, err, gpu.ErrUnavailable)
	assert.Nil(t, ctx)
	assert.Zero(t, dev.Live())
}

func TestBuildFailureReleasesPartialScene(t *testing.T) {
	total := 23
	for fail := 1; fail <= total; fail++ {
		dev := &gputest.Device{FailAfter: fail}
		ctx, err := Build(dev, 640, 480, testRand())
		require.Error(t, err, "fail at %d", fail)
		assert.True(t, errors.Is(err, gputest.ErrInjected))
		assert.Nil(t, ctx)
		assert.Zero(t, dev.Live(), "fail at %d leaked handles", fail)
		assert.Zero(t, dev.DoubleReleases())
	}
}

func TestContextReleaseIsExhaustiveAndIdempotent(t *testing.T) {
	dev := &gputest.Device{}
	ctx, err := Build(dev, 640, 480, testRand())
	require.NoError(t, err)
	assert.Equal(t, 22, ctx.Resources())

	require.NoError(t, ctx.ReleaseSurface())
	assert.Equal(t, 22, dev.Live())
	require.NoError(t, ctx.ReleaseResources())
	assert.Zero(t, dev.Live())

	require.NoError(t, ctx.Release())
	assert.Zero(t, dev.DoubleReleases())
}
