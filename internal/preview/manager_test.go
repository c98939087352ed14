package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"spatial-preview/internal/animation"
	"spatial-preview/internal/frame"
	"spatial-preview/internal/gpu"
	"spatial-preview/internal/gpu/gputest"
	"spatial-preview/internal/orbit"
)

type fakeHost struct {
	w, h     int
	attached gpu.Surface
	resizeFn func(w, h int)
	calls    []string

	// checks run at the moment of each teardown call
	onUnsubscribe func()
	onDetach      func(gpu.Surface)
}

func (h *fakeHost) Size() (int, int) { return h.w, h.h }

func (h *fakeHost) Attach(s gpu.Surface) {
	h.calls = append(h.calls, "attach")
	h.attached = s
}

func (h *fakeHost) Detach(s gpu.Surface) {
	h.calls = append(h.calls, "detach")
	if h.onDetach != nil {
		h.onDetach(s)
	}
	if h.attached == s {
		h.attached = nil
	}
}

func (h *fakeHost) OnResize(fn func(w, h int)) func() {
	h.calls = append(h.calls, "subscribe")
	h.resizeFn = fn
	return func() {
		h.calls = append(h.calls, "unsubscribe")
		if h.onUnsubscribe != nil {
			h.onUnsubscribe()
		}
		h.resizeFn = nil
	}
}

func (h *fakeHost) resize(w, ht int) {
	h.w, h.h = w, ht
	if h.resizeFn != nil {
		h.resizeFn(w, ht)
	}
}

func newManager(t *testing.T, dev *gputest.Device) (*Manager, *frame.Scheduler) {
	t.Helper()
	sched := frame.NewScheduler()
	return New(dev, sched, zaptest.NewLogger(t), WithSeed(7)), sched
}

func TestMountActivates(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}

	require.NoError(t, m.Mount(host))
	assert.Equal(t, Active, m.State())
	assert.Equal(t, []string{"attach", "subscribe"}, host.calls)
	require.NotNil(t, host.attached)
	assert.Equal(t, 23, dev.Live())

	for i := 0; i < 3; i++ {
		sched.RunFrame()
	}
	assert.Equal(t, 3, dev.Surfaces()[0].Draws)
	assert.Equal(t, 3, m.Driver().Frames())

	assert.ErrorIs(t, m.Mount(host), ErrMounted)
}

func TestMountWithoutHostIsNoop(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)

	require.NoError(t, m.Mount(nil))
	assert.Equal(t, Unmounted, m.State())
	require.NoError(t, m.Mount(&fakeHost{w: 0, h: 400}))
	assert.Equal(t, Unmounted, m.State())
	assert.Zero(t, dev.Allocations())
	assert.Zero(t, sched.Pending())
	assert.Nil(t, m.Context())
}

func TestMountWithoutGraphicsContextIsNoop(t *testing.T) {
	dev := &gputest.Device{NoContext: true}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}

	require.NoError(t, m.Mount(host))
	assert.Equal(t, Unmounted, m.State())
	assert.Empty(t, host.calls)
	assert.Zero(t, dev.Live())
	assert.Zero(t, sched.Pending())
}

func TestMountFailureLeavesNothingAttached(t *testing.T) {
	dev := &gputest.Device{FailAfter: 9}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}

	err := m.Mount(host)
	require.ErrorIs(t, err, gputest.ErrInjected)
	assert.Equal(t, Unmounted, m.State())
	assert.Empty(t, host.calls)
	assert.Zero(t, dev.Live())
	assert.Zero(t, sched.Pending())

	// A later mount can still succeed.
	dev.FailAfter = 0
	require.NoError(t, m.Mount(host))
	assert.Equal(t, Active, m.State())
}

func TestUnmountOrdering(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}
	require.NoError(t, m.Mount(host))
	sched.RunFrame()

	driver := m.Driver()
	host.onUnsubscribe = func() {
		assert.Equal(t, animation.Cancelled, driver.State(), "driver must be cancelled before unsubscribing")
		assert.Equal(t, 23, dev.Live(), "nothing released before unsubscribing")
	}
	host.onDetach = func(s gpu.Surface) {
		assert.True(t, s.(*gputest.Surface).Released(), "surface released before detach")
		assert.Equal(t, 22, dev.Live(), "meshes and materials released after detach")
	}

	require.NoError(t, m.Unmount())
	assert.Equal(t, Unmounted, m.State())
	assert.Equal(t, []string{"attach", "subscribe", "unsubscribe", "detach"}, host.calls)
	assert.Nil(t, host.attached)
	assert.Zero(t, dev.Live())
	assert.Zero(t, dev.DoubleReleases())

	require.NoError(t, m.Unmount())
}

func TestMountCyclesLeaveNoResidualHandles(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 1024, h: 768}
	baseline := dev.Live()

	var afterUnmount []int
	for cycle := 0; cycle < 3; cycle++ {
		require.NoError(t, m.Mount(host))
		for i := 0; i < 10; i++ {
			sched.RunFrame()
		}
		assert.InDelta(t, 10*animation.TimeStep, m.Driver().Time(), 1e-5, "clock restarts on every mount")
		require.NoError(t, m.Unmount())
		afterUnmount = append(afterUnmount, dev.Live())
	}
	assert.Equal(t, []int{baseline, baseline, baseline}, afterUnmount)
	assert.Zero(t, sched.Pending())
}

func TestNoRendersAfterUnmount(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}
	require.NoError(t, m.Mount(host))
	sched.RunFrame()
	surface := dev.Surfaces()[0]
	resize := host.resizeFn

	require.NoError(t, m.Unmount())
	draws := surface.Draws
	for i := 0; i < 30; i++ {
		sched.RunFrame()
	}
	resize(100, 100)
	m.HandleInput(orbit.Event{Kind: orbit.Wheel, Delta: -1})

	assert.Equal(t, draws, surface.Draws)
	assert.Zero(t, surface.Resizes)
}

func TestResizeCommutesWithFrames(t *testing.T) {
	run := func(resizeFirst bool) (w, h int, aspect float32) {
		dev := &gputest.Device{}
		m, sched := newManager(t, dev)
		host := &fakeHost{w: 800, h: 600}
		require.NoError(t, m.Mount(host))
		if resizeFirst {
			host.resize(1280, 400)
			sched.RunFrame()
		} else {
			sched.RunFrame()
			host.resize(1280, 400)
		}
		ctx := m.Context()
		w, h = ctx.Surface.Size()
		return w, h, ctx.Camera.Aspect
	}

	w1, h1, a1 := run(true)
	w2, h2, a2 := run(false)
	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, a1, a2)
	assert.Equal(t, 1280, w1)
	assert.InDelta(t, 3.2, a1, 1e-6)
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	dev := &gputest.Device{}
	m, _ := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}
	require.NoError(t, m.Mount(host))

	host.resize(0, 0)
	w, h := m.Context().Surface.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestHandleInputReachesCamera(t *testing.T) {
	dev := &gputest.Device{}
	m, sched := newManager(t, dev)
	host := &fakeHost{w: 800, h: 600}
	require.NoError(t, m.Mount(host))

	for i := 0; i < 200; i++ {
		m.HandleInput(orbit.Event{Kind: orbit.Wheel, Delta: -100})
		sched.RunFrame()
	}
	p := m.Context().Camera.Position
	d := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
	assert.InDelta(t, 25, d, 1e-2)
}
