package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-preview/internal/scene"
)

func newCamera() *scene.Camera {
	return scene.NewCamera(35, 1.5, 0.1, 100, scene.CameraStart)
}

func distance(cam *scene.Camera) float32 {
	p := cam.Position
	return math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

func azimuth(cam *scene.Camera) float32 {
	return math32.Atan2(cam.Position[0], cam.Position[2])
}

func TestZoomStaysWithinLimits(t *testing.T) {
	cam := newCamera()
	c := New(cam, DefaultConfig())

	for i := 0; i < 500; i++ {
		c.Handle(Event{Kind: Wheel, Delta: -120})
		c.Handle(Event{Kind: Pinch, Delta: 10})
		c.Update()
		d := distance(cam)
		require.GreaterOrEqual(t, d, float32(5)-1e-3)
		require.LessOrEqual(t, d, float32(20)+1e-3)
	}
	assert.InDelta(t, 5, distance(cam), 1e-3)

	for i := 0; i < 500; i++ {
		c.Handle(Event{Kind: Wheel, Delta: 120})
		c.Handle(Event{Kind: Pinch, Delta: 0.01})
		c.Update()
		d := distance(cam)
		require.GreaterOrEqual(t, d, float32(5)-1e-3)
		require.LessOrEqual(t, d, float32(20)+1e-3)
	}
	assert.InDelta(t, 20, distance(cam), 1e-3)
}

func TestPolarClampKeepsCameraAboveFloor(t *testing.T) {
	cam := newCamera()
	c := New(cam, DefaultConfig())
	c.SetViewport(800, 600)

	c.Handle(Event{Kind: PointerDown, X: 400, Y: 0})
	for i := 0; i < 200; i++ {
		c.Handle(Event{Kind: PointerMove, X: 400, Y: float32(-100000 * (i + 1))})
		c.Update()
		require.Greater(t, cam.Position[1], float32(0), "frame %d", i)
	}
	c.Handle(Event{Kind: PointerUp})

	// Dragging the other way must not flip the camera past the zenith either.
	c.Handle(Event{Kind: PointerDown, X: 400, Y: 0})
	for i := 0; i < 200; i++ {
		c.Handle(Event{Kind: PointerMove, X: 400, Y: float32(100000 * (i + 1))})
		c.Update()
		require.Greater(t, cam.Position[1], float32(0))
	}

	maxPolar := DefaultConfig().MaxPolarAngle
	minY := distance(cam) * math32.Cos(maxPolar)
	assert.GreaterOrEqual(t, cam.Position[1], minY-1e-3)
}

func TestDampingDecelerates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRotate = false
	cam := newCamera()
	c := New(cam, cfg)
	c.SetViewport(800, 600)

	c.Handle(Event{Kind: PointerDown, X: 0, Y: 300})
	c.Handle(Event{Kind: PointerMove, X: 60, Y: 300})
	c.Handle(Event{Kind: PointerUp})

	prev := azimuth(cam)
	var steps []float32
	for i := 0; i < 40; i++ {
		c.Update()
		a := azimuth(cam)
		steps = append(steps, math32.Abs(a-prev))
		prev = a
	}
	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i], steps[i-1])
	}
	// First step is the damping factor's share of the full rotation.
	full := 2 * math32.Pi * 60 / 600
	assert.InDelta(t, full*cfg.DampingFactor, steps[0], 1e-4)
}

func TestWithoutDampingSnaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRotate = false
	cfg.EnableDamping = false
	cam := newCamera()
	c := New(cam, cfg)
	c.SetViewport(800, 600)

	before := azimuth(cam)
	c.Handle(Event{Kind: PointerDown, X: 0, Y: 300})
	c.Handle(Event{Kind: PointerMove, X: 30, Y: 300})
	c.Update()
	after := azimuth(cam)
	c.Update()

	assert.InDelta(t, 2*math32.Pi*30/600, math32.Abs(after-before), 1e-4)
	assert.InDelta(t, after, azimuth(cam), 1e-5)
}

func TestAutoRotateReachesSteadyRate(t *testing.T) {
	cam := newCamera()
	c := New(cam, DefaultConfig())

	prev := azimuth(cam)
	var step float32
	for i := 0; i < 400; i++ {
		c.Update()
		a := azimuth(cam)
		step = prev - a
		prev = a
	}
	want := 2 * math32.Pi / 3600 * 0.5
	assert.InDelta(t, want, step, float64(want*0.01))
	assert.InDelta(t, distance(newCamera()), distance(cam), 1e-3)
}

func TestAutoRotatePausesWhileDragging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableDamping = false
	cam := newCamera()
	c := New(cam, cfg)

	c.Handle(Event{Kind: PointerDown, X: 10, Y: 10})
	before := azimuth(cam)
	c.Update()
	assert.InDelta(t, before, azimuth(cam), 1e-5)
	assert.True(t, c.Dragging())
}

func TestSecondaryButtonDoesNotPan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRotate = false
	cam := newCamera()
	c := New(cam, cfg)

	start := cam.Position
	c.Handle(Event{Kind: PointerDown, Button: ButtonSecondary, X: 0, Y: 0})
	c.Handle(Event{Kind: PointerMove, X: 500, Y: 500})
	c.Update()

	assert.False(t, c.Dragging())
	assert.Equal(t, [3]float32{0, 0, 0}, cam.Target)
	for i := range start {
		assert.InDelta(t, start[i], cam.Position[i], 1e-4)
	}
}

func TestDetachIgnoresEverything(t *testing.T) {
	cam := newCamera()
	c := New(cam, DefaultConfig())
	c.Detach()

	start := cam.Position
	c.Handle(Event{Kind: PointerDown, X: 0, Y: 0})
	c.Handle(Event{Kind: PointerMove, X: 500, Y: 0})
	c.Handle(Event{Kind: Wheel, Delta: -1})
	c.Update()

	assert.Equal(t, start, cam.Position)
	assert.False(t, c.Dragging())
}
