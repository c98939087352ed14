// Package animation runs the preview's per-frame update: the scanning sweep, the floating point
// markers, the camera controls and the render, once per display refresh until cancelled.
package animation

import (
	"github.com/chewxy/math32"

	"spatial-preview/internal/frame"
	"spatial-preview/internal/scene"
)

const (
	// TimeStep is how far the animation clock advances per frame.
	TimeStep = 0.01
	// PointDrift scales the per-frame vertical nudge of each point marker.
	PointDrift = 0.005
)

// ScanHeight is the sweep plane's height at time t: it oscillates between 0 and 3.
func ScanHeight(t float32) float32 {
	return 1.5 + 1.5*math32.Sin(t)
}

// Scheduler queues a callback for the next display refresh.
type Scheduler interface {
	Request(fn func()) frame.ID
	Cancel(id frame.ID)
}

// Updater is advanced once per frame before rendering (the camera controls).
type Updater interface {
	Update()
}

// State is the driver's scheduling state.
type State int

const (
	Scheduled State = iota
	Cancelled
)

func (s State) String() string {
	if s == Scheduled {
		return "scheduled"
	}
	return "cancelled"
}

// Option configures a Driver.
type Option func(*Driver)

// OnError sets a hook for render errors. The driver keeps running after an error.
func OnError(fn func(error)) Option {
	return func(d *Driver) { d.onError = fn }
}

// Driver advances and renders one scene.Context per frame.
type Driver struct {
	sched    Scheduler
	ctx      *scene.Context
	controls Updater
	onError  func(error)

	state  State
	id     frame.ID
	time   float32
	frames int
}

// Start schedules the first frame and returns the running driver.
func Start(sched Scheduler, ctx *scene.Context, controls Updater, opts ...Option) *Driver {
	d := &Driver{sched: sched, ctx: ctx, controls: controls}
	for _, o := range opts {
		o(d)
	}
	d.id = sched.Request(d.tick)
	return d
}

// Cancel stops all future frames. It is idempotent and cannot be undone; a frame already running
// finishes but does not reschedule.
func (d *Driver) Cancel() {
	if d.state == Cancelled {
		return
	}
	d.state = Cancelled
	d.sched.Cancel(d.id)
}

// State returns the scheduling state.
func (d *Driver) State() State { return d.state }

// Time returns the animation clock.
func (d *Driver) Time() float32 { return d.time }

// Frames returns how many frames have been rendered.
func (d *Driver) Frames() int { return d.frames }

func (d *Driver) tick() {
	if d.state == Cancelled {
		return
	}
	d.time += TimeStep

	y := ScanHeight(d.time)
	d.ctx.SweepGrid.Transform.Position[1] = y
	d.ctx.SweepPlane.Transform.Position[1] = y

	for i, p := range d.ctx.Points.Children() {
		p.Transform.Position[1] += math32.Sin(d.time+float32(i)) * PointDrift
	}

	if d.controls != nil {
		d.controls.Update()
	}

	if err := d.ctx.Surface.Draw(d.ctx.Scene.Frame(d.ctx.Camera)); err != nil && d.onError != nil {
		d.onError(err)
	}
	d.frames++

	if d.state == Scheduled {
		d.id = d.sched.Request(d.tick)
	}
}
