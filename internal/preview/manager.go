// Package preview mounts and unmounts the interactive room preview inside a host container and
// owns every resource of a mounted preview.
package preview

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"spatial-preview/internal/animation"
	"spatial-preview/internal/gpu"
	"spatial-preview/internal/orbit"
	"spatial-preview/internal/scene"
)

// ErrMounted is returned by Mount when the preview is already mounted.
var ErrMounted = errors.New("preview: already mounted")

// Host is the container the preview draws into.
type Host interface {
	// Size returns the container's current pixel size.
	Size() (w, h int)
	// Attach starts presenting s inside the container.
	Attach(s gpu.Surface)
	// Detach stops presenting s.
	Detach(s gpu.Surface)
	// OnResize registers fn for container size changes and returns a function that unregisters it.
	OnResize(fn func(w, h int)) (unsubscribe func())
}

// State is the lifecycle state of a Manager.
type State int

const (
	Unmounted State = iota
	Mounting
	Active
	Unmounting
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounting:
		return "mounting"
	case Active:
		return "active"
	case Unmounting:
		return "unmounting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Manager.
type Option func(*Manager)

// WithSeed seeds the point marker layout. Each mount draws fresh positions from the same stream.
func WithSeed(seed uint64) Option {
	return func(m *Manager) { m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithControls overrides the camera control settings.
func WithControls(cfg orbit.Config) Option {
	return func(m *Manager) { m.controlsCfg = cfg }
}

// Manager owns one preview: its scene, controls, animation and resize subscription.
// All methods must be called from the render thread.
type Manager struct {
	dev         gpu.Device
	sched       animation.Scheduler
	log         *zap.Logger
	rng         *rand.Rand
	controlsCfg orbit.Config

	state       State
	host        Host
	ctx         *scene.Context
	controls    *orbit.Controls
	driver      *animation.Driver
	unsubscribe func()
	mounts      int
}

// New returns an unmounted Manager allocating through dev and scheduling frames on sched.
func New(dev gpu.Device, sched animation.Scheduler, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		dev:         dev,
		sched:       sched,
		log:         log,
		controlsCfg: orbit.DefaultConfig(),
	}
	for _, o := range opts {
		o(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// State returns the lifecycle state.
func (m *Manager) State() State { return m.state }

// Context returns the mounted scene context, or nil when not Active.
func (m *Manager) Context() *scene.Context {
	if m.state != Active {
		return nil
	}
	return m.ctx
}

// Driver returns the running animation driver, or nil when not Active.
func (m *Manager) Driver() *animation.Driver {
	if m.state != Active {
		return nil
	}
	return m.driver
}

// Mount builds the preview inside host and starts animating it.
//
// A nil host, a host without area, or a device without a graphics context leave the manager
// Unmounted and return nil: the preview is simply unavailable. Any other build failure is returned
// with nothing attached or allocated.
func (m *Manager) Mount(host Host) error {
	if m.state != Unmounted {
		return ErrMounted
	}
	if host == nil {
		m.log.Debug("preview mount skipped: no host")
		return nil
	}
	w, h := host.Size()
	if w <= 0 || h <= 0 {
		m.log.Debug("preview mount skipped: empty host", zap.Int("width", w), zap.Int("height", h))
		return nil
	}

	m.state = Mounting
	ctx, err := scene.Build(m.dev, w, h, m.rng)
	if err != nil {
		m.state = Unmounted
		if errors.Is(err, gpu.ErrUnavailable) {
			m.log.Info("preview unavailable", zap.Error(err))
			return nil
		}
		return fmt.Errorf("preview: mount: %w", err)
	}

	m.host = host
	m.ctx = ctx
	host.Attach(ctx.Surface)

	m.controls = orbit.New(ctx.Camera, m.controlsCfg)
	m.controls.SetViewport(w, h)
	m.unsubscribe = host.OnResize(m.resize)

	m.driver = animation.Start(m.sched, ctx, m.controls, animation.OnError(func(err error) {
		m.log.Warn("preview frame failed", zap.Error(err))
	}))
	m.state = Active
	m.mounts++
	m.log.Info("preview mounted",
		zap.Int("width", w), zap.Int("height", h),
		zap.Int("resources", ctx.Resources()), zap.Int("mount", m.mounts))
	return nil
}

// Unmount tears the preview down. The animation is cancelled before anything is released, and the
// surface, meshes and materials are all released. Unmount is a no-op unless the preview is Active.
func (m *Manager) Unmount() error {
	if m.state != Active {
		return nil
	}
	m.state = Unmounting

	m.driver.Cancel()
	m.unsubscribe()
	m.controls.Detach()

	surface := m.ctx.Surface
	err := m.ctx.ReleaseSurface()
	m.host.Detach(surface)
	err = multierr.Append(err, m.ctx.ReleaseResources())

	frames := m.driver.Frames()
	m.ctx, m.controls, m.driver, m.host, m.unsubscribe = nil, nil, nil, nil, nil
	m.state = Unmounted
	if err != nil {
		m.log.Error("preview unmount released with errors", zap.Error(err))
		return fmt.Errorf("preview: unmount: %w", err)
	}
	m.log.Info("preview unmounted", zap.Int("frames", frames))
	return nil
}

// HandleInput forwards an input event to the camera controls while Active.
func (m *Manager) HandleInput(ev orbit.Event) {
	if m.state != Active {
		return
	}
	m.controls.Handle(ev)
}

func (m *Manager) resize(w, h int) {
	if m.state != Active || w <= 0 || h <= 0 {
		return
	}
	if err := m.ctx.Surface.Resize(w, h); err != nil {
		m.log.Warn("preview resize failed", zap.Int("width", w), zap.Int("height", h), zap.Error(err))
		return
	}
	m.ctx.Camera.SetViewport(w, h)
	m.controls.SetViewport(w, h)
}
