// Package orbit turns pointer and wheel input into camera orbit and zoom around a fixed target,
// with damping, distance and polar-angle limits and idle auto-rotation.
package orbit

import (
	"github.com/chewxy/math32"

	"spatial-preview/internal/scene"
)

// eps keeps the polar angle off the poles so the spherical conversion stays well defined.
const eps = 1e-6

// Config holds the control limits and speeds.
type Config struct {
	EnableDamping   bool
	DampingFactor   float32
	AutoRotate      bool
	AutoRotateSpeed float32
	RotateSpeed     float32
	ZoomSpeed       float32
	MinDistance     float32
	MaxDistance     float32
	MinPolarAngle   float32
	MaxPolarAngle   float32
}

// DefaultConfig returns the preview's control settings: damping 0.05, auto-rotate 0.5, distance
// within [5, 20] and the camera kept 0.05 rad above the horizon.
func DefaultConfig() Config {
	return Config{
		EnableDamping:   true,
		DampingFactor:   0.05,
		AutoRotate:      true,
		AutoRotateSpeed: 0.5,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		MinDistance:     5,
		MaxDistance:     20,
		MinPolarAngle:   0,
		MaxPolarAngle:   math32.Pi/2 - 0.05,
	}
}

// EventKind is the kind of an input Event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	Pinch
)

// Button is the pointer button of a PointerDown event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Event is one input event in surface pixel coordinates. Wheel uses Delta (negative zooms in);
// Pinch uses Delta as the ratio of the new finger distance to the previous one.
type Event struct {
	Kind   EventKind
	Button Button
	X, Y   float32
	Delta  float32
}

// Controls orbits a camera around its Target. It holds a reference to the camera but does not own it.
type Controls struct {
	cfg Config
	cam *scene.Camera

	dragging   bool
	lastX      float32
	lastY      float32
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	viewportH  float32
	detached   bool
}

// New attaches controls to cam.
func New(cam *scene.Camera, cfg Config) *Controls {
	return &Controls{cfg: cfg, cam: cam, scale: 1, viewportH: 1}
}

// SetViewport sets the input surface size; drag distances are measured against its height.
func (c *Controls) SetViewport(w, h int) {
	if h > 0 {
		c.viewportH = float32(h)
	}
}

// Detach stops the controls from reacting to input and updates. It cannot be undone.
func (c *Controls) Detach() {
	c.detached = true
	c.dragging = false
}

// Dragging reports whether a primary-button drag is in progress.
func (c *Controls) Dragging() bool { return c.dragging }

// Handle applies one input event. Events override each other in arrival order.
func (c *Controls) Handle(ev Event) {
	if c.detached {
		return
	}
	switch ev.Kind {
	case PointerDown:
		// Panning is disabled; secondary drags do nothing.
		if ev.Button != ButtonPrimary {
			return
		}
		c.dragging = true
		c.lastX, c.lastY = ev.X, ev.Y
	case PointerMove:
		if !c.dragging {
			return
		}
		dx := (ev.X - c.lastX) * c.cfg.RotateSpeed
		dy := (ev.Y - c.lastY) * c.cfg.RotateSpeed
		c.lastX, c.lastY = ev.X, ev.Y
		c.rotateLeft(2 * math32.Pi * dx / c.viewportH)
		c.rotateUp(2 * math32.Pi * dy / c.viewportH)
	case PointerUp:
		c.dragging = false
	case Wheel:
		switch {
		case ev.Delta < 0:
			c.scale *= c.zoomScale()
		case ev.Delta > 0:
			c.scale /= c.zoomScale()
		}
	case Pinch:
		if ev.Delta > 0 {
			c.scale /= ev.Delta
		}
	}
}

func (c *Controls) zoomScale() float32 {
	return math32.Pow(0.95, c.cfg.ZoomSpeed)
}

func (c *Controls) rotateLeft(angle float32) { c.deltaTheta -= angle }
func (c *Controls) rotateUp(angle float32)   { c.deltaPhi -= angle }

// autoRotationAngle is the per-update azimuth step at 60 updates per second.
func (c *Controls) autoRotationAngle() float32 {
	return 2 * math32.Pi / 60 / 60 * c.cfg.AutoRotateSpeed
}

// Update moves the camera one step toward the pending rotation and zoom. Call once per frame.
func (c *Controls) Update() {
	if c.detached {
		return
	}
	t := c.cam.Target
	ox := c.cam.Position[0] - t[0]
	oy := c.cam.Position[1] - t[1]
	oz := c.cam.Position[2] - t[2]

	radius := math32.Sqrt(ox*ox + oy*oy + oz*oz)
	var theta, phi float32
	if radius > 0 {
		theta = math32.Atan2(ox, oz)
		phi = math32.Acos(clamp(oy/radius, -1, 1))
	}

	if c.cfg.AutoRotate && !c.dragging {
		c.rotateLeft(c.autoRotationAngle())
	}

	if c.cfg.EnableDamping {
		theta += c.deltaTheta * c.cfg.DampingFactor
		phi += c.deltaPhi * c.cfg.DampingFactor
	} else {
		theta += c.deltaTheta
		phi += c.deltaPhi
	}

	phi = clamp(phi, c.cfg.MinPolarAngle, c.cfg.MaxPolarAngle)
	phi = clamp(phi, eps, math32.Pi-eps)

	radius = clamp(radius*c.scale, c.cfg.MinDistance, c.cfg.MaxDistance)

	sinPhi := math32.Sin(phi)
	c.cam.Position = [3]float32{
		t[0] + radius*sinPhi*math32.Sin(theta),
		t[1] + radius*math32.Cos(phi),
		t[2] + radius*sinPhi*math32.Cos(theta),
	}

	if c.cfg.EnableDamping {
		c.deltaTheta *= 1 - c.cfg.DampingFactor
		c.deltaPhi *= 1 - c.cfg.DampingFactor
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
	}
	c.scale = 1
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
