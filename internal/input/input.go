// Package input turns polled pointer state into camera control events for the preview pane.
package input

import (
	"github.com/chewxy/math32"

	"spatial-preview/internal/layout"
	"spatial-preview/internal/orbit"
)

// Sample is the pointer state polled once per frame, in window pixels.
type Sample struct {
	X, Y      float32
	Primary   bool // primary button held
	Secondary bool // secondary button held
	Wheel     float32
	Touches   [][2]float32
}

// Tracker keeps the pointer state between samples. A drag that starts inside the pane keeps
// reporting moves after leaving it until the button is released.
type Tracker struct {
	primary   bool
	secondary bool
	captured  bool
	lastX     float32
	lastY     float32
	pinchDist float32
}

// Feed compares s with the previous sample and returns the events for a pane occupying r.
// Event coordinates are relative to the pane's top-left corner.
func (t *Tracker) Feed(s Sample, r layout.Rect) []orbit.Event {
	var out []orbit.Event
	x, y := s.X-float32(r.X), s.Y-float32(r.Y)
	inside := r.Contains(s.X, s.Y)

	if len(s.Touches) >= 2 {
		d := dist(s.Touches[0], s.Touches[1])
		if t.pinchDist > 0 && d > 0 {
			out = append(out, orbit.Event{Kind: orbit.Pinch, Delta: d / t.pinchDist})
		}
		if t.pinchDist > 0 || r.Contains(mid(s.Touches[0], s.Touches[1])) {
			t.pinchDist = d
		}
		if t.captured {
			t.captured = false
			out = append(out, orbit.Event{Kind: orbit.PointerUp, X: x, Y: y})
		}
		t.primary, t.secondary = s.Primary, s.Secondary
		return out
	}
	t.pinchDist = 0

	switch {
	case s.Primary && !t.primary && inside:
		t.captured = true
		out = append(out, orbit.Event{Kind: orbit.PointerDown, Button: orbit.ButtonPrimary, X: x, Y: y})
	case s.Secondary && !t.secondary && inside:
		out = append(out, orbit.Event{Kind: orbit.PointerDown, Button: orbit.ButtonSecondary, X: x, Y: y})
	case t.captured && (x != t.lastX || y != t.lastY):
		out = append(out, orbit.Event{Kind: orbit.PointerMove, X: x, Y: y})
	}
	if t.captured && !s.Primary {
		t.captured = false
		out = append(out, orbit.Event{Kind: orbit.PointerUp, X: x, Y: y})
	}
	// Scrolling up reports a positive wheel move; events use negative deltas for zooming in.
	if s.Wheel != 0 && inside {
		out = append(out, orbit.Event{Kind: orbit.Wheel, X: x, Y: y, Delta: -s.Wheel})
	}

	t.primary, t.secondary = s.Primary, s.Secondary
	t.lastX, t.lastY = x, y
	return out
}

// Captured reports whether a drag started in the pane is in progress.
func (t *Tracker) Captured() bool { return t.captured }

func dist(a, b [2]float32) float32 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math32.Sqrt(dx*dx + dy*dy)
}

func mid(a, b [2]float32) (float32, float32) {
	return (a[0] + b[0]) / 2, (a[1] + b[1]) / 2
}
