package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/gpu"
	"spatial-preview/internal/input"
	"spatial-preview/internal/layout"
	"spatial-preview/internal/orbit"
)

type observer struct {
	id int
	fn func(w, h int)
}

// Pane is the screen region a preview surface is presented in. It reports its size, notifies
// resize observers when the layout changes it, and turns mouse and touch input over it into
// control events.
type Pane struct {
	rect       layout.Rect
	background gpu.Color
	surface    *Surface
	observers  []observer
	nextID     int
	tracker    input.Tracker
	hovered    bool
}

// NewPane returns an empty pane filled with bg while no surface is attached.
func NewPane(bg gpu.Color) *Pane {
	return &Pane{background: bg}
}

// Rect returns the pane's window rectangle.
func (p *Pane) Rect() layout.Rect { return p.rect }

// SetRect moves the pane. Resize observers are called when the size changes to a non-empty one.
func (p *Pane) SetRect(r layout.Rect) {
	old := p.rect
	p.rect = r
	if r.Empty() || (r.W == old.W && r.H == old.H) {
		return
	}
	// Observers may unsubscribe while being notified.
	obs := append([]observer(nil), p.observers...)
	for _, o := range obs {
		o.fn(r.W, r.H)
	}
}

// Size implements preview.Host.
func (p *Pane) Size() (w, h int) { return p.rect.W, p.rect.H }

// Attach implements preview.Host. Surfaces from other devices are ignored.
func (p *Pane) Attach(s gpu.Surface) {
	if rs, ok := s.(*Surface); ok {
		p.surface = rs
	}
}

// Detach implements preview.Host.
func (p *Pane) Detach(s gpu.Surface) {
	if rs, ok := s.(*Surface); ok && rs == p.surface {
		p.surface = nil
	}
}

// Attached reports whether a surface is being presented.
func (p *Pane) Attached() bool { return p.surface != nil }

// OnResize implements preview.Host.
func (p *Pane) OnResize(fn func(w, h int)) (unsubscribe func()) {
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range p.observers {
			if o.id == id {
				p.observers = append(p.observers[:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Poll reads this frame's mouse and touch state and returns the control events for the pane.
// When blocked (e.g. the console has focus) the buttons read as released.
func (p *Pane) Poll(blocked bool) []orbit.Event {
	mouse := rl.GetMousePosition()
	s := input.Sample{X: mouse.X, Y: mouse.Y}
	if !blocked {
		s.Primary = rl.IsMouseButtonDown(rl.MouseButtonLeft)
		s.Secondary = rl.IsMouseButtonDown(rl.MouseButtonRight)
		s.Wheel = rl.GetMouseWheelMove()
		if n := rl.GetTouchPointCount(); n >= 2 {
			a, b := rl.GetTouchPosition(0), rl.GetTouchPosition(1)
			s.Touches = [][2]float32{{a.X, a.Y}, {b.X, b.Y}}
		}
	}

	hovered := p.surface != nil && (p.rect.Contains(mouse.X, mouse.Y) || p.tracker.Captured())
	if hovered != p.hovered {
		p.hovered = hovered
		if hovered {
			rl.SetMouseCursor(rl.MouseCursorResizeAll)
		} else {
			rl.SetMouseCursor(rl.MouseCursorDefault)
		}
	}
	return p.tracker.Feed(s, p.rect)
}

// Draw presents the attached surface stretched over the pane, or the background when none is
// attached. Render textures are stored bottom-up, so the source rectangle is flipped.
func (p *Pane) Draw() {
	r := p.rect
	if r.Empty() {
		return
	}
	dst := rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
	if p.surface == nil {
		rl.DrawRectangleRec(dst, toRGBA(p.background, 1))
		return
	}
	tex := p.surface.Texture()
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}
