// Package layout splits the window between the text panel and the 3D pane.
package layout

// Wide is the window width from which the panel and the pane sit side by side.
const Wide = 1024

// minPaneHeight is the pane height floor when stacked.
const minPaneHeight = 400

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= float32(r.X) && x < float32(r.X+r.W) && y >= float32(r.Y) && y < float32(r.Y+r.H)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Split returns the panel and pane rectangles for a w×h window. Wide windows put the panel on the
// left and give the pane 1.5 parts of the width to the panel's 1. Narrow windows stack the panel
// on top of a pane max(h/2, 400) tall (never taller than the window).
func Split(w, h int) (panel, pane Rect) {
	if w <= 0 || h <= 0 {
		return Rect{}, Rect{}
	}
	if w >= Wide {
		pw := w * 2 / 5
		return Rect{0, 0, pw, h}, Rect{pw, 0, w - pw, h}
	}
	ph := max(h/2, min(minPaneHeight, h))
	return Rect{0, 0, w, h - ph}, Rect{0, h - ph, w, ph}
}
