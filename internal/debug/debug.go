package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/graphics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats reports the preview numbers shown by the overlay.
type Stats func() (liveHandles int, state string)

// Debug draws runtime overlays in the top-right corner. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowHandles  bool

	stats      Stats
	font       *graphics.Font
	frameCount uint32
	fpsText    string
	memText    string
	handleText string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden. stats feeds the handle/state line.
func New(stats Stats) *Debug {
	return &Debug{stats: stats}
}

// SetFont sets the font used to draw the overlays. Nil uses raylib's default font.
func (d *Debug) SetFont(font *graphics.Font) {
	d.font = font
}

// Draw renders the enabled overlays (FPS, heap, live GPU handles with the preview state). Text is
// only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.fpsText == "") ||
		(d.ShowMemAlloc && d.memText == "") ||
		(d.ShowHandles && d.handleText == "")

	if update {
		d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		runtime.ReadMemStats(&d.memStats)
		d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		if d.stats != nil {
			live, state := d.stats()
			d.handleText = fmt.Sprintf("GPU: %d (%s)", live, state)
		}
	}

	y := float32(padding)
	for _, line := range []struct {
		show bool
		text string
	}{
		{d.ShowFPS, d.fpsText},
		{d.ShowMemAlloc, d.memText},
		{d.ShowHandles, d.handleText},
	} {
		if !line.show || line.text == "" {
			continue
		}
		d.drawRight(line.text, y)
		y += lineHeight
	}
}

func (d *Debug) drawRight(text string, y float32) {
	font := d.font
	if font == nil {
		font = &graphics.Font{}
	}
	w, _ := font.Measure(text, fontSize)
	x := float32(rl.GetScreenWidth()) - w - padding
	font.Draw(text, x, y, fontSize, rl.DarkGreen)
}
