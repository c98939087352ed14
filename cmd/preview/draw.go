package main

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/app"
	"spatial-preview/internal/graphics"
	"spatial-preview/internal/layout"
)

// checkMark prefixes every feature row.
const checkMark = "✓"

var (
	colorPrimary   = rl.GetColor(0x1A1A1AFF)
	colorSecondary = rl.GetColor(0x5F6368FF)
	colorAccent    = rl.GetColor(0x2D68FFFF)
	colorPanel     = rl.GetColor(0xF7F8FAFF)
	colorPill      = rl.White
	colorPillText  = rl.GetColor(0x4B5563FF)
)

// drawPanel draws the side panel copy, each block at its entrance offset and opacity.
func drawPanel(font *graphics.Font, r layout.Rect, a *app.App) {
	if r.Empty() || font == nil {
		return
	}
	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), colorPanel)

	pad := float32(24)
	switch {
	case r.W >= 640:
		pad = 64
	case r.W >= 480:
		pad = 48
	}
	headingSize, bodySize, titleSize := float32(40), float32(18), float32(20)
	if r.W < 480 {
		headingSize, bodySize, titleSize = 28, 16, 18
	}
	x := float32(r.X) + pad
	width := float32(r.W) - 2*pad
	blocks := a.Overlay().Blocks()
	c := a.Copy()

	// Lay the blocks out first to center the column vertically.
	heading := font.Wrap(c.Heading, headingSize, width)
	desc := font.Wrap(c.Description, bodySize, width)
	height := float32(len(heading))*headingSize*1.2 + 32 + float32(len(desc))*bodySize*1.5 + 40
	for range c.Features {
		height += titleSize*1.3 + bodySize*1.4 + 24
	}
	height += 48
	y := float32(r.Y) + max((float32(r.H)-height)/2, pad)

	b := blocks[app.BlockHeading]
	for i, line := range heading {
		font.Draw(line, x, y+b.OffsetY+float32(i)*headingSize*1.2, headingSize, rl.Fade(colorPrimary, b.Alpha))
	}
	y += float32(len(heading))*headingSize*1.2 + 32

	b = blocks[app.BlockDescription]
	for i, line := range desc {
		font.Draw(line, x, y+b.OffsetY+float32(i)*bodySize*1.5, bodySize, rl.Fade(colorSecondary, b.Alpha))
	}
	y += float32(len(desc))*bodySize*1.5 + 40

	for i, f := range c.Features {
		if app.BlockFeature0+i > app.BlockFeature2 {
			break
		}
		b = blocks[app.BlockFeature0+i]
		font.Draw(checkMark, x, y+b.OffsetY, titleSize, rl.Fade(colorAccent, b.Alpha))
		font.Draw(f.Title, x+32, y+b.OffsetY, titleSize, rl.Fade(colorPrimary, b.Alpha))
		font.Draw(f.Desc, x+32, y+b.OffsetY+titleSize*1.3, bodySize*0.85, rl.Fade(colorSecondary, b.Alpha))
		y += titleSize*1.3 + bodySize*1.4 + 24
	}

	b = blocks[app.BlockButton]
	tw, th := font.Measure(c.Button, bodySize)
	btn := rl.NewRectangle(x, y+8+b.OffsetY, tw+64, th+24)
	rl.DrawRectangleRounded(btn, 1, 16, rl.Fade(colorAccent, b.Alpha))
	font.Draw(c.Button, btn.X+32, btn.Y+12, bodySize, rl.Fade(rl.White, b.Alpha))
}

// drawPaneOverlay draws the concept caption (bottom-left) and the control hint (bottom-right)
// over the pane.
func drawPaneOverlay(font *graphics.Font, r layout.Rect, a *app.App) {
	if r.Empty() || font == nil {
		return
	}
	const margin = 32
	blocks := a.Overlay().Blocks()
	c := a.Copy()
	bottom := float32(r.Y + r.H - margin)

	b := blocks[app.BlockCaption]
	titleSize := float32(24)
	if r.W < 640 {
		titleSize = 20
	}
	font.Draw(c.ConceptTitle, float32(r.X+margin), bottom-titleSize-22+b.OffsetY, titleSize, rl.Fade(colorPrimary, b.Alpha))
	font.Draw(c.Subtitle, float32(r.X+margin), bottom-16+b.OffsetY, 14, rl.Fade(colorSecondary, 0.6*b.Alpha))

	b = blocks[app.BlockHint]
	hint := strings.TrimSpace(c.Hint)
	size := float32(14)
	tw, th := font.Measure(hint, size)
	pill := rl.NewRectangle(float32(r.X+r.W-margin)-tw-32, bottom-th-16+b.OffsetY, tw+32, th+16)
	rl.DrawRectangleRounded(pill, 1, 16, rl.Fade(colorPill, 0.8*b.Alpha))
	font.Draw(hint, pill.X+16, pill.Y+8, size, rl.Fade(colorPillText, b.Alpha))
}
