// Package overlay animates the text blocks drawn around the 3D pane: each block slides up and fades
// in when the section appears, one after another.
package overlay

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Entrance describes the staggered slide-and-fade of the blocks.
type Entrance struct {
	Distance float32 // pixels each block starts below its resting place
	Duration float32 // seconds per block
	Stagger  float32 // seconds between consecutive blocks
	Ease     ease.TweenFunc
}

// DefaultEntrance slides each block up 50px while fading in over 0.8s, 0.2s apart.
func DefaultEntrance() Entrance {
	return Entrance{Distance: 50, Duration: 0.8, Stagger: 0.2, Ease: ease.OutQuad}
}

// Block is one animated text block. OffsetY and Alpha are the values to draw with.
type Block struct {
	Text    string
	OffsetY float32
	Alpha   float32

	delay float32
	y     *gween.Tween
	alpha *gween.Tween
	done  bool
}

// Done reports whether the block reached its resting place.
func (b *Block) Done() bool { return b.done }

func (b *Block) update(dt float32) {
	if b.done {
		return
	}
	if b.delay > 0 {
		b.delay -= dt
		if b.delay > 0 {
			return
		}
		dt = -b.delay
		b.delay = 0
	}
	y, yDone := b.y.Update(dt)
	a, aDone := b.alpha.Update(dt)
	b.OffsetY, b.Alpha = y, a
	b.done = yDone && aDone
}

// Overlay is a list of blocks sharing one entrance.
type Overlay struct {
	cfg    Entrance
	blocks []*Block
}

// New returns an overlay whose entrance starts on the first Update.
func New(cfg Entrance, texts ...string) *Overlay {
	o := &Overlay{cfg: cfg}
	o.SetTexts(texts...)
	return o
}

// Blocks returns the blocks in display order.
func (o *Overlay) Blocks() []*Block { return o.blocks }

// SetTexts replaces the block texts. When the block count is unchanged the running animation is
// kept (a language switch does not replay the entrance); otherwise the entrance restarts.
func (o *Overlay) SetTexts(texts ...string) {
	if len(texts) == len(o.blocks) {
		for i, t := range texts {
			o.blocks[i].Text = t
		}
		return
	}
	o.blocks = make([]*Block, len(texts))
	for i, t := range texts {
		o.blocks[i] = &Block{Text: t}
	}
	o.Restart()
}

// Restart puts every block back at its starting offset, fully transparent.
func (o *Overlay) Restart() {
	for i, b := range o.blocks {
		b.delay = float32(i) * o.cfg.Stagger
		b.y = gween.New(o.cfg.Distance, 0, o.cfg.Duration, o.cfg.Ease)
		b.alpha = gween.New(0, 1, o.cfg.Duration, o.cfg.Ease)
		b.OffsetY = o.cfg.Distance
		b.Alpha = 0
		b.done = false
	}
}

// Update advances the entrance by dt seconds and reports whether every block is done.
func (o *Overlay) Update(dt float32) bool {
	done := true
	for _, b := range o.blocks {
		b.update(dt)
		if !b.done {
			done = false
		}
	}
	return done
}
