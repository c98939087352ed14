package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func linear() Entrance {
	return Entrance{Distance: 50, Duration: 1, Stagger: 0.5, Ease: ease.Linear}
}

func TestEntranceStartsHidden(t *testing.T) {
	o := New(DefaultEntrance(), "a", "b")
	for _, b := range o.Blocks() {
		assert.Equal(t, float32(50), b.OffsetY)
		assert.Zero(t, b.Alpha)
		assert.False(t, b.Done())
	}
}

func TestEntranceStaggers(t *testing.T) {
	o := New(linear(), "a", "b")
	blocks := o.Blocks()

	o.Update(0.5)
	assert.InDelta(t, 25, blocks[0].OffsetY, 0.5)
	assert.InDelta(t, 0.5, blocks[0].Alpha, 0.01)
	assert.Equal(t, float32(50), blocks[1].OffsetY, "second block waits for its stagger")

	o.Update(0.25)
	assert.InDelta(t, 12.5, blocks[0].OffsetY, 0.5)
	assert.InDelta(t, 0.25, blocks[1].Alpha, 0.01)
}

func TestEntranceFinishes(t *testing.T) {
	o := New(DefaultEntrance(), "a", "b", "c")
	done := false
	for i := 0; i < 120 && !done; i++ {
		done = o.Update(1.0 / 60)
	}
	require.True(t, done)
	for _, b := range o.Blocks() {
		assert.InDelta(t, 0, b.OffsetY, 1e-3)
		assert.InDelta(t, 1, b.Alpha, 1e-3)
	}
}

func TestSetTextsKeepsProgress(t *testing.T) {
	o := New(linear(), "hello", "world")
	o.Update(0.5)
	before := o.Blocks()[0].OffsetY

	o.SetTexts("你好", "世界")
	assert.Equal(t, "你好", o.Blocks()[0].Text)
	assert.Equal(t, before, o.Blocks()[0].OffsetY)

	o.SetTexts("one")
	require.Len(t, o.Blocks(), 1)
	assert.Equal(t, float32(50), o.Blocks()[0].OffsetY)
}
