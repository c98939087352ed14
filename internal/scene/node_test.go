package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-preview/internal/gpu"
)

func TestAddChildReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")

	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
}

func TestAddChildPanics(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	a.AddChild(b)

	assert.Panics(t, func() { a.AddChild(nil) })
	assert.Panics(t, func() { b.AddChild(a) })
	assert.Panics(t, func() { a.AddChild(a) })
}

func TestRemoveChild(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.AddChild(b)
	a.AddChild(c)

	a.RemoveChild(b)
	assert.Nil(t, b.Parent())
	assert.Equal(t, []*Node{c}, a.Children())
	assert.Panics(t, func() { a.RemoveChild(b) })
}

func TestFrameChainsAndSkipsHidden(t *testing.T) {
	s := New(gpu.Hex(0xffffff))
	group := NewGroup("group")
	group.SetPosition(1, 0, 0)
	child := NewMesh("child", nil, nil)
	child.SetPosition(0, 2, 0)
	hidden := NewMesh("hidden", nil, nil)
	hidden.Visible = false
	group.AddChild(child)
	group.AddChild(hidden)
	s.Root.AddChild(group)
	s.Root.AddChild(NewLight("ambient", gpu.Light{Kind: gpu.LightAmbient, Intensity: 0.5}))

	cam := NewCamera(35, 2, 0.1, 100, [3]float32{10, 8, 10})
	f := s.Frame(cam)

	require.Len(t, f.Items, 1)
	item := f.Items[0]
	assert.Equal(t, "child", item.Name)
	require.Len(t, item.Chain, 3)
	assert.Equal(t, [3]float32{1, 0, 0}, item.Chain[1].Position)
	assert.Equal(t, [3]float32{0, 2, 0}, item.Chain[2].Position)
	require.Len(t, f.Lights, 1)
	assert.Equal(t, cam.Position, f.View.Position)
	assert.Equal(t, float32(2), f.View.Aspect)
}

func TestCameraSetViewportIgnoresEmpty(t *testing.T) {
	cam := NewCamera(35, 1, 0.1, 100, [3]float32{10, 8, 10})
	cam.SetViewport(800, 400)
	assert.Equal(t, float32(2), cam.Aspect)
	cam.SetViewport(0, 400)
	assert.Equal(t, float32(2), cam.Aspect)
}
