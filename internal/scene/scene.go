// Package scene builds and holds the preview's 3D room: the node tree, its camera and the GPU
// resources both were built from.
package scene

import "spatial-preview/internal/gpu"

// Camera is a perspective camera looking at Target. Fovy is the vertical field of view in degrees.
type Camera struct {
	Position [3]float32
	Target   [3]float32
	Up       [3]float32
	Fovy     float32
	Aspect   float32
	Near     float32
	Far      float32
}

// NewCamera returns a camera at position looking at the origin with +Y up.
func NewCamera(fovy, aspect, near, far float32, position [3]float32) *Camera {
	return &Camera{
		Position: position,
		Up:       [3]float32{0, 1, 0},
		Fovy:     fovy,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// SetViewport updates the aspect ratio to match a w×h drawable. Non-positive sizes are ignored.
func (c *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float32(w) / float32(h)
}

// View returns the camera state as the renderer consumes it.
func (c *Camera) View() gpu.View {
	return gpu.View{
		Position: c.Position,
		Target:   c.Target,
		Up:       c.Up,
		Fovy:     c.Fovy,
		Aspect:   c.Aspect,
		Near:     c.Near,
		Far:      c.Far,
	}
}

// Scene is the root of the node tree plus the environment it is drawn in.
type Scene struct {
	Root       *Node
	Background gpu.Color
	Fog        *gpu.Fog
}

// New returns a scene with an empty root group.
func New(background gpu.Color) *Scene {
	return &Scene{Root: NewGroup("scene"), Background: background}
}

// Frame flattens the visible tree into a draw list for cam.
func (s *Scene) Frame(cam *Camera) gpu.Frame {
	f := gpu.Frame{
		View:       cam.View(),
		Background: s.Background,
		Fog:        s.Fog,
	}
	var chain []gpu.Transform
	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		chain = append(chain, n.Transform)
		switch n.Kind {
		case KindMesh:
			item := gpu.DrawItem{
				Name:     n.Name,
				Mesh:     n.Mesh,
				Material: n.Material,
				Chain:    make([]gpu.Transform, len(chain)),
			}
			copy(item.Chain, chain)
			f.Items = append(f.Items, item)
		case KindLight:
			f.Lights = append(f.Lights, n.Light)
		}
		for _, c := range n.children {
			visit(c)
		}
		chain = chain[:len(chain)-1]
	}
	visit(s.Root)
	return f
}
