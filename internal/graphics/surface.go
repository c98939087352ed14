package graphics

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/gpu"
)

// Surface is an offscreen render texture a Frame is drawn into. A Pane presents it on screen.
type Surface struct {
	dev      *Device
	target   rl.RenderTexture2D
	w, h     int
	released bool
}

// Size returns the render texture size in pixels.
func (s *Surface) Size() (w, h int) { return s.w, s.h }

// Texture returns the color attachment to present. Its rows are stored bottom-up.
func (s *Surface) Texture() rl.Texture2D { return s.target.Texture }

// Resize reallocates the render texture at w×h.
func (s *Surface) Resize(w, h int) error {
	if s.released {
		return gpu.ErrReleased
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("graphics: surface size %dx%d", w, h)
	}
	if w == s.w && h == s.h {
		return nil
	}
	rt := rl.LoadRenderTexture(int32(w), int32(h))
	if !rl.IsRenderTextureValid(rt) {
		return fmt.Errorf("graphics: render texture %dx%d failed", w, h)
	}
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	rl.UnloadRenderTexture(s.target)
	s.target, s.w, s.h = rt, w, h
	return nil
}

// Release unloads the render texture.
func (s *Surface) Release() error {
	if s.released {
		return gpu.ErrReleased
	}
	s.released = true
	rl.UnloadRenderTexture(s.target)
	s.dev.live--
	return nil
}

type drawCall struct {
	mesh  *mesh
	mtl   *material
	world rl.Matrix
	depth float32
}

// Draw renders f into the texture: opaque items first, then translucent ones back to front with
// depth writes off.
func (s *Surface) Draw(f gpu.Frame) error {
	if s.released {
		return gpu.ErrReleased
	}
	cam := rl.Camera3D{
		Position:   vec3(f.View.Position),
		Target:     vec3(f.View.Target),
		Up:         vec3(f.View.Up),
		Fovy:       f.View.Fovy,
		Projection: rl.CameraPerspective,
	}

	var opaque, translucent []drawCall
	for _, it := range f.Items {
		m, ok := it.Mesh.(*mesh)
		if !ok || m.released {
			return fmt.Errorf("graphics: draw %s: foreign or released mesh", it.Name)
		}
		mt, ok := it.Material.(*material)
		if !ok || mt.released {
			return fmt.Errorf("graphics: draw %s: foreign or released material", it.Name)
		}
		world := compose(m.offset, it.Chain)
		dc := drawCall{mesh: m, mtl: mt, world: world}
		if mt.translucent() {
			origin := rl.Vector3Transform(rl.Vector3{}, world)
			dc.depth = rl.Vector3DistanceSqr(origin, cam.Position)
			translucent = append(translucent, dc)
		} else {
			opaque = append(opaque, dc)
		}
	}
	sort.SliceStable(translucent, func(i, j int) bool { return translucent[i].depth > translucent[j].depth })

	rl.BeginTextureMode(s.target)
	defer rl.EndTextureMode()
	rl.ClearBackground(toRGBA(f.Background, 1))
	prevNear, prevFar := rl.GetCullDistanceNear(), rl.GetCullDistanceFar()
	rl.SetClipPlanes(f.View.ClipPlanes(prevNear, prevFar))
	defer rl.SetClipPlanes(prevNear, prevFar)
	// BeginMode3D takes the aspect ratio from the bound texture, which Resize keeps at the view size.
	rl.BeginMode3D(cam)
	defer rl.EndMode3D()

	if lit := s.dev.lit; lit != nil {
		lit.setFrame(f)
	}
	for _, dc := range opaque {
		s.drawOne(dc)
	}
	rl.DrawRenderBatchActive()
	rl.DisableDepthMask()
	for _, dc := range translucent {
		s.drawOne(dc)
	}
	rl.DrawRenderBatchActive()
	rl.EnableDepthMask()
	return nil
}

func (s *Surface) drawOne(dc drawCall) {
	if dc.mesh.lines != nil {
		c := toRGBA(dc.mtl.spec.Color, dc.mtl.spec.Opacity)
		for _, l := range dc.mesh.lines {
			rl.DrawLine3D(rl.Vector3Transform(l[0], dc.world), rl.Vector3Transform(l[1], dc.world), c)
		}
		return
	}
	if lit := s.dev.lit; lit != nil {
		lit.setMaterial(dc.mtl.spec)
	}
	if dc.mtl.spec.DoubleSided {
		rl.DrawRenderBatchActive()
		rl.DisableBackfaceCulling()
		rl.DrawMesh(dc.mesh.rl, dc.mtl.rl, dc.world)
		rl.EnableBackfaceCulling()
		return
	}
	rl.DrawMesh(dc.mesh.rl, dc.mtl.rl, dc.world)
}

// compose returns the world matrix for a mesh: its model offset, then each local transform from
// the mesh node up to the top-level node.
func compose(offset rl.Matrix, chain []gpu.Transform) rl.Matrix {
	m := offset
	for i := len(chain) - 1; i >= 0; i-- {
		m = rl.MatrixMultiply(m, local(chain[i]))
	}
	return m
}

// local is scale, then rotation, then translation.
func local(t gpu.Transform) rl.Matrix {
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]
	m := rl.MatrixScale(sx, sy, sz)
	if t.Rotation != ([3]float32{}) {
		m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(vec3(t.Rotation)))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position[0], t.Position[1], t.Position[2]))
}

func vec3(v [3]float32) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }
