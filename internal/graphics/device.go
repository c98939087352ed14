package graphics

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/gpu"
)

// Default mesh resolutions when a Geometry leaves Segments at zero.
const (
	defaultRings    = 16
	defaultSlices   = 16
	defaultGridDivs = 10
)

// Device allocates raylib meshes, materials and render textures. It must be used on the thread
// that opened the window. Materials share one lit shader, loaded with the first material and
// unloaded with the last.
type Device struct {
	lit       *litShader
	materials int
	live      int
}

// NewDevice returns a Device. Nothing is allocated until the first New* call.
func NewDevice() *Device {
	return &Device{}
}

// Live returns the number of meshes, materials and surfaces not yet released.
func (d *Device) Live() int { return d.live }

func (d *Device) ready() error {
	if !rl.IsWindowReady() {
		return gpu.ErrUnavailable
	}
	return nil
}

// NewMesh uploads g. Grids are drawn as lines and hold no GPU buffers.
func (d *Device) NewMesh(g gpu.Geometry) (gpu.Mesh, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	m := &mesh{dev: d, geom: g, offset: rl.MatrixIdentity(), uploaded: g.Shape != gpu.ShapeGrid}
	switch g.Shape {
	case gpu.ShapePlane:
		m.rl = rl.GenMeshPlane(g.Size[0], g.Size[2], 1, 1)
	case gpu.ShapeBox:
		m.rl = rl.GenMeshCube(g.Size[0], g.Size[1], g.Size[2])
	case gpu.ShapeCylinder:
		m.rl = rl.GenMeshCylinder(g.Radius, g.Height, segments(g.Segments, defaultSlices))
		// Raylib cylinders have their base at Y=0; shift so the center is at the origin.
		m.offset = rl.MatrixTranslate(0, -g.Height/2, 0)
	case gpu.ShapeSphere:
		n := segments(g.Segments, defaultSlices)
		m.rl = rl.GenMeshSphere(g.Radius, max(n/2, defaultRings/2), n)
	case gpu.ShapeDisc:
		m.rl = rl.GenMeshPoly(segments(g.Segments, defaultSlices), g.Radius)
	case gpu.ShapeGrid:
		m.lines = gridLines(g.Size[0], segments(g.Segments, defaultGridDivs))
	default:
		return nil, fmt.Errorf("graphics: unsupported shape %s", g.Shape)
	}
	d.live++
	return m, nil
}

// NewMaterial creates a material drawn with the shared lit shader.
func (d *Device) NewMaterial(spec gpu.MaterialSpec) (gpu.Material, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	if d.lit == nil {
		lit, ok := loadLitShader()
		if !ok {
			return nil, fmt.Errorf("graphics: lit shader failed to compile")
		}
		d.lit = lit
	}
	mtl := rl.LoadMaterialDefault()
	m := &material{dev: d, spec: spec, rl: mtl, defaultShader: mtl.Shader}
	m.rl.Shader = d.lit.shader
	if albedo := m.rl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toRGBA(spec.Color, spec.Opacity)
	}
	d.materials++
	d.live++
	return m, nil
}

// NewSurface creates a w×h offscreen render target.
func (d *Device) NewSurface(w, h int) (gpu.Surface, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("graphics: surface size %dx%d", w, h)
	}
	rt := rl.LoadRenderTexture(int32(w), int32(h))
	if !rl.IsRenderTextureValid(rt) {
		return nil, fmt.Errorf("graphics: render texture %dx%d failed", w, h)
	}
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	d.live++
	return &Surface{dev: d, target: rt, w: w, h: h}, nil
}

func (d *Device) releaseMaterial() {
	d.materials--
	d.live--
	if d.materials == 0 && d.lit != nil {
		d.lit.unload()
		d.lit = nil
	}
}

func segments(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func toRGBA(c gpu.Color, opacity float32) color.RGBA {
	a := c.A * opacity
	return color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(a)}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

type mesh struct {
	dev      *Device
	geom     gpu.Geometry
	rl       rl.Mesh
	offset   rl.Matrix
	lines    [][2]rl.Vector3
	uploaded bool
	released bool
}

func (m *mesh) Geometry() gpu.Geometry { return m.geom }

func (m *mesh) Release() error {
	if m.released {
		return gpu.ErrReleased
	}
	m.released = true
	if m.uploaded {
		rl.UnloadMesh(&m.rl)
	}
	m.lines = nil
	m.dev.live--
	return nil
}

type material struct {
	dev           *Device
	spec          gpu.MaterialSpec
	rl            rl.Material
	defaultShader rl.Shader
	released      bool
}

func (m *material) Spec() gpu.MaterialSpec { return m.spec }

func (m *material) translucent() bool { return m.spec.Opacity*m.spec.Color.A < 1 }

// Release unloads the material. The shared shader is swapped back to raylib's default first so
// UnloadMaterial does not unload it.
func (m *material) Release() error {
	if m.released {
		return gpu.ErrReleased
	}
	m.released = true
	m.rl.Shader = m.defaultShader
	rl.UnloadMaterial(m.rl)
	m.dev.releaseMaterial()
	return nil
}

// gridLines returns the segments of a size×size grid in the XZ plane with divs cells per side.
func gridLines(size float32, divs int) [][2]rl.Vector3 {
	half := size / 2
	step := size / float32(divs)
	lines := make([][2]rl.Vector3, 0, 2*(divs+1))
	for i := 0; i <= divs; i++ {
		k := -half + float32(i)*step
		lines = append(lines,
			[2]rl.Vector3{rl.NewVector3(k, 0, -half), rl.NewVector3(k, 0, half)},
			[2]rl.Vector3{rl.NewVector3(-half, 0, k), rl.NewVector3(half, 0, k)},
		)
	}
	return lines
}
