// Package gpu describes the narrow rendering contract the preview core depends on: a Device that
// allocates meshes, materials and drawable surfaces, and a Surface that draws one Frame at a time.
// Every handle must be released explicitly; nothing is reclaimed by the garbage collector.
package gpu

import "errors"

var (
	// ErrUnavailable is returned when no graphics context exists (e.g. the window is not open yet).
	ErrUnavailable = errors.New("gpu: graphics context unavailable")
	// ErrReleased is returned when a handle is used or released after Release.
	ErrReleased = errors.New("gpu: handle already released")
)

// Shape selects the primitive a Geometry describes. All shapes are centered on the local origin;
// flat shapes (Plane, Disc, Grid) lie in the XZ plane facing +Y.
type Shape int

const (
	ShapePlane Shape = iota
	ShapeBox
	ShapeCylinder
	ShapeSphere
	ShapeDisc
	ShapeGrid
)

func (s Shape) String() string {
	switch s {
	case ShapePlane:
		return "plane"
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	case ShapeDisc:
		return "disc"
	case ShapeGrid:
		return "grid"
	}
	return "unknown"
}

// Geometry is the construction input for a mesh.
// Size is (width, height, depth) for boxes and planes (height unused for planes),
// Radius/Height describe cylinders, spheres and discs, Segments is the radial or grid
// subdivision count.
type Geometry struct {
	Shape    Shape
	Size     [3]float32
	Radius   float32
	Height   float32
	Segments int
}

// Color is a linear RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Hex returns an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255,
		G: float32((rgb>>8)&0xff) / 255,
		B: float32(rgb&0xff) / 255,
		A: 1,
	}
}

// MaterialSpec is the construction input for a material.
// Opacity below 1 makes the material translucent; Unlit skips lighting and fog.
type MaterialSpec struct {
	Color       Color
	Opacity     float32
	Roughness   float32
	Metalness   float32
	Unlit       bool
	DoubleSided bool
}

// Resource is any GPU-backed handle.
type Resource interface {
	Release() error
}

// Mesh is uploaded geometry.
type Mesh interface {
	Resource
	Geometry() Geometry
}

// Material is an uploaded material (and its shader, if any).
type Material interface {
	Resource
	Spec() MaterialSpec
}

// Surface is an offscreen drawable target sized to its host container.
type Surface interface {
	Resource
	Size() (w, h int)
	Resize(w, h int) error
	Draw(f Frame) error
}

// Device allocates GPU resources.
type Device interface {
	NewMesh(g Geometry) (Mesh, error)
	NewMaterial(spec MaterialSpec) (Material, error)
	NewSurface(w, h int) (Surface, error)
}

// Counter is implemented by devices that can report how many handles are currently live.
type Counter interface {
	Live() int
}
