package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"

	"spatial-preview/internal/gpu"
)

// ErrEmptyContainer is returned by Build when the container has no drawable area.
var ErrEmptyContainer = errors.New("scene: container has no area")

const (
	// PointCount is the number of floating point markers in the room.
	PointCount = 10

	backgroundColor = 0xF7F8FA
	accentColor     = 0x2D68FF
	fogNear         = 5
	fogFar          = 30

	cameraFovy = 35
	cameraNear = 0.1
	cameraFar  = 100

	roomSize      = 6
	wallHeight    = 4
	wallThickness = 0.2

	gridDivisions = 20
	pointRadius   = 0.03
)

// Background is the room's clear and fog color.
var Background = gpu.Hex(backgroundColor)

// CameraStart is the camera position every build starts from.
var CameraStart = [3]float32{10, 8, 10}

// Context owns everything one mount of the preview allocates: the scene tree, the camera, the
// drawable surface and every mesh and material the tree references.
type Context struct {
	Scene   *Scene
	Camera  *Camera
	Surface gpu.Surface

	// Nodes the animation mutates every frame.
	SweepGrid  *Node
	SweepPlane *Node
	Points     *Node

	resources []gpu.Resource
}

// Resources returns how many meshes and materials the context still holds.
func (c *Context) Resources() int { return len(c.resources) }

// ReleaseSurface releases the drawable surface. Calling it again is a no-op.
func (c *Context) ReleaseSurface() error {
	if c.Surface == nil {
		return nil
	}
	err := c.Surface.Release()
	c.Surface = nil
	if err != nil {
		return fmt.Errorf("scene: release surface: %w", err)
	}
	return nil
}

// ReleaseResources releases every mesh and material, newest first, and returns all errors
// combined. Calling it again is a no-op.
func (c *Context) ReleaseResources() error {
	var err error
	for i := len(c.resources) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.resources[i].Release())
	}
	c.resources = nil
	return err
}

// Release releases the surface and then all other resources.
func (c *Context) Release() error {
	return multierr.Append(c.ReleaseSurface(), c.ReleaseResources())
}

// builder records every allocation and stops at the first failure.
type builder struct {
	dev gpu.Device
	res []gpu.Resource
	err error
}

func (b *builder) mesh(g gpu.Geometry) gpu.Mesh {
	if b.err != nil {
		return nil
	}
	m, err := b.dev.NewMesh(g)
	if err != nil {
		b.err = fmt.Errorf("scene: %s mesh: %w", g.Shape, err)
		return nil
	}
	b.res = append(b.res, m)
	return m
}

func (b *builder) material(spec gpu.MaterialSpec) gpu.Material {
	if b.err != nil {
		return nil
	}
	m, err := b.dev.NewMaterial(spec)
	if err != nil {
		b.err = fmt.Errorf("scene: material: %w", err)
		return nil
	}
	b.res = append(b.res, m)
	return m
}

func box(w, h, d float32) gpu.Geometry {
	return gpu.Geometry{Shape: gpu.ShapeBox, Size: [3]float32{w, h, d}}
}

func cylinder(r, h float32, segments int) gpu.Geometry {
	return gpu.Geometry{Shape: gpu.ShapeCylinder, Radius: r, Height: h, Segments: segments}
}

func solid(rgb uint32, roughness, metalness float32) gpu.MaterialSpec {
	return gpu.MaterialSpec{Color: gpu.Hex(rgb), Opacity: 1, Roughness: roughness, Metalness: metalness}
}

// Build constructs the room for a width×height container. The surface is allocated first, so a
// missing graphics context (gpu.ErrUnavailable) fails before anything else is allocated. On any
// failure every handle allocated so far is released and no Context is returned.
func Build(dev gpu.Device, width, height int, rng *rand.Rand) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyContainer
	}
	surface, err := dev.NewSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("scene: surface: %w", err)
	}

	b := &builder{dev: dev}
	ctx := &Context{
		Camera:  NewCamera(cameraFovy, float32(width)/float32(height), cameraNear, cameraFar, CameraStart),
		Surface: surface,
	}
	ctx.Scene = New(Background)
	ctx.Scene.Fog = &gpu.Fog{Color: Background, Near: fogNear, Far: fogFar}

	root := ctx.Scene.Root
	root.AddChild(NewLight("ambient", gpu.Light{Kind: gpu.LightAmbient, Color: gpu.Hex(0xffffff), Intensity: 0.5}))
	root.AddChild(NewLight("sun", gpu.Light{Kind: gpu.LightDirectional, Color: gpu.Hex(0xffffff), Intensity: 1.2, Position: [3]float32{5, 10, 5}}))
	root.AddChild(NewLight("fill", gpu.Light{Kind: gpu.LightDirectional, Color: gpu.Hex(0xEEF2FF), Intensity: 0.5, Position: [3]float32{-5, 5, -5}}))

	room := NewGroup("room")
	root.AddChild(room)

	floor := NewMesh("floor",
		b.mesh(gpu.Geometry{Shape: gpu.ShapePlane, Size: [3]float32{100, 0, 100}}),
		b.material(solid(0xffffff, 0.8, 0.1)))
	room.AddChild(floor)

	wallMat := b.material(solid(0xF0F0F0, 0.9, 0))
	back := NewMesh("wall-back", b.mesh(box(roomSize, wallHeight, wallThickness)), wallMat)
	back.SetPosition(0, wallHeight/2, -roomSize/2)
	room.AddChild(back)
	side := NewMesh("wall-side", b.mesh(box(wallThickness, wallHeight, roomSize)), wallMat)
	side.SetPosition(-roomSize/2, wallHeight/2, 0)
	room.AddChild(side)

	sofa := NewGroup("sofa")
	sofa.SetPosition(0, 0, -1.5)
	sofaMat := b.material(solid(0x333333, 0.9, 0))
	seat := NewMesh("sofa-seat", b.mesh(box(3, 0.4, 1.2)), sofaMat)
	seat.SetPosition(0, 0.4, 0)
	sofa.AddChild(seat)
	backrest := NewMesh("sofa-back", b.mesh(box(3, 1, 0.3)), sofaMat)
	backrest.SetPosition(0, 0.9, -0.45)
	sofa.AddChild(backrest)
	room.AddChild(sofa)

	table := NewGroup("table")
	table.SetPosition(0.5, 0, 0.5)
	glass := solid(0xffffff, 0.1, 0.1)
	glass.Opacity = 0.4
	top := NewMesh("table-top", b.mesh(cylinder(0.8, 0.05, 32)), b.material(glass))
	top.SetPosition(0, 0.5, 0)
	table.AddChild(top)
	legMesh := b.mesh(cylinder(0.04, 0.5, 16))
	legMat := b.material(solid(0x111111, 0.5, 0))
	for i, angle := range []float32{0, 2 * math32.Pi / 3, 4 * math32.Pi / 3} {
		leg := NewMesh(fmt.Sprintf("table-leg-%d", i), legMesh, legMat)
		leg.SetPosition(math32.Cos(angle)*0.5, 0.25, math32.Sin(angle)*0.5)
		table.AddChild(leg)
	}
	room.AddChild(table)

	sphere := NewMesh("decor-sphere",
		b.mesh(gpu.Geometry{Shape: gpu.ShapeSphere, Radius: 0.2, Segments: 32}),
		b.material(solid(0xFFA500, 0.2, 0.5)))
	sphere.SetPosition(0.5, 0.7, 0.5)
	room.AddChild(sphere)

	rug := NewMesh("rug",
		b.mesh(gpu.Geometry{Shape: gpu.ShapeDisc, Radius: 2, Segments: 64}),
		b.material(solid(accentColor, 1, 0)))
	rug.SetPosition(0, 0.01, 0)
	room.AddChild(rug)

	ctx.SweepGrid = NewMesh("sweep-grid",
		b.mesh(gpu.Geometry{Shape: gpu.ShapeGrid, Size: [3]float32{roomSize, 0, roomSize}, Segments: gridDivisions}),
		b.material(gpu.MaterialSpec{Color: gpu.Hex(accentColor), Opacity: 0.3, Unlit: true}))
	room.AddChild(ctx.SweepGrid)

	ctx.SweepPlane = NewMesh("sweep-plane",
		b.mesh(gpu.Geometry{Shape: gpu.ShapePlane, Size: [3]float32{roomSize, 0, roomSize}}),
		b.material(gpu.MaterialSpec{Color: gpu.Hex(accentColor), Opacity: 0.1, Unlit: true, DoubleSided: true}))
	room.AddChild(ctx.SweepPlane)

	ctx.Points = NewGroup("points")
	pointMesh := b.mesh(gpu.Geometry{Shape: gpu.ShapeSphere, Radius: pointRadius, Segments: 8})
	pointMat := b.material(gpu.MaterialSpec{Color: gpu.Hex(accentColor), Opacity: 1, Unlit: true})
	for i := 0; i < PointCount; i++ {
		p := NewMesh(fmt.Sprintf("point-%d", i), pointMesh, pointMat)
		p.SetPosition(
			(rng.Float32()-0.5)*4,
			rng.Float32()*3,
			(rng.Float32()-0.5)*4,
		)
		ctx.Points.AddChild(p)
	}
	room.AddChild(ctx.Points)

	ctx.resources = b.res
	if b.err != nil {
		return nil, multierr.Append(b.err, ctx.Release())
	}
	return ctx, nil
}
