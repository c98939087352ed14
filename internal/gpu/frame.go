package gpu

// Transform is a local position, XYZ euler rotation (radians) and scale.
type Transform struct {
	Position [3]float32
	Rotation [3]float32
	Scale    [3]float32
}

// Identity returns a transform with unit scale and no translation or rotation.
func Identity() Transform {
	return Transform{Scale: [3]float32{1, 1, 1}}
}

// DrawItem is one mesh draw. Chain holds the local transforms from the top-level node down to the
// mesh node itself; the renderer composes them into the world transform.
type DrawItem struct {
	Name     string
	Mesh     Mesh
	Material Material
	Chain    []Transform
}

// LightKind distinguishes ambient from directional lights.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light is a scene light. Position is only meaningful for directional lights, where it is the
// point the light shines from towards the origin.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float32
	Position  [3]float32
}

// Fog is linear distance fog.
type Fog struct {
	Color     Color
	Near, Far float32
}

// View is the camera state a frame is rendered with. Fovy is the vertical field of view in degrees.
type View struct {
	Position [3]float32
	Target   [3]float32
	Up       [3]float32
	Fovy     float32
	Aspect   float32
	Near     float32
	Far      float32
}

// ClipPlanes returns the view's near and far distances, or fallbackNear and fallbackFar when the
// view does not set a valid pair (0 < Near < Far).
func (v View) ClipPlanes(fallbackNear, fallbackFar float64) (near, far float64) {
	if v.Near <= 0 || v.Far <= v.Near {
		return fallbackNear, fallbackFar
	}
	return float64(v.Near), float64(v.Far)
}

// Frame is everything a Surface needs to draw one image.
type Frame struct {
	View       View
	Background Color
	Fog        *Fog
	Lights     []Light
	Items      []DrawItem
}
