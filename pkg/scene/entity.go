package scene

import "github.com/hexlade/facet/pkg/math3d"

// RenderMode selects how an entity's triangles are rasterized.
type RenderMode int

const (
	// ModeSolid fills triangles with the edge-function rasterizer.
	ModeSolid RenderMode = iota
	// ModeWireframe draws only triangle edges with Bresenham lines.
	ModeWireframe
	// ModeFixedPoint is ModeSolid with screen coordinates and depth
	// quantized to a fixed-point grid for a deliberate retro look.
	ModeFixedPoint
)

func (m RenderMode) String() string {
	switch m {
	case ModeSolid:
		return "solid"
	case ModeWireframe:
		return "wireframe"
	case ModeFixedPoint:
		return "fixedpoint"
	}
	return "unknown"
}

// Entity places a mesh in the world. Input handling mutates the transform
// between frames; the pipeline only reads it during a frame.
type Entity struct {
	Mesh     *Mesh
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in radians (X, Y, Z)
	Scale    math3d.Vec3
	Mode     RenderMode
}

// NewEntity creates an entity at the origin with unit scale.
func NewEntity(mesh *Mesh) *Entity {
	return &Entity{
		Mesh:  mesh,
		Scale: math3d.V3(1, 1, 1),
	}
}

// ModelMatrix composes translation, rotation (Z·Y·X order) and scale.
func (e *Entity) ModelMatrix() math3d.Mat4 {
	rot := math3d.RotateZ(e.Rotation.Z).
		Mul(math3d.RotateY(e.Rotation.Y)).
		Mul(math3d.RotateX(e.Rotation.X))
	return math3d.Translate(e.Position).Mul(rot).Mul(math3d.Scale(e.Scale))
}

// Rotate adds to the entity's Euler rotation.
func (e *Entity) Rotate(dx, dy, dz float64) {
	e.Rotation.X += dx
	e.Rotation.Y += dy
	e.Rotation.Z += dz
}
