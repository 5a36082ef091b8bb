package render

import (
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// Overlay draws debug geometry (axes, grids, markers) directly on a render
// target, on top of the shaded frame and without depth testing.
type Overlay struct {
	camera *scene.Camera
	target *Target
}

// NewOverlay creates a debug overlay renderer.
func NewOverlay(camera *scene.Camera, target *Target) *Overlay {
	return &Overlay{
		camera: camera,
		target: target,
	}
}

// DrawLine3D draws a line in 3D space.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := o.camera.WorldToScreen(p1, o.target.Width, o.target.Height)
	x2, y2, _, vis2 := o.camera.WorldToScreen(p2, o.target.Width, o.target.Height)

	// Simple clipping: only draw if at least one point is visible
	// (proper line clipping would be more complex)
	if !vis1 && !vis2 {
		return
	}

	o.target.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (o *Overlay) DrawAxes(length float64) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	o.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	o.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (o *Overlay) DrawGrid(size, step float64, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		o.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), color)
	}
	for z := -half; z <= half; z += step {
		o.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), color)
	}
}

// DrawBounds draws an entity's world-space bounding box as 12 edges.
func (o *Overlay) DrawBounds(e *scene.Entity, color Color) {
	if e.Mesh == nil {
		return
	}
	box := NewAABB(e.Mesh.BoundsMin, e.Mesh.BoundsMax).Transform(e.ModelMatrix())
	min, max := box.Min, box.Max

	verts := [8]math3d.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}

	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // back face
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // front face
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
	}

	for _, edge := range edges {
		o.DrawLine3D(verts[edge[0]], verts[edge[1]], color)
	}
}

// DrawLightMarker draws a small cross at a light's position. Directional
// lights have no position and are skipped.
func (o *Overlay) DrawLightMarker(l scene.Light, size float64, color Color) {
	if l.Kind == scene.Directional {
		return
	}
	half := size / 2
	pos := l.Position
	o.DrawLine3D(math3d.V3(pos.X-half, pos.Y, pos.Z), math3d.V3(pos.X+half, pos.Y, pos.Z), color)
	o.DrawLine3D(math3d.V3(pos.X, pos.Y-half, pos.Z), math3d.V3(pos.X, pos.Y+half, pos.Z), color)
	o.DrawLine3D(math3d.V3(pos.X, pos.Y, pos.Z-half), math3d.V3(pos.X, pos.Y, pos.Z+half), color)
}
