package models

import (
	"math"

	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// builder accumulates vertices and triangles for procedural meshes. Winding
// matches the glTF importer: front faces come out counter-clockwise after
// the screen-space Y flip.
type builder struct {
	mesh *scene.Mesh
}

func newBuilder(name string) *builder {
	return &builder{mesh: &scene.Mesh{
		Name:      name,
		Materials: []scene.Material{scene.DefaultMaterial()},
	}}
}

func (b *builder) vertex(pos, normal math3d.Vec3, color scene.ColorF) int {
	b.mesh.Vertices = append(b.mesh.Vertices, scene.Vertex{
		Position: pos,
		Normal:   normal,
		Color:    color,
	})
	return len(b.mesh.Vertices) - 1
}

func (b *builder) tri(v0, v1, v2 int) {
	b.mesh.Tris = append(b.mesh.Tris, scene.Tri{V: [3]int{v0, v1, v2}})
}

// quad emits two triangles for vertices given in counter-clockwise order
// when viewed from outside, reversing the winding the same way the glTF
// importer does.
func (b *builder) quad(v0, v1, v2, v3 int) {
	b.tri(v0, v2, v1)
	b.tri(v0, v3, v2)
}

func (b *builder) finish() *scene.Mesh {
	b.mesh.CalculateFaceNormals()
	b.mesh.CalculateBounds()
	return b.mesh
}

// NewCube builds a unit-colored cube centered at the origin with flat
// per-face normals.
func NewCube(size float64, color scene.ColorF) *scene.Mesh {
	h := size / 2
	b := newBuilder("cube")

	// Each face gets its own four vertices so normals stay flat.
	faces := []struct {
		normal  math3d.Vec3
		corners [4]math3d.Vec3 // CCW viewed from outside
	}{
		{math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}}},
		{math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}}},
		{math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}}},
		{math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}}},
		{math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}}},
		{math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}}},
	}

	for _, f := range faces {
		i0 := b.vertex(f.corners[0], f.normal, color)
		i1 := b.vertex(f.corners[1], f.normal, color)
		i2 := b.vertex(f.corners[2], f.normal, color)
		i3 := b.vertex(f.corners[3], f.normal, color)
		b.quad(i0, i1, i2, i3)
	}

	return b.finish()
}

// NewPlane builds a flat grid on the XZ plane at y=0, subdivided into
// segments x segments quads.
func NewPlane(size float64, segments int, color scene.ColorF) *scene.Mesh {
	if segments < 1 {
		segments = 1
	}
	b := newBuilder("plane")
	half := size / 2
	step := size / float64(segments)
	up := math3d.Up()

	rows := segments + 1
	for iz := 0; iz < rows; iz++ {
		for ix := 0; ix < rows; ix++ {
			pos := math3d.V3(-half+float64(ix)*step, 0, -half+float64(iz)*step)
			b.vertex(pos, up, color)
		}
	}

	for iz := 0; iz < segments; iz++ {
		for ix := 0; ix < segments; ix++ {
			i0 := iz*rows + ix
			i1 := i0 + 1
			i2 := i0 + rows + 1
			i3 := i0 + rows
			// Viewed from +Y, CCW order is i0, i3, i2, i1.
			b.quad(i0, i3, i2, i1)
		}
	}

	return b.finish()
}

// NewUVSphere builds a latitude/longitude sphere with smooth normals.
func NewUVSphere(radius float64, rings, sectors int, color scene.ColorF) *scene.Mesh {
	if rings < 2 {
		rings = 2
	}
	if sectors < 3 {
		sectors = 3
	}
	b := newBuilder("sphere")

	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings) // 0 at north pole
		for s := 0; s <= sectors; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sectors)
			n := math3d.V3(
				math.Sin(phi)*math.Cos(theta),
				math.Cos(phi),
				math.Sin(phi)*math.Sin(theta),
			)
			b.vertex(n.Scale(radius), n, color)
		}
	}

	stride := sectors + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			i0 := r*stride + s
			i1 := i0 + 1
			i2 := i0 + stride + 1
			i3 := i0 + stride
			// Viewed from outside, CCW order is i0, i1, i2, i3.
			b.quad(i0, i1, i2, i3)
		}
	}

	return b.finish()
}
