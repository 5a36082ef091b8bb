package scene

import (
	"fmt"

	"github.com/hexlade/facet/pkg/math3d"
)

// Vertex holds all per-vertex attributes. Vertices are immutable once the
// mesh is loaded; the pipeline only reads them.
type Vertex struct {
	Position math3d.Vec3 // Object-space position
	Normal   math3d.Vec3 // Object-space normal
	Color    ColorF      // Vertex color (White when the source has none)
	UV       math3d.Vec2 // Texture coordinates (reserved, unused)
}

// Tri is a triangle: three indices into the owning mesh's vertex list, a
// cached face normal, and a material index (-1 for none).
type Tri struct {
	V        [3]int
	Normal   math3d.Vec3
	Material int
}

// Mesh is an ordered list of vertices and triangles plus materials.
// A mesh may be shared read-only across entities that instance it.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Tris      []Tri
	Materials []Material

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Validate checks data integrity after loading: every triangle index must be
// in range and the mesh must not be empty. The pipeline assumes a validated
// mesh and performs no index checks at render time.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q: no vertices", m.Name)
	}
	if len(m.Tris) == 0 {
		return fmt.Errorf("mesh %q: no triangles", m.Name)
	}
	for i, tri := range m.Tris {
		for _, vi := range tri.V {
			if vi < 0 || vi >= len(m.Vertices) {
				return fmt.Errorf("mesh %q: tri %d references vertex %d of %d", m.Name, i, vi, len(m.Vertices))
			}
		}
		if tri.Material >= len(m.Materials) {
			return fmt.Errorf("mesh %q: tri %d references material %d of %d", m.Name, i, tri.Material, len(m.Materials))
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Tris)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// faceNormal returns the unnormalized outward normal of triangle t.
// Triangles are stored clockwise when viewed from outside (the winding the
// rasterizer expects after the screen-space Y flip), so the cross product
// order is reversed relative to the usual right-hand rule.
func (m *Mesh) faceNormal(t *Tri) math3d.Vec3 {
	v0 := m.Vertices[t.V[0]].Position
	v1 := m.Vertices[t.V[1]].Position
	v2 := m.Vertices[t.V[2]].Position
	return v2.Sub(v0).Cross(v1.Sub(v0))
}

// CalculateFaceNormals computes and caches each triangle's face normal.
// Degenerate triangles get a zero normal; the clipper drops them later.
func (m *Mesh) CalculateFaceNormals() {
	for i := range m.Tris {
		t := &m.Tris[i]
		t.Normal = m.faceNormal(t).Normalize()
	}
}

// CalculateSmoothNormals computes area-weighted averaged vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate unnormalized face normals so larger faces weigh more.
	for i := range m.Tris {
		t := &m.Tris[i]
		normal := m.faceNormal(t)

		m.Vertices[t.V[0]].Normal = m.Vertices[t.V[0]].Normal.Add(normal)
		m.Vertices[t.V[1]].Normal = m.Vertices[t.V[1]].Normal.Add(normal)
		m.Vertices[t.V[2]].Normal = m.Vertices[t.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform bakes a transformation matrix into all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := mat.InverseTranspose()
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = normalMat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	for i := range m.Tris {
		m.Tris[i].Normal = normalMat.MulVec3Dir(m.Tris[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// MaterialFor returns the material of triangle i, or nil when unassigned.
func (m *Mesh) MaterialFor(i int) *Material {
	mi := m.Tris[i].Material
	if mi < 0 || mi >= len(m.Materials) {
		return nil
	}
	return &m.Materials[mi]
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
