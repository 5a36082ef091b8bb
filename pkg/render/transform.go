package render

import (
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// ClipVertex is a vertex after the vertex stage: clip-space position plus
// the attributes carried through clipping and interpolation.
type ClipVertex struct {
	Position math3d.Vec4 // Homogeneous clip space, not yet divided by W
	Normal   math3d.Vec3 // World space, unnormalized until shading
	Color    scene.ColorF
}

// ClipTriangle is a triangle in clip space with its per-face attributes.
type ClipTriangle struct {
	V          [3]ClipVertex
	FaceNormal math3d.Vec3 // World space, used by flat shading
	Material   *scene.Material
	Mode       scene.RenderMode
}

// lerpVertex interpolates every attribute of a clip vertex, t in [0, 1].
// Used by the near-plane clipper when an edge crosses the plane.
func lerpVertex(a, b ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Position: a.Position.Lerp(b.Position, t),
		Normal:   a.Normal.Lerp(b.Normal, t),
		Color:    a.Color.Lerp(b.Color, t),
	}
}

// TransformEntity runs the vertex stage for one entity: model-space positions
// to clip space, normals to world space via the inverse-transpose, and face
// normals rotated into world space. It is a pure function of its inputs so
// entities can be transformed concurrently.
func TransformEntity(e *scene.Entity, viewProj math3d.Mat4) []ClipTriangle {
	mesh := e.Mesh
	if mesh == nil || len(mesh.Tris) == 0 {
		return nil
	}

	model := e.ModelMatrix()
	mvp := viewProj.Mul(model)
	normalMat := model.InverseTranspose()

	// Transform each vertex once, then assemble triangles by index.
	verts := make([]ClipVertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		verts[i] = ClipVertex{
			Position: mvp.MulVec4(math3d.V4FromV3(v.Position, 1)),
			Normal:   normalMat.MulVec3Dir(v.Normal),
			Color:    v.Color,
		}
	}

	tris := make([]ClipTriangle, 0, len(mesh.Tris))
	for i, tri := range mesh.Tris {
		tris = append(tris, ClipTriangle{
			V: [3]ClipVertex{
				verts[tri.V[0]],
				verts[tri.V[1]],
				verts[tri.V[2]],
			},
			FaceNormal: normalMat.MulVec3Dir(tri.Normal).Normalize(),
			Material:   mesh.MaterialFor(i),
			Mode:       e.Mode,
		})
	}
	return tris
}
