package render

import (
	"math"
	"testing"

	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

func TestTransformEntityIdentity(t *testing.T) {
	mesh := triangleMesh(scene.Red)
	e := scene.NewEntity(mesh)

	out := TransformEntity(e, math3d.Identity())
	if len(out) != 1 {
		t.Fatalf("got %d triangles, want 1", len(out))
	}

	tri := out[0]
	for i := range tri.V {
		want := math3d.V4FromV3(mesh.Vertices[mesh.Tris[0].V[i]].Position, 1)
		if tri.V[i].Position != want {
			t.Errorf("vertex %d = %v, want %v", i, tri.V[i].Position, want)
		}
		if tri.V[i].Color != scene.Red {
			t.Errorf("vertex %d color = %v, want red", i, tri.V[i].Color)
		}
	}
	if tri.Material == nil {
		t.Error("material not carried through the vertex stage")
	}
	if tri.Mode != scene.ModeSolid {
		t.Errorf("mode = %v, want solid", tri.Mode)
	}
}

func TestTransformEntityRotatesNormals(t *testing.T) {
	mesh := triangleMesh(scene.White) // face normal +Z
	e := scene.NewEntity(mesh)
	e.Rotation.Y = math.Pi / 2 // +Z rotates to +X

	out := TransformEntity(e, math3d.Identity())
	if len(out) != 1 {
		t.Fatalf("got %d triangles, want 1", len(out))
	}

	fn := out[0].FaceNormal
	if math.Abs(fn.X-1) > 1e-9 || math.Abs(fn.Y) > 1e-9 || math.Abs(fn.Z) > 1e-9 {
		t.Errorf("face normal = %v, want (1, 0, 0)", fn)
	}
}

func TestTransformEntityNonUniformScaleNormals(t *testing.T) {
	// A normal on a non-uniformly scaled surface must go through the
	// inverse-transpose, not the model matrix: squashing a surface along Y
	// keeps a +Z normal pointing at +Z.
	mesh := triangleMesh(scene.White)
	e := scene.NewEntity(mesh)
	e.Scale = math3d.V3(1, 0.5, 1)

	out := TransformEntity(e, math3d.Identity())
	n := out[0].V[0].Normal.Normalize()
	if math.Abs(n.Z-1) > 1e-9 {
		t.Errorf("vertex normal = %v, want +Z", n)
	}
}

func TestTransformEntityEmptyMesh(t *testing.T) {
	if out := TransformEntity(scene.NewEntity(nil), math3d.Identity()); out != nil {
		t.Errorf("nil mesh should produce no triangles, got %d", len(out))
	}
	if out := TransformEntity(scene.NewEntity(scene.NewMesh("empty")), math3d.Identity()); out != nil {
		t.Errorf("empty mesh should produce no triangles, got %d", len(out))
	}
}
