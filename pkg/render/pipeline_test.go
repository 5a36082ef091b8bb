package render

import (
	"context"
	"testing"

	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// triangleMesh builds a single camera-facing triangle at z=0. Vertices are
// stored clockwise when viewed from +Z, the winding the clipper expects to
// come out front-facing after the screen-space Y flip.
func triangleMesh(color scene.ColorF) *scene.Mesh {
	m := scene.NewMesh("tri")
	m.Materials = []scene.Material{scene.DefaultMaterial()}

	n := math3d.V3(0, 0, 1)
	for _, p := range []math3d.Vec3{
		math3d.V3(-1, -1, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(1, -1, 0),
	} {
		m.Vertices = append(m.Vertices, scene.Vertex{Position: p, Normal: n, Color: color})
	}
	m.Tris = []scene.Tri{{V: [3]int{0, 1, 2}}}
	m.CalculateFaceNormals()
	m.CalculateBounds()
	return m
}

// testScene places one red and one offset blue triangle in front of the
// default camera with a single directional light.
func testScene() *scene.Scene {
	s := scene.NewScene()
	s.Camera.SetAspectRatio(1)

	red := scene.NewEntity(triangleMesh(scene.Red))
	blue := scene.NewEntity(triangleMesh(scene.Blue))
	blue.Position = math3d.V3(0.5, 0, -1)
	s.Add(red)
	s.Add(blue)

	s.AddLight(scene.DirAbove())
	return s
}

func renderFrame(t *testing.T, p *Pipeline, s *scene.Scene) []byte {
	t.Helper()
	if err := p.Render(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	return p.Target().ToImage().Pix
}

func TestRenderDrawsScene(t *testing.T) {
	p, err := NewPipeline(64, 64, 4)
	if err != nil {
		t.Fatal(err)
	}
	s := testScene()

	if err := p.Render(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	stats := p.Stats()
	if stats.EntitiesIn != 2 || stats.EntitiesCulled != 0 {
		t.Errorf("stats = %+v, want 2 entities, none culled", stats)
	}
	if stats.TrianglesIn != 2 || stats.TrianglesOut != 2 {
		t.Errorf("stats = %+v, want 2 triangles in and out", stats)
	}

	// The red triangle covers the screen center, so that pixel was shaded.
	if p.Target().Pixel(32, 32) == p.Background.RGBA() {
		t.Error("screen center still shows the background")
	}
}

func TestRenderDeterministic(t *testing.T) {
	p, err := NewPipeline(64, 64, 4)
	if err != nil {
		t.Fatal(err)
	}
	p.Workers = 4
	s := testScene()

	first := renderFrame(t, p, s)
	second := renderFrame(t, p, s)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("frame differs at byte %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestRenderChunkCountInvariant(t *testing.T) {
	s := testScene()

	single, err := NewPipeline(64, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	many, err := NewPipeline(64, 64, 8)
	if err != nil {
		t.Fatal(err)
	}
	many.Workers = 8

	a := renderFrame(t, single, s)
	b := renderFrame(t, many, s)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("1-chunk and 8-chunk frames differ at byte %d", i)
		}
	}
}

func TestRenderCullsOffscreenEntities(t *testing.T) {
	p, err := NewPipeline(64, 64, 2)
	if err != nil {
		t.Fatal(err)
	}

	s := scene.NewScene()
	s.Camera.SetAspectRatio(1)

	visible := scene.NewEntity(triangleMesh(scene.Red))
	behind := scene.NewEntity(triangleMesh(scene.Blue))
	behind.Position = math3d.V3(0, 0, 100) // behind the camera at z=5
	s.Add(visible)
	s.Add(behind)

	if err := p.Render(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	stats := p.Stats()
	if stats.EntitiesCulled != 1 {
		t.Errorf("EntitiesCulled = %d, want 1", stats.EntitiesCulled)
	}
	// The culled entity never reaches the clipper.
	if stats.TrianglesIn != 1 {
		t.Errorf("TrianglesIn = %d, want 1", stats.TrianglesIn)
	}
}

func TestRenderEmptySceneIsBackground(t *testing.T) {
	p, err := NewPipeline(16, 16, 2)
	if err != nil {
		t.Fatal(err)
	}
	p.Background = scene.CF(0.1, 0.2, 0.3)

	s := scene.NewScene()
	if err := p.Render(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	bg := p.Background.RGBA()
	for i, c := range p.Target().Color {
		if c != bg {
			t.Fatalf("pixel %d = %v, want background %v", i, c, bg)
		}
	}
}

func TestRenderCanceledContext(t *testing.T) {
	p, err := NewPipeline(16, 16, 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Render(ctx, testScene()); err == nil {
		t.Error("Render with a canceled context should fail")
	}
}
