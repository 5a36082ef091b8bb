package render

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hexlade/facet/pkg/scene"
)

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	EntitiesIn     int
	EntitiesCulled int // Rejected by whole-mesh frustum culling
	TrianglesIn    int // Submitted to the clipper
	TrianglesOut   int // Survived clipping and culling
	Duration       time.Duration
}

// Pipeline owns the render targets and runs the full frame: transform and
// clip per entity, then rasterize and shade per chunk. A pipeline is bound
// to one resolution; input handling must not mutate the scene while Render
// is in flight.
type Pipeline struct {
	target  *Target
	gbuffer *GBuffer
	clipper *Clipper
	raster  Rasterizer

	// Workers bounds the concurrency of both stages. Zero means GOMAXPROCS.
	Workers int

	// Background fills pixels no triangle touched.
	Background scene.ColorF

	// BakeNormals switches the shading pass to the normal debug view.
	BakeNormals bool

	stats FrameStats
}

// NewPipeline allocates a pipeline for the given resolution with chunkCount
// row bands.
func NewPipeline(width, height, chunkCount int) (*Pipeline, error) {
	target, err := NewTarget(width, height, chunkCount)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		target:     target,
		gbuffer:    NewGBuffer(width, height),
		clipper:    NewClipper(),
		Background: scene.Black,
	}, nil
}

// Target returns the pipeline's render target for presentation.
func (p *Pipeline) Target() *Target {
	return p.target
}

// Stats returns the statistics of the most recent frame.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// SetBackfaceCulling toggles backface culling for subsequent frames.
func (p *Pipeline) SetBackfaceCulling(enabled bool) {
	p.clipper.BackfaceCulling = enabled
}

// SetFixedPointBits sets the fractional precision of the fixed-point render
// mode.
func (p *Pipeline) SetFixedPointBits(bits int) {
	p.raster.FixedPointBits = bits
}

func (p *Pipeline) workerLimit() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// geometryResult is the per-entity output of the transform/clip stage.
// Collected per entity and flattened in entity order so frame output does
// not depend on goroutine scheduling.
type geometryResult struct {
	tris   []ScreenTriangle
	in     int
	culled bool
}

// Render draws one frame of the scene into the pipeline's target. The
// context cancels between stages and between entities, never mid-triangle.
func (p *Pipeline) Render(ctx context.Context, s *scene.Scene) error {
	start := time.Now()

	cam := s.Camera
	viewProj := cam.ViewProjectionMatrix()
	frustum := ExtractFrustum(viewProj)

	p.target.Clear(p.Background.RGBA())
	p.gbuffer.Clear()

	// Stage A: transform and clip every entity concurrently. Workers write
	// only their own slot in results.
	results := make([]geometryResult, len(s.Entities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerLimit())

	for i, e := range s.Entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]

			mesh := e.Mesh
			if mesh == nil || len(mesh.Tris) == 0 {
				return nil
			}

			// Whole-mesh rejection: transform the local bounds to world
			// space and test against the frustum.
			box := NewAABB(mesh.BoundsMin, mesh.BoundsMax).Transform(e.ModelMatrix())
			if !frustum.IntersectAABB(box) {
				res.culled = true
				return nil
			}
			res.in = len(mesh.Tris)

			clipTris := TransformEntity(e, viewProj)
			out := make([]ScreenTriangle, 0, len(clipTris))
			for j := range clipTris {
				out = p.clipper.ClipTriangle(out, clipTris[j], p.target.Width, p.target.Height)
			}
			res.tris = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Flatten in entity order. With the strict depth test this makes the
	// frame a pure function of the scene.
	stats := FrameStats{EntitiesIn: len(s.Entities)}
	total := 0
	for i := range results {
		total += len(results[i].tris)
		stats.TrianglesIn += results[i].in
		if results[i].culled {
			stats.EntitiesCulled++
		}
	}
	tris := make([]ScreenTriangle, 0, total)
	for i := range results {
		tris = append(tris, results[i].tris...)
	}
	stats.TrianglesOut = len(tris)

	if err := ctx.Err(); err != nil {
		return err
	}

	// Stage B: rasterize and shade each chunk. A chunk's rows belong to
	// exactly one worker, so both passes run lock-free; shading can start
	// as soon as the same worker finished rasterizing its own rows.
	p.raster.FlatNormals = s.Shading == scene.ShadeFlat

	params := &ShadeParams{
		Lights:      s.Lights,
		Ambient:     s.Ambient,
		CameraPos:   cam.Position,
		InvViewProj: viewProj.Inverse(),
		Shading:     s.Shading,
		BakeNormals: p.BakeNormals,
	}

	g2, g2ctx := errgroup.WithContext(ctx)
	g2.SetLimit(p.workerLimit())

	for _, chunk := range p.target.Chunks() {
		g2.Go(func() error {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			p.raster.RasterizeChunk(p.target, p.gbuffer, chunk, tris)
			ShadeChunk(p.target, p.gbuffer, chunk, params)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return err
	}

	stats.Duration = time.Since(start)
	p.stats = stats
	return nil
}
