package render

import (
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// Canonical clip-space planes as Vec4 coefficients: a point p is inside a
// plane when plane · p >= 0. Only the near plane is used for geometric
// subdivision; the rest reject triangles wholly outside the volume.
var clipPlanes = [6]math3d.Vec4{
	{X: 1, Y: 0, Z: 0, W: 1},  // left:   x >= -w
	{X: -1, Y: 0, Z: 0, W: 1}, // right:  x <=  w
	{X: 0, Y: 1, Z: 0, W: 1},  // bottom: y >= -w
	{X: 0, Y: -1, Z: 0, W: 1}, // top:    y <=  w
	{X: 0, Y: 0, Z: 1, W: 1},  // near:   z >= -w
	{X: 0, Y: 0, Z: -1, W: 1}, // far:    z <=  w
}

const nearPlaneIdx = 4

// Triangles with a screen-space area smaller than this are dropped as
// degenerate before rasterization.
const degenerateAreaEps = 1e-6

// ScreenVertex is a vertex mapped to pixel coordinates with the reciprocal
// of clip W retained for perspective-correct attribute interpolation.
type ScreenVertex struct {
	X, Y   float64 // Pixel coordinates, Y grows downward
	Z      float64 // NDC depth in [-1, 1], affine-interpolated
	InvW   float64 // 1 / clip W
	Normal math3d.Vec3
	Color  scene.ColorF
}

// ScreenTriangle is a triangle ready for rasterization.
type ScreenTriangle struct {
	V          [3]ScreenVertex
	FaceNormal math3d.Vec3
	Material   *scene.Material
	Mode       scene.RenderMode
}

// Clipper turns clip-space triangles into screen-space triangles: rejection
// against the canonical volume, near-plane subdivision, perspective divide,
// viewport mapping, and backface culling.
type Clipper struct {
	// BackfaceCulling drops triangles whose screen winding is clockwise.
	// When disabled, winding is normalized instead so the rasterizer can
	// assume counter-clockwise triangles.
	BackfaceCulling bool
}

// NewClipper returns a clipper with backface culling enabled.
func NewClipper() *Clipper {
	return &Clipper{BackfaceCulling: true}
}

// ClipTriangle processes one clip-space triangle and appends the surviving
// screen-space triangles to dst. Near-plane subdivision can yield up to two
// triangles; everything else yields zero or one.
func (c *Clipper) ClipTriangle(dst []ScreenTriangle, tri ClipTriangle, width, height int) []ScreenTriangle {
	// Reject triangles entirely outside any one plane. This is conservative:
	// a triangle outside the volume but not outside a single plane slips
	// through and is handled by the rasterizer's bounding clamp.
	for _, plane := range clipPlanes {
		if plane.Dot(tri.V[0].Position) < 0 &&
			plane.Dot(tri.V[1].Position) < 0 &&
			plane.Dot(tri.V[2].Position) < 0 {
			return dst
		}
	}

	// Subdivide against the near plane only. Vertices behind the near plane
	// have w <= 0 there; after this step every surviving vertex has w > 0 so
	// the perspective divide is safe.
	clipped := clipAgainstNear(tri)
	for i := range clipped {
		dst = c.emitScreen(dst, clipped[i], width, height)
	}
	return dst
}

// clipAgainstNear clips a triangle against the near plane with
// Sutherland-Hodgman, interpolating all vertex attributes at crossings.
// Returns 0, 1 or 2 triangles.
func clipAgainstNear(tri ClipTriangle) []ClipTriangle {
	plane := clipPlanes[nearPlaneIdx]

	d := [3]float64{
		plane.Dot(tri.V[0].Position),
		plane.Dot(tri.V[1].Position),
		plane.Dot(tri.V[2].Position),
	}

	inside := 0
	for _, dist := range d {
		if dist >= 0 {
			inside++
		}
	}

	switch inside {
	case 3:
		return []ClipTriangle{tri}
	case 0:
		return nil
	}

	// Walk the polygon edges, emitting kept vertices and crossings. The
	// result is a convex polygon with 3 or 4 vertices.
	var poly [4]ClipVertex
	n := 0
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		a, b := tri.V[i], tri.V[j]
		da, db := d[i], d[j]

		if da >= 0 {
			poly[n] = a
			n++
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			poly[n] = lerpVertex(a, b, t)
			n++
		}
	}

	out := make([]ClipTriangle, 0, 2)
	for i := 1; i+1 < n; i++ {
		out = append(out, ClipTriangle{
			V:          [3]ClipVertex{poly[0], poly[i], poly[i+1]},
			FaceNormal: tri.FaceNormal,
			Material:   tri.Material,
			Mode:       tri.Mode,
		})
	}
	return out
}

// emitScreen performs the perspective divide and viewport mapping for one
// triangle, then applies the degenerate and backface tests.
func (c *Clipper) emitScreen(dst []ScreenTriangle, tri ClipTriangle, width, height int) []ScreenTriangle {
	var st ScreenTriangle
	st.FaceNormal = tri.FaceNormal
	st.Material = tri.Material
	st.Mode = tri.Mode

	fw := float64(width)
	fh := float64(height)

	for i := 0; i < 3; i++ {
		p := tri.V[i].Position
		if p.W <= 0 {
			// Near clipping guarantees w > 0; anything else is a
			// degenerate sliver on the plane itself.
			return dst
		}
		invW := 1 / p.W
		ndcX := p.X * invW
		ndcY := p.Y * invW
		ndcZ := p.Z * invW

		st.V[i] = ScreenVertex{
			X:      (ndcX + 1) * 0.5 * fw,
			Y:      (1 - ndcY) * 0.5 * fh, // Y is flipped
			Z:      ndcZ,
			InvW:   invW,
			Normal: tri.V[i].Normal,
			Color:  tri.V[i].Color,
		}
	}

	// Signed doubled area of the screen triangle. Positive means
	// counter-clockwise in screen space (front-facing).
	area := edgeFunction(
		st.V[0].X, st.V[0].Y,
		st.V[1].X, st.V[1].Y,
		st.V[2].X, st.V[2].Y,
	)

	if area > -degenerateAreaEps && area < degenerateAreaEps {
		return dst
	}

	if area < 0 {
		if c.BackfaceCulling && tri.Mode != scene.ModeWireframe {
			return dst
		}
		// Normalize winding so the rasterizer sees CCW triangles.
		st.V[1], st.V[2] = st.V[2], st.V[1]
	}

	return append(dst, st)
}

// edgeFunction returns the signed doubled area of triangle (a, b, c), which
// is also the edge function of edge ab evaluated at c.
func edgeFunction(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}
