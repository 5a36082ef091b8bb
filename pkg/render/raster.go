package render

import (
	"math"

	"github.com/hexlade/facet/pkg/scene"
)

// DefaultFixedPointBits is the fractional bit count for the fixed-point
// render mode: coordinates snap to a 1/16 pixel grid.
const DefaultFixedPointBits = 4

// edgeCoeffs returns A, B, C coefficients for the edge function
// edge(x,y) = A*x + B*y + C along the directed edge (x0,y0) -> (x1,y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates an edge function at point (x, y).
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// Rasterizer fills screen-space triangles into a chunk of the depth buffer
// and G-Buffer. It carries no per-frame state, so one instance is shared by
// all chunk workers.
type Rasterizer struct {
	// FixedPointBits is the fractional precision of the fixed-point render
	// mode. Zero means DefaultFixedPointBits.
	FixedPointBits int

	// FlatNormals writes the face normal instead of interpolated vertex
	// normals, matching the flat shading model downstream.
	FlatNormals bool
}

// RasterizeChunk rasterizes every triangle into the rows owned by chunk.
// Each worker calls this with a distinct chunk, so no locking is needed:
// a pixel belongs to exactly one chunk.
func (r *Rasterizer) RasterizeChunk(t *Target, gb *GBuffer, chunk Chunk, tris []ScreenTriangle) {
	for i := range tris {
		tri := &tris[i]
		switch tri.Mode {
		case scene.ModeWireframe:
			r.wireTriangle(t, gb, chunk, tri)
		case scene.ModeFixedPoint:
			q := *tri
			r.quantize(&q)
			r.fillTriangle(t, gb, chunk, &q)
		default:
			r.fillTriangle(t, gb, chunk, tri)
		}
	}
}

// quantize snaps screen coordinates and depth to the fixed-point grid.
func (r *Rasterizer) quantize(tri *ScreenTriangle) {
	bits := r.FixedPointBits
	if bits <= 0 {
		bits = DefaultFixedPointBits
	}
	step := float64(int(1) << bits)
	for i := range tri.V {
		tri.V[i].X = math.Floor(tri.V[i].X*step) / step
		tri.V[i].Y = math.Floor(tri.V[i].Y*step) / step
		tri.V[i].Z = math.Floor(tri.V[i].Z*step) / step
	}
}

// fillTriangle rasterizes one triangle with incremental edge functions,
// restricted to the chunk's rows. Vertices arrive counter-clockwise from the
// clipper, so all three edge functions are >= 0 inside.
func (r *Rasterizer) fillTriangle(t *Target, gb *GBuffer, chunk Chunk, tri *ScreenTriangle) {
	sv := &tri.V

	// Signed doubled area; the clipper guarantees it is positive and
	// non-degenerate, but quantization can collapse a sliver.
	area2 := edgeFunction(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	if area2 <= 0 {
		return
	}
	invArea := 1.0 / area2

	// Bounding box clamped to the screen and to this chunk's rows.
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(t.Width-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(float64(chunk.Y0), math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(chunk.Y1-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	A1, B1, C1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	A2, B2, C2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	// Evaluate edge functions at the center of the top-left pixel, then
	// step incrementally: +A per column, +B per row.
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5

	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	width := t.Width
	depth := t.Depth

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc0 := w0 * invArea
				bc1 := w1 * invArea
				bc2 := w2 * invArea

				// Depth interpolates affinely in screen space.
				z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z

				// Strict less-than: ties keep the incumbent fragment, which
				// makes output independent of triangle submission races.
				idx := rowOffset + x
				if z < depth[idx] {
					depth[idx] = z

					// Perspective-correct attribute interpolation.
					pw0 := bc0 * sv[0].InvW
					pw1 := bc1 * sv[1].InvW
					pw2 := bc2 * sv[2].InvW
					oneOverW := pw0 + pw1 + pw2
					if oneOverW != 0 {
						k := 1.0 / oneOverW
						pw0 *= k
						pw1 *= k
						pw2 *= k
					}

					gb.Albedo[idx] = scene.ColorF{
						R: pw0*sv[0].Color.R + pw1*sv[1].Color.R + pw2*sv[2].Color.R,
						G: pw0*sv[0].Color.G + pw1*sv[1].Color.G + pw2*sv[2].Color.G,
						B: pw0*sv[0].Color.B + pw1*sv[1].Color.B + pw2*sv[2].Color.B,
					}
					if r.FlatNormals {
						gb.Normal[idx] = tri.FaceNormal
					} else {
						gb.Normal[idx] = sv[0].Normal.Scale(pw0).
							Add(sv[1].Normal.Scale(pw1)).
							Add(sv[2].Normal.Scale(pw2))
					}
					gb.Material[idx] = tri.Material
					gb.Flags[idx] = 0
				}
			}

			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// wireTriangle draws the three edges of a triangle as depth-tested lines.
// Wireframe fragments are flagged unlit so the shading pass passes their
// color through unchanged.
func (r *Rasterizer) wireTriangle(t *Target, gb *GBuffer, chunk Chunk, tri *ScreenTriangle) {
	r.depthLine(t, gb, chunk, tri.V[0], tri.V[1], tri.Material)
	r.depthLine(t, gb, chunk, tri.V[1], tri.V[2], tri.Material)
	r.depthLine(t, gb, chunk, tri.V[2], tri.V[0], tri.Material)
}

// depthLine draws a Bresenham line between two screen vertices with linearly
// interpolated depth, writing only rows owned by the chunk.
func (r *Rasterizer) depthLine(t *Target, gb *GBuffer, chunk Chunk, a, b ScreenVertex, mat *scene.Material) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	steps := dx - dy // total Manhattan-ish step count, >= 0
	if steps == 0 {
		steps = 1
	}
	step := 0

	width := t.Width
	for {
		if x0 >= 0 && x0 < width && y0 >= chunk.Y0 && y0 < chunk.Y1 {
			f := float64(step) / float64(steps)
			z := a.Z + (b.Z-a.Z)*f
			idx := y0*width + x0
			if z < t.Depth[idx] {
				t.Depth[idx] = z
				gb.Albedo[idx] = a.Color.Lerp(b.Color, f)
				gb.Normal[idx] = a.Normal
				gb.Material[idx] = mat
				gb.Flags[idx] = FlagUnlit
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
			step++
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
			step++
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
