// Package render implements the facet software rasterization pipeline:
// vertex transformation, frustum clipping, chunked parallel rasterization,
// G-Buffer shading, and the depth/color buffer lifecycle.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Maximum supported output resolution. Anything larger is a configuration
// error reported at allocation time, never mid-frame.
const (
	MaxWidth  = 1920
	MaxHeight = 1080
)

// Chunk is a disjoint horizontal band of the output buffers, the unit of
// parallel ownership during rasterization. Exactly one worker writes to the
// rows [Y0, Y1) of a chunk; chunks never overlap.
type Chunk struct {
	Index int
	Y0    int // First row (inclusive)
	Y1    int // Last row (exclusive)
}

// Target owns the per-frame color and depth buffers and their chunk
// partition. It is allocated once per resolution; the partition is computed
// at construction, not per frame.
type Target struct {
	Width  int
	Height int
	Color  []color.RGBA // Row-major color cells
	Depth  []float64    // Parallel depth buffer, +Inf means empty

	chunks []Chunk
}

// NewTarget allocates buffers for the given resolution, partitioned into
// chunkCount disjoint row bands. Returns an error for invalid or oversized
// dimensions.
func NewTarget(width, height, chunkCount int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid resolution %dx%d", width, height)
	}
	if width > MaxWidth || height > MaxHeight {
		return nil, fmt.Errorf("render: resolution %dx%d exceeds maximum %dx%d", width, height, MaxWidth, MaxHeight)
	}
	if chunkCount < 1 {
		return nil, fmt.Errorf("render: chunk count %d < 1", chunkCount)
	}
	if chunkCount > height {
		chunkCount = height
	}

	t := &Target{
		Width:  width,
		Height: height,
		Color:  make([]color.RGBA, width*height),
		Depth:  make([]float64, width*height),
	}
	t.chunks = partitionRows(height, chunkCount)
	return t, nil
}

// partitionRows splits height rows into n bands whose sizes differ by at
// most one row. Every row belongs to exactly one band.
func partitionRows(height, n int) []Chunk {
	chunks := make([]Chunk, 0, n)
	base := height / n
	extra := height % n
	y := 0
	for i := 0; i < n; i++ {
		rows := base
		if i < extra {
			rows++
		}
		chunks = append(chunks, Chunk{Index: i, Y0: y, Y1: y + rows})
		y += rows
	}
	return chunks
}

// Chunks returns the chunk partition. The slice is shared; callers must not
// modify it.
func (t *Target) Chunks() []Chunk {
	return t.chunks
}

// Clear resets the color buffer to the background color and the depth
// buffer to +Inf. Call at the start of each frame.
func (t *Target) Clear(bg color.RGBA) {
	// Copy-doubling is faster than a plain loop for large buffers.
	if len(t.Color) == 0 {
		return
	}
	t.Color[0] = bg
	for i := 1; i < len(t.Color); i *= 2 {
		copy(t.Color[i:], t.Color[:i])
	}
	t.Depth[0] = math.Inf(1)
	for i := 1; i < len(t.Depth); i *= 2 {
		copy(t.Depth[i:], t.Depth[:i])
	}
}

// SetPixel sets the color at (x, y) with bounds checking.
func (t *Target) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Color[y*t.Width+x] = c
}

// Pixel returns the color at (x, y), or zero if out of bounds.
func (t *Target) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return color.RGBA{}
	}
	return t.Color[y*t.Width+x]
}

// DepthAt returns the depth at (x, y), or +Inf if out of bounds.
func (t *Target) DepthAt(x, y int) float64 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return math.Inf(1)
	}
	return t.Depth[y*t.Width+x]
}

// DrawLine draws a 2D line with Bresenham's algorithm, no depth testing.
// Used for debug overlays; depth-tested wireframe lines live in the
// rasterizer.
func (t *Target) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
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
	err := dx + dy

	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the color buffer to a standard Go image.RGBA.
func (t *Target) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			img.SetRGBA(x, y, t.Color[y*t.Width+x])
		}
	}
	return img
}

// SavePNG saves the color buffer as a PNG file.
func (t *Target) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, t.ToImage())
}
