package render

import (
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// Fragment flags stored per pixel in the G-Buffer.
const (
	// FlagUnlit marks a fragment that bypasses the lighting pass (wireframe
	// edges, baked-normal debug output).
	FlagUnlit uint8 = 1 << 0
	// FlagFlat forces flat shading for this fragment regardless of the
	// scene-wide shading model.
	FlagFlat uint8 = 1 << 1
)

// GBuffer holds per-pixel geometry attributes between the rasterization and
// shading passes. Depth lives in the Target; a pixel with depth +Inf was not
// touched this frame and its G-Buffer entries are stale.
//
// World position is not stored: the shading pass reconstructs it from screen
// coordinates and depth through the inverse view-projection matrix.
type GBuffer struct {
	Width  int
	Height int

	Albedo   []scene.ColorF
	Normal   []math3d.Vec3 // World space
	Material []*scene.Material
	Flags    []uint8
}

// NewGBuffer allocates a G-Buffer matching the target resolution.
func NewGBuffer(width, height int) *GBuffer {
	n := width * height
	return &GBuffer{
		Width:    width,
		Height:   height,
		Albedo:   make([]scene.ColorF, n),
		Normal:   make([]math3d.Vec3, n),
		Material: make([]*scene.Material, n),
		Flags:    make([]uint8, n),
	}
}

// Clear drops material pointers and flags from the previous frame. Albedo
// and normals are left stale; the depth buffer gates every read of them.
func (g *GBuffer) Clear() {
	clear(g.Material)
	clear(g.Flags)
}
