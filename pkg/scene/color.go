// Package scene provides the data model read by the facet render pipeline:
// meshes, materials, entities, lights, the camera, and the scene root.
package scene

import "image/color"

// ColorF is a floating-point RGB color in the 0..1 range, used for all
// lighting math. Conversion to 8-bit color happens at the framebuffer write.
type ColorF struct {
	R, G, B float64
}

// CF creates a ColorF.
func CF(r, g, b float64) ColorF {
	return ColorF{r, g, b}
}

// Common colors.
var (
	White    = ColorF{1, 1, 1}
	Black    = ColorF{0, 0, 0}
	DarkGray = ColorF{0.2, 0.2, 0.2}
	Red      = ColorF{1, 0, 0}
	Green    = ColorF{0, 1, 0}
	Blue     = ColorF{0, 0, 1}
)

// Add returns the component-wise sum a + b.
func (a ColorF) Add(b ColorF) ColorF {
	return ColorF{a.R + b.R, a.G + b.G, a.B + b.B}
}

// Mul returns the component-wise product a * b (color modulation).
func (a ColorF) Mul(b ColorF) ColorF {
	return ColorF{a.R * b.R, a.G * b.G, a.B * b.B}
}

// Scale returns the scalar product a * s.
func (a ColorF) Scale(s float64) ColorF {
	return ColorF{a.R * s, a.G * s, a.B * s}
}

// Lerp returns the linear interpolation between a and b by t.
func (a ColorF) Lerp(b ColorF, t float64) ColorF {
	return ColorF{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
	}
}

// Clamped returns the color with each component clamped to [0, 1].
func (a ColorF) Clamped() ColorF {
	return ColorF{clamp01(a.R), clamp01(a.G), clamp01(a.B)}
}

// RGBA converts to an opaque 8-bit color, clamping first.
func (a ColorF) RGBA() color.RGBA {
	c := a.Clamped()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

// FromRGBA converts an 8-bit color to ColorF, ignoring alpha.
func FromRGBA(c color.RGBA) ColorF {
	return ColorF{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
