package scene

import (
	"math"

	"github.com/hexlade/facet/pkg/math3d"
)

// LightKind discriminates the light variants. Dispatch is a single switch
// per light in the shading pass, not dynamic dispatch.
type LightKind int

const (
	// Directional light: constant direction, no attenuation.
	Directional LightKind = iota
	// Point light: position plus distance attenuation.
	Point
	// Spot light: position, cone direction, angular falloff, attenuation.
	Spot
)

// Light is a tagged union over {Directional, Point, Spot}. Only the fields
// relevant to Kind are meaningful.
type Light struct {
	Kind      LightKind
	Color     ColorF
	Intensity float64 // Scalar multiplier, expected in 0..1

	Direction math3d.Vec3 // Directional, Spot: the vector the light travels along
	Position  math3d.Vec3 // Point, Spot

	// Attenuation: 1 / (Constant + Linear*d + Quadratic*d^2), Point and Spot.
	Constant  float64
	Linear    float64
	Quadratic float64

	// Spot cone cosines: full intensity inside InnerCutoff, dark beyond
	// OuterCutoff, smooth falloff between. Stored as cosines so the shading
	// pass compares dot products directly.
	InnerCutoff float64
	OuterCutoff float64
}

// NewDirectional creates a directional light traveling along dir.
func NewDirectional(dir math3d.Vec3, color ColorF, intensity float64) Light {
	return Light{
		Kind:      Directional,
		Direction: dir.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// DirAbove is a white directional light shining straight down.
func DirAbove() Light {
	return NewDirectional(math3d.V3(0, -1, 0), White, 1)
}

// NewPoint creates a point light with explicit attenuation factors.
func NewPoint(pos math3d.Vec3, constant, linear, quadratic float64) Light {
	return Light{
		Kind:      Point,
		Position:  pos,
		Color:     White,
		Intensity: 1,
		Constant:  constant,
		Linear:    linear,
		Quadratic: quadratic,
	}
}

// EasyPoint creates a point light with gentle default attenuation.
func EasyPoint(pos math3d.Vec3) Light {
	return NewPoint(pos, 1, 0.09, 0.032)
}

// NewSpot creates a spot light. innerCutoff and outerCutoff are cone-angle
// cosines, inner >= outer.
func NewSpot(pos, dir math3d.Vec3, innerCutoff, outerCutoff float64) Light {
	return Light{
		Kind:        Spot,
		Position:    pos,
		Direction:   dir.Normalize(),
		Color:       White,
		Intensity:   1,
		Constant:    1,
		Linear:      0.09,
		Quadratic:   0.032,
		InnerCutoff: innerCutoff,
		OuterCutoff: outerCutoff,
	}
}

// DefaultSpot is a downward spot with the stock cone (cos 0.9 / 0.85).
func DefaultSpot(pos math3d.Vec3) Light {
	return NewSpot(pos, math3d.V3(0, -1, 0), 0.9, 0.85)
}

// Attenuation returns the distance falloff factor at distance d.
// The denominator is clamped to 1 so a light never amplifies.
func (l Light) Attenuation(d float64) float64 {
	denom := l.Constant + l.Linear*d + l.Quadratic*d*d
	if denom < 1 {
		denom = 1
	}
	return 1 / denom
}

// Orbit moves a point light on a circle around center in the XZ plane.
func (l *Light) Orbit(center math3d.Vec3, radius, speed, delta float64) {
	if l.Kind != Point {
		return
	}
	angle := math.Atan2(l.Position.Z-center.Z, l.Position.X-center.X) + speed*delta
	l.Position.X = center.X + radius*math.Cos(angle)
	l.Position.Z = center.Z + radius*math.Sin(angle)
}
