package scene

import (
	"math"
	"testing"

	"github.com/hexlade/facet/pkg/math3d"
)

func TestAttenuation(t *testing.T) {
	l := NewPoint(math3d.Zero3(), 1, 0.09, 0.032)

	tests := []struct {
		name string
		d    float64
		want float64
	}{
		{"at the light", 0, 1},
		{"distance 1", 1, 1 / 1.122},
		{"distance 10", 10, 1 / (1 + 0.9 + 3.2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.Attenuation(tc.d); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Attenuation(%v) = %v, want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestAttenuationNeverAmplifies(t *testing.T) {
	// A degenerate attenuation setup must not brighten the light: the
	// denominator is clamped to 1.
	l := NewPoint(math3d.Zero3(), 0.1, 0, 0)
	if got := l.Attenuation(0.5); got > 1 {
		t.Errorf("Attenuation = %v, want <= 1", got)
	}
}

func TestLightConstructors(t *testing.T) {
	dir := NewDirectional(math3d.V3(0, -2, 0), White, 0.7)
	if dir.Kind != Directional {
		t.Errorf("kind = %v, want Directional", dir.Kind)
	}
	if math.Abs(dir.Direction.Len()-1) > 1e-9 {
		t.Error("direction not normalized")
	}
	if dir.Intensity != 0.7 {
		t.Errorf("intensity = %v, want 0.7", dir.Intensity)
	}

	pt := EasyPoint(math3d.V3(1, 2, 3))
	if pt.Kind != Point {
		t.Errorf("kind = %v, want Point", pt.Kind)
	}
	if pt.Constant != 1 || pt.Linear != 0.09 || pt.Quadratic != 0.032 {
		t.Errorf("attenuation = (%v, %v, %v)", pt.Constant, pt.Linear, pt.Quadratic)
	}

	spot := DefaultSpot(math3d.V3(0, 3, 0))
	if spot.Kind != Spot {
		t.Errorf("kind = %v, want Spot", spot.Kind)
	}
	if spot.InnerCutoff != 0.9 || spot.OuterCutoff != 0.85 {
		t.Errorf("cutoffs = (%v, %v), want (0.9, 0.85)", spot.InnerCutoff, spot.OuterCutoff)
	}
	if spot.InnerCutoff < spot.OuterCutoff {
		t.Error("inner cutoff cosine must be >= outer")
	}
}

func TestOrbit(t *testing.T) {
	l := EasyPoint(math3d.V3(2, 1.5, 0))
	l.Orbit(math3d.Zero3(), 2, 1, math.Pi/2)

	// A quarter turn at radius 2 from angle 0 lands on the Z axis; height is
	// untouched.
	if math.Abs(l.Position.X) > 1e-9 || math.Abs(l.Position.Z-2) > 1e-9 {
		t.Errorf("position = %v, want (0, 1.5, 2)", l.Position)
	}
	if l.Position.Y != 1.5 {
		t.Errorf("orbit changed the height: %v", l.Position.Y)
	}
}

func TestOrbitOnlyMovesPointLights(t *testing.T) {
	l := DefaultSpot(math3d.V3(0, 3, 0))
	before := l.Position
	l.Orbit(math3d.Zero3(), 2, 1, 0.5)
	if l.Position != before {
		t.Error("Orbit must not move a spot light")
	}
}
