package scene

import (
	"math"
	"testing"

	"github.com/hexlade/facet/pkg/math3d"
)

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity(nil)
	if e.Scale != math3d.V3(1, 1, 1) {
		t.Errorf("scale = %v, want unit", e.Scale)
	}
	if e.Mode != ModeSolid {
		t.Errorf("mode = %v, want solid", e.Mode)
	}
}

func TestModelMatrixComposition(t *testing.T) {
	e := NewEntity(nil)
	e.Position = math3d.V3(10, 0, 0)
	e.Rotation = math3d.V3(0, math.Pi/2, 0)
	e.Scale = math3d.V3(2, 2, 2)

	// Scale first, rotate second, translate last: (1, 0, 0) scales to
	// (2, 0, 0), rotates around Y to (0, 0, -2), then shifts to (10, 0, -2).
	got := e.ModelMatrix().MulVec3(math3d.V3(1, 0, 0))
	if !vecAlmostEqual(got, math3d.V3(10, 0, -2)) {
		t.Errorf("transformed point = %v, want (10, 0, -2)", got)
	}
}

func TestEntityRotate(t *testing.T) {
	e := NewEntity(nil)
	e.Rotate(0.1, 0.2, 0.3)
	e.Rotate(0.1, 0, 0)

	if !vecAlmostEqual(e.Rotation, math3d.V3(0.2, 0.2, 0.3)) {
		t.Errorf("rotation = %v", e.Rotation)
	}
}

func TestRenderModeString(t *testing.T) {
	if ModeSolid.String() != "solid" || ModeWireframe.String() != "wireframe" || ModeFixedPoint.String() != "fixedpoint" {
		t.Error("unexpected render mode names")
	}
}
