package scene

import (
	"math"
	"testing"

	"github.com/hexlade/facet/pkg/math3d"
)

func vecAlmostEqual(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestCameraDefaultsLookDownNegativeZ(t *testing.T) {
	c := NewCamera()

	if !vecAlmostEqual(c.Forward(), math3d.V3(0, 0, -1)) {
		t.Errorf("Forward = %v, want -Z", c.Forward())
	}
	if !vecAlmostEqual(c.Right(), math3d.V3(1, 0, 0)) {
		t.Errorf("Right = %v, want +X", c.Right())
	}
	if !vecAlmostEqual(c.Up(), math3d.V3(0, 1, 0)) {
		t.Errorf("Up = %v, want +Y", c.Up())
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewCamera()
	c.SetPosition(math3d.V3(0, 5, 5))
	c.LookAt(math3d.V3(0, 0, 0))

	want := math3d.V3(0, -5, -5).Normalize()
	if !vecAlmostEqual(c.Forward(), want) {
		t.Errorf("Forward after LookAt = %v, want %v", c.Forward(), want)
	}
}

func TestCameraViewMatrixCentersTarget(t *testing.T) {
	c := NewCamera()
	c.SetPosition(math3d.V3(3, 2, 8))
	c.LookAt(math3d.V3(0, 0, 0))

	// The looked-at point lands on the view-space -Z axis at the right
	// distance.
	v := c.ViewMatrix().MulVec3(math3d.V3(0, 0, 0))
	dist := math3d.V3(3, 2, 8).Len()
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y) > 1e-9 || math.Abs(v.Z+dist) > 1e-9 {
		t.Errorf("target in view space = %v, want (0, 0, -%v)", v, dist)
	}
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(10, 0, 0) // way past straight up

	if c.Pitch >= math.Pi/2 {
		t.Errorf("pitch = %v, want clamped below pi/2", c.Pitch)
	}
	c.Rotate(-20, 0, 0)
	if c.Pitch <= -math.Pi/2 {
		t.Errorf("pitch = %v, want clamped above -pi/2", c.Pitch)
	}
}

func TestWorldToScreen(t *testing.T) {
	c := NewCamera() // at (0, 0, 5) looking down -Z
	c.SetAspectRatio(1)

	t.Run("center point", func(t *testing.T) {
		x, y, depth, visible := c.WorldToScreen(math3d.V3(0, 0, 0), 100, 100)
		if !visible {
			t.Fatal("origin should be visible")
		}
		if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
			t.Errorf("screen = (%v, %v), want (50, 50)", x, y)
		}
		if depth <= -1 || depth >= 1 {
			t.Errorf("depth = %v, want inside (-1, 1)", depth)
		}
	})

	t.Run("behind camera", func(t *testing.T) {
		if _, _, _, visible := c.WorldToScreen(math3d.V3(0, 0, 10), 100, 100); visible {
			t.Error("point behind the camera should not be visible")
		}
	})

	t.Run("above the view", func(t *testing.T) {
		if _, _, _, visible := c.WorldToScreen(math3d.V3(0, 100, 0), 100, 100); visible {
			t.Error("point far above the frustum should not be visible")
		}
	})

	t.Run("y axis points up on screen", func(t *testing.T) {
		_, y, _, visible := c.WorldToScreen(math3d.V3(0, 1, 0), 100, 100)
		if !visible {
			t.Fatal("point should be visible")
		}
		if y >= 50 {
			t.Errorf("screen y = %v for a point above center, want < 50", y)
		}
	})
}

func TestCameraMatrixCacheInvalidation(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()

	c.SetPosition(math3d.V3(1, 0, 5))
	after := c.ViewProjectionMatrix()

	if before == after {
		t.Error("moving the camera must invalidate the cached view-projection")
	}

	c.SetFOV(math.Pi / 4)
	if c.ViewProjectionMatrix() == after {
		t.Error("changing FOV must invalidate the cached view-projection")
	}
}

func TestCameraMoveForward(t *testing.T) {
	c := NewCamera()
	c.MoveForward(2)

	if !vecAlmostEqual(c.Position, math3d.V3(0, 0, 3)) {
		t.Errorf("position = %v, want (0, 0, 3)", c.Position)
	}
}
