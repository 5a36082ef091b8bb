package math3d

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVec2Ops(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, 2)

	if got := a.Add(b); got != V2(4, 6) {
		t.Errorf("Add = %v, want (4, 6)", got)
	}
	if got := a.Sub(b); got != V2(2, 2) {
		t.Errorf("Sub = %v, want (2, 2)", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := a.Len(); !almostEqual(got, 5) {
		t.Errorf("Len = %v, want 5", got)
	}

	n := a.Normalize()
	if !almostEqual(n.Len(), 1) {
		t.Errorf("Normalize length = %v, want 1", n.Len())
	}
}

func TestVec2CrossSign(t *testing.T) {
	// Cross of +X with +Y is positive (counter-clockwise).
	if got := V2(1, 0).Cross(V2(0, 1)); got <= 0 {
		t.Errorf("Cross(+X, +Y) = %v, want > 0", got)
	}
	if got := V2(0, 1).Cross(V2(1, 0)); got >= 0 {
		t.Errorf("Cross(+Y, +X) = %v, want < 0", got)
	}
}

func TestVec4Lerp(t *testing.T) {
	a := V4(0, 0, 0, 1)
	b := V4(2, 4, 6, 3)

	mid := a.Lerp(b, 0.5)
	want := V4(1, 2, 3, 2)
	if mid != want {
		t.Errorf("Lerp(0.5) = %v, want %v", mid, want)
	}
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Error("Lerp endpoints do not match inputs")
	}
}

func TestInverseTranspose(t *testing.T) {
	// For a pure rotation the inverse-transpose equals the original.
	rot := RotateY(0.7)
	it := rot.InverseTranspose()
	for i := range rot {
		if !almostEqual(rot[i], it[i]) {
			t.Fatalf("element %d: rotation inverse-transpose %v != %v", i, it[i], rot[i])
		}
	}

	// Non-uniform scale: a normal on a stretched surface must be corrected.
	// Scale (2, 1, 1) applied to plane normal (1, 0, 0) keeps direction but
	// the inverse-transpose halves the magnitude.
	m := Scale(V3(2, 1, 1))
	n := m.InverseTranspose().MulVec3Dir(V3(1, 0, 0))
	if !almostEqual(n.X, 0.5) || !almostEqual(n.Y, 0) || !almostEqual(n.Z, 0) {
		t.Errorf("corrected normal = %v, want (0.5, 0, 0)", n)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2)
	got := v.PerspectiveDivide()
	if got != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v, want (1, 2, 3)", got)
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Translate(V3(1, -2, 3)).Mul(RotateX(0.4)).Mul(Scale(V3(2, 3, 4)))
	id := m.Mul(m.Inverse())

	want := Identity()
	for i := range id {
		if math.Abs(id[i]-want[i]) > 1e-9 {
			t.Fatalf("element %d of M * M^-1 = %v, want %v", i, id[i], want[i])
		}
	}
}
