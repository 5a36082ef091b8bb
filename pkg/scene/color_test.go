package scene

import (
	"image/color"
	"testing"
)

func TestColorFOps(t *testing.T) {
	a := CF(0.5, 0.25, 1)
	b := CF(0.5, 0.5, 0.5)

	if got := a.Add(b); got != CF(1, 0.75, 1.5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Mul(b); got != CF(0.25, 0.125, 0.5) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != CF(1, 0.5, 2) {
		t.Errorf("Scale = %v", got)
	}
	if got := Black.Lerp(White, 0.5); got != CF(0.5, 0.5, 0.5) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestColorFRGBAClamps(t *testing.T) {
	tests := []struct {
		name string
		in   ColorF
		want color.RGBA
	}{
		{"white", White, color.RGBA{255, 255, 255, 255}},
		{"black", Black, color.RGBA{0, 0, 0, 255}},
		{"overbright", CF(2, 1.5, 1.1), color.RGBA{255, 255, 255, 255}},
		{"negative", CF(-1, -0.5, 0), color.RGBA{0, 0, 0, 255}},
		{"mid gray rounds", CF(0.5, 0.5, 0.5), color.RGBA{128, 128, 128, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.RGBA(); got != tc.want {
				t.Errorf("RGBA() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestColorFRoundTrip(t *testing.T) {
	orig := color.RGBA{10, 128, 250, 255}
	if got := FromRGBA(orig).RGBA(); got != orig {
		t.Errorf("round trip = %v, want %v", got, orig)
	}
}
