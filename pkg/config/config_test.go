package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexlade/facet/pkg/scene"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.Culling() {
		t.Error("backface culling should default to on")
	}
	model, err := cfg.ShadingModel()
	if err != nil {
		t.Fatal(err)
	}
	if model != scene.ShadeBlinnPhong {
		t.Errorf("shading = %v, want blinn-phong", model)
	}
}

func TestLoad(t *testing.T) {
	path := writeTemp(t, `
width: 320
height: 180
chunks: 8
shading: flat
backface_culling: false
background: [0.0, 0.0, 0.0]
ambient: 0.25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Width != 320 || cfg.Height != 180 {
		t.Errorf("resolution = %dx%d, want 320x180", cfg.Width, cfg.Height)
	}
	if cfg.Chunks != 8 {
		t.Errorf("chunks = %d, want 8", cfg.Chunks)
	}
	if cfg.Culling() {
		t.Error("backface culling should be off")
	}
	model, _ := cfg.ShadingModel()
	if model != scene.ShadeFlat {
		t.Errorf("shading = %v, want flat", model)
	}
	if cfg.Ambient != 0.25 {
		t.Errorf("ambient = %v, want 0.25", cfg.Ambient)
	}
	// Unset fields keep defaults.
	if cfg.FPS != 60 {
		t.Errorf("fps = %d, want default 60", cfg.FPS)
	}
	if cfg.FixedPointBits != 4 {
		t.Errorf("fixed_point_bits = %d, want default 4", cfg.FixedPointBits)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/facet.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad shading", func(c *Config) { c.Shading = "phong2" }},
		{"background out of range", func(c *Config) { c.Background[1] = 1.5 }},
		{"ambient out of range", func(c *Config) { c.Ambient = -0.1 }},
		{"fixed point bits too high", func(c *Config) { c.FixedPointBits = 32 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
