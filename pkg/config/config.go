// Package config loads renderer settings from a YAML file and applies
// defaults for anything left unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hexlade/facet/pkg/scene"
)

// Config is the top-level renderer configuration.
type Config struct {
	// Width and Height of the render target in pixels. Zero means derive
	// from the terminal size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Chunks is the number of horizontal bands the frame is split into for
	// parallel rasterization. Zero means one per worker.
	Chunks int `yaml:"chunks"`

	// Workers bounds render concurrency. Zero means all CPUs.
	Workers int `yaml:"workers"`

	// FPS is the target frame rate for interactive viewers.
	FPS int `yaml:"fps"`

	// Shading selects the lighting model: blinn-phong, flat, or none.
	Shading string `yaml:"shading"`

	// FixedPointBits is the fractional precision of the fixed-point render
	// mode.
	FixedPointBits int `yaml:"fixed_point_bits"`

	// BackfaceCulling drops triangles facing away from the camera.
	BackfaceCulling *bool `yaml:"backface_culling"`

	// BakeNormals renders normals as colors instead of lighting the scene.
	BakeNormals bool `yaml:"bake_normals"`

	// Background color components in 0..1.
	Background [3]float64 `yaml:"background"`

	// Ambient is the global ambient light level in 0..1.
	Ambient float64 `yaml:"ambient"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	on := true
	return Config{
		FPS:             60,
		Shading:         "blinn-phong",
		FixedPointBits:  4,
		BackfaceCulling: &on,
		Background:      [3]float64{0.12, 0.12, 0.16},
		Ambient:         0.1,
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: negative resolution %dx%d", c.Width, c.Height)
	}
	if c.Chunks < 0 {
		return fmt.Errorf("config: negative chunk count %d", c.Chunks)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: negative worker count %d", c.Workers)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.FixedPointBits < 1 || c.FixedPointBits > 16 {
		return fmt.Errorf("config: fixed_point_bits %d out of range 1..16", c.FixedPointBits)
	}
	if _, err := c.ShadingModel(); err != nil {
		return err
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: background[%d] = %v out of range 0..1", i, v)
		}
	}
	if c.Ambient < 0 || c.Ambient > 1 {
		return fmt.Errorf("config: ambient %v out of range 0..1", c.Ambient)
	}
	return nil
}

// ShadingModel maps the shading string onto the scene enum.
func (c *Config) ShadingModel() (scene.ShadingModel, error) {
	switch c.Shading {
	case "", "blinn-phong":
		return scene.ShadeBlinnPhong, nil
	case "flat":
		return scene.ShadeFlat, nil
	case "none":
		return scene.ShadeNone, nil
	}
	return 0, fmt.Errorf("config: unknown shading model %q", c.Shading)
}

// BackgroundColor returns the background as a scene color.
func (c *Config) BackgroundColor() scene.ColorF {
	return scene.CF(c.Background[0], c.Background[1], c.Background[2])
}

// Culling returns the backface culling setting with its default applied.
func (c *Config) Culling() bool {
	if c.BackfaceCulling == nil {
		return true
	}
	return *c.BackfaceCulling
}
