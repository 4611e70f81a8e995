// Package config holds the application settings and loads them from TOML or YAML files.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/ascii3d/mesh"
	"github.com/lixenwraith/ascii3d/projection"
)

// Backend names
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Vec3 is a config-friendly vector
type Vec3 struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// Config is the full application configuration
type Config struct {
	Display  Display           `toml:"display" yaml:"display"`
	Render   Render            `toml:"render" yaml:"render"`
	Lighting Lighting          `toml:"lighting" yaml:"lighting"`
	Controls Controls          `toml:"controls" yaml:"controls"`
	Audio    Audio             `toml:"audio" yaml:"audio"`
	Keys     map[string]string `toml:"keys" yaml:"keys"`
}

// Display covers the terminal side
type Display struct {
	Backend    string `toml:"backend" yaml:"backend"`
	FPS        int    `toml:"fps" yaml:"fps"`
	HUD        bool   `toml:"hud" yaml:"hud"`
	Background string `toml:"background" yaml:"background"` // single character
}

// Render covers geometry and projection
type Render struct {
	Shape      string  `toml:"shape" yaml:"shape"`
	Size       float64 `toml:"size" yaml:"size"`   // object scale
	Depth      float64 `toml:"depth" yaml:"depth"` // object distance in front of the camera
	Projection string  `toml:"projection" yaml:"projection"`
	FOV        float64 `toml:"fov" yaml:"fov"`           // perspective focal length in rows, 0 = fit viewport
	Distance   float64 `toml:"distance" yaml:"distance"` // perspective camera offset
	Scale      float64 `toml:"scale" yaml:"scale"`       // orthographic scale, 0 = fit viewport
	Aspect     float64 `toml:"aspect" yaml:"aspect"`     // cell height/width
}

// Lighting covers the shader
type Lighting struct {
	Light   Vec3    `toml:"light" yaml:"light"`
	Ambient float64 `toml:"ambient" yaml:"ambient"`
	Ramp    string  `toml:"ramp" yaml:"ramp"` // darkest to brightest
	// Invert reverses the ramp on light-background terminals
	Invert string `toml:"invert" yaml:"invert"` // auto, always, never
}

// Controls covers interactive behavior
type Controls struct {
	Step     float64 `toml:"step" yaml:"step"` // degrees per key press
	Spin     bool    `toml:"spin" yaml:"spin"`
	SpinRate Vec3    `toml:"spin_rate" yaml:"spin_rate"` // degrees per frame
	Zoom     float64 `toml:"zoom" yaml:"zoom"`
	ZoomStep float64 `toml:"zoom_step" yaml:"zoom_step"`
}

// Audio covers sound cues
type Audio struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Volume  float64 `toml:"volume" yaml:"volume"` // 0..1
}

// Invert modes
const (
	InvertAuto   = "auto"
	InvertAlways = "always"
	InvertNever  = "never"
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Display: Display{
			Backend:    BackendANSI,
			FPS:        30,
			HUD:        true,
			Background: " ",
		},
		Render: Render{
			Shape:      mesh.KindCube.String(),
			Size:       20,
			Depth:      60,
			Projection: projection.ModePerspective.String(),
			Aspect:     2,
		},
		Lighting: Lighting{
			Light:   Vec3{X: 0, Y: 0, Z: -50},
			Ambient: 0.2,
			Ramp:    " .:-=+*#%@",
			Invert:  InvertAuto,
		},
		Controls: Controls{
			Step:     10,
			Spin:     true,
			SpinRate: Vec3{X: 4, Y: 10},
			Zoom:     1,
			ZoomStep: 1.1,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch c.Display.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("display.backend: unknown backend %q", c.Display.Backend)
	}
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("display.fps: %d out of range [1,240]", c.Display.FPS)
	}
	if utf8.RuneCountInString(c.Display.Background) != 1 {
		return fmt.Errorf("display.background: want one character, got %q", c.Display.Background)
	}

	if _, err := mesh.ParseKind(c.Render.Shape); err != nil {
		return fmt.Errorf("render.shape: %w", err)
	}
	if _, err := projection.ParseMode(c.Render.Projection); err != nil {
		return fmt.Errorf("render.projection: %w", err)
	}
	if c.Render.Size <= 0 {
		return fmt.Errorf("render.size: must be positive, got %v", c.Render.Size)
	}
	if c.Render.Depth <= 0 {
		return fmt.Errorf("render.depth: must be positive, got %v", c.Render.Depth)
	}
	if c.Render.Depth+c.Render.Distance <= 0 {
		return fmt.Errorf("render.distance: object must sit in front of the camera, depth+distance = %v", c.Render.Depth+c.Render.Distance)
	}
	if c.Render.FOV < 0 || c.Render.Scale < 0 {
		return fmt.Errorf("render: fov and scale must not be negative")
	}
	if c.Render.Aspect <= 0 {
		return fmt.Errorf("render.aspect: must be positive, got %v", c.Render.Aspect)
	}

	if c.Lighting.Ambient < 0 || c.Lighting.Ambient > 1 {
		return fmt.Errorf("lighting.ambient: %v out of range [0,1]", c.Lighting.Ambient)
	}
	if utf8.RuneCountInString(c.Lighting.Ramp) < 2 {
		return fmt.Errorf("lighting.ramp: need at least 2 characters, got %q", c.Lighting.Ramp)
	}
	switch c.Lighting.Invert {
	case InvertAuto, InvertAlways, InvertNever:
	default:
		return fmt.Errorf("lighting.invert: unknown mode %q", c.Lighting.Invert)
	}

	if c.Controls.Step < 0 {
		return fmt.Errorf("controls.step: must not be negative, got %v", c.Controls.Step)
	}
	if c.Controls.Zoom <= 0 {
		return fmt.Errorf("controls.zoom: must be positive, got %v", c.Controls.Zoom)
	}
	if c.Controls.ZoomStep <= 1 {
		return fmt.Errorf("controls.zoom_step: must be greater than 1, got %v", c.Controls.ZoomStep)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume: %v out of range [0,1]", c.Audio.Volume)
	}
	return nil
}

// BackgroundRune returns the background character; Validate guarantees exactly one
func (c *Config) BackgroundRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Display.Background)
	return r
}
