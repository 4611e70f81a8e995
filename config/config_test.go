package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.Display.FPS)
	assert.Equal(t, " .:-=+*#%@", cfg.Lighting.Ramp)
	assert.Equal(t, Vec3{Z: -50}, cfg.Lighting.Light)
	assert.Equal(t, 0.2, cfg.Lighting.Ambient)
	assert.Equal(t, ' ', cfg.BackgroundRune())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Display.Backend = "sdl" }},
		{"fps zero", func(c *Config) { c.Display.FPS = 0 }},
		{"fps high", func(c *Config) { c.Display.FPS = 1000 }},
		{"background", func(c *Config) { c.Display.Background = "ab" }},
		{"shape", func(c *Config) { c.Render.Shape = "torus" }},
		{"projection", func(c *Config) { c.Render.Projection = "fisheye" }},
		{"size", func(c *Config) { c.Render.Size = 0 }},
		{"depth", func(c *Config) { c.Render.Depth = -1 }},
		{"behind camera", func(c *Config) { c.Render.Distance = -60 }},
		{"fov", func(c *Config) { c.Render.FOV = -5 }},
		{"aspect", func(c *Config) { c.Render.Aspect = 0 }},
		{"ambient", func(c *Config) { c.Lighting.Ambient = 1.5 }},
		{"ramp", func(c *Config) { c.Lighting.Ramp = "#" }},
		{"invert", func(c *Config) { c.Lighting.Invert = "maybe" }},
		{"step", func(c *Config) { c.Controls.Step = -1 }},
		{"zoom", func(c *Config) { c.Controls.Zoom = 0 }},
		{"zoom step", func(c *Config) { c.Controls.ZoomStep = 1 }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.toml", `
[display]
fps = 60
backend = "tcell"

[render]
shape = "prism"
projection = "orthographic"

[lighting]
ramp = "@%#*+=-:. "
light = { x = 1, y = 2, z = -30 }

[keys]
w = "rotate_x_neg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Display.FPS)
	assert.Equal(t, BackendTcell, cfg.Display.Backend)
	assert.Equal(t, "prism", cfg.Render.Shape)
	assert.Equal(t, "orthographic", cfg.Render.Projection)
	assert.Equal(t, "@%#*+=-:. ", cfg.Lighting.Ramp)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: -30}, cfg.Lighting.Light)
	assert.Equal(t, "rotate_x_neg", cfg.Keys["w"])

	// Untouched fields keep defaults
	assert.Equal(t, 0.2, cfg.Lighting.Ambient)
	assert.Equal(t, 20.0, cfg.Render.Size)
	assert.True(t, cfg.Display.HUD)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", `
display:
  fps: 24
lighting:
  ambient: 0.5
controls:
  spin: false
  spin_rate: {x: 0, y: 5, z: 1}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Display.FPS)
	assert.Equal(t, 0.5, cfg.Lighting.Ambient)
	assert.False(t, cfg.Controls.Spin)
	assert.Equal(t, Vec3{Y: 5, Z: 1}, cfg.Controls.SpinRate)
	assert.Equal(t, " .:-=+*#%@", cfg.Lighting.Ramp)
}

func TestLoadEmptyYAMLIsDefault(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "bad.toml", "[display]\nfps = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "short.yaml", "lighting:\n  ramp: \"#\"\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "typo.toml", "[display]\nfsp = 30\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "typo.yaml", "display:\n  fsp: 30\n"))
	assert.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.json", "{}")
	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)

	cfg, found, err := LoadOptional(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestResolvePathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ResolvePath("~/x/config.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "config.toml"), got)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.toml", "[display]\nfps = 30\n")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Invalid content surfaces as an error, not an update
	require.NoError(t, os.WriteFile(path, []byte("[display]\nfps = -1\n"), 0o644))
	select {
	case err := <-w.Errors():
		assert.Error(t, err)
	case cfg := <-w.Updates():
		t.Fatalf("Expected error, got update %+v", cfg.Display)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload error")
	}

	require.NoError(t, os.WriteFile(path, []byte("[display]\nfps = 45\n"), 0o644))
	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 45, cfg.Display.FPS)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.toml", "")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, dir, "other.toml", "[display]\nfps = 10\n")
	select {
	case cfg := <-w.Updates():
		t.Fatalf("Expected no update for sibling file, got %+v", cfg.Display)
	case <-time.After(300 * time.Millisecond):
	}
}
