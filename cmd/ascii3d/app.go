package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/ascii3d/audio"
	"github.com/lixenwraith/ascii3d/config"
	"github.com/lixenwraith/ascii3d/engine"
	"github.com/lixenwraith/ascii3d/input"
	"github.com/lixenwraith/ascii3d/mesh"
	"github.com/lixenwraith/ascii3d/projection"
	"github.com/lixenwraith/ascii3d/render"
	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/shading"
	"github.com/lixenwraith/ascii3d/terminal"
	"github.com/lixenwraith/ascii3d/vmath"
)

// hudDepth puts overlay text in front of all geometry, which always has z > 0
const hudDepth = 0

// app is the per-frame task: it owns the frame buffer and view state and is only
// touched from the scheduler goroutine
type app struct {
	cfg    config.Config
	term   terminal.Terminal
	player audio.Player
	dark   bool

	keys  input.Keymap
	state *input.State
	fb    *render.FrameBuffer
	scene *scene.Scene

	meshes map[mesh.Kind]mesh.Mesh
	stats  scene.Stats
	fps    fpsMeter

	// Optional collaborators wired by main
	updates     <-chan config.Config
	reloadErrs  <-chan error
	setInterval func(time.Duration)
	overrides   func(*config.Config) error // command-line flags, reapplied on reload
}

func newApp(cfg config.Config, term terminal.Terminal, player audio.Player, dark bool) (*app, error) {
	keys, err := input.DefaultKeymap().Override(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	shader, err := newShader(cfg.Lighting, dark)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}
	initial, err := initialView(cfg)
	if err != nil {
		return nil, err
	}

	w, h := term.Size()
	a := &app{
		cfg:    cfg,
		term:   term,
		player: player,
		dark:   dark,
		keys:   keys,
		state:  input.NewState(controlSettings(cfg), initial),
		fb:     render.NewFrameBuffer(w, h, cfg.BackgroundRune()),
		meshes: make(map[mesh.Kind]mesh.Mesh),
	}
	a.scene = scene.New(nil, shader, vmath.Vec3{Z: cfg.Render.Depth})
	a.rebuildProjector()
	return a, nil
}

// Frame advances and draws one frame
func (a *app) Frame(ctx context.Context, frame uint64, dt time.Duration) error {
	if a.drainEvents() {
		return engine.ErrStop
	}
	a.drainConfig()

	a.state.Advance()
	v := a.state.View()

	if a.fps.tick(dt) {
		log.Printf("[frame] %d fps=%.1f faces=%d drawn=%d culled=%d cells=%d",
			frame, a.fps.value, a.stats.Faces, a.stats.Drawn, a.stats.Culled, a.stats.Cells)
	}

	a.fb.Clear()
	a.stats = a.scene.Draw(a.fb, a.mesh(v.Shape), scene.Pose{Rotation: v.Rotation, Zoom: v.Zoom})
	if a.stats.Broken > 0 {
		log.Printf("[scene] %d faces reference missing vertices", a.stats.Broken)
	}
	if v.HUD {
		a.drawHUD(v)
	}

	if err := a.fb.Render(a.term); err != nil {
		log.Printf("[render] present failed: %v", err)
	}
	return nil
}

// drainEvents applies pending terminal events; returns true when the app should quit
func (a *app) drainEvents() bool {
	for {
		select {
		case ev := <-a.term.Events():
			if a.handleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

func (a *app) handleEvent(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventKey:
		return a.handleAction(a.keys.Lookup(ev))
	case terminal.EventResize:
		a.fb.Resize(ev.Width, ev.Height)
		a.rebuildProjector()
		log.Printf("[terminal] resized to %dx%d", ev.Width, ev.Height)
	case terminal.EventError:
		log.Printf("[terminal] input error: %v", ev.Err)
	case terminal.EventClosed:
		log.Printf("[terminal] input closed")
		return true
	}
	return false
}

func (a *app) handleAction(act input.Action) bool {
	if act == input.ActionNone {
		return false
	}
	ch := a.state.Apply(act)
	v := a.state.View()

	switch {
	case ch&input.ChangeQuit != 0:
		return true
	case ch&input.ChangeReset != 0:
		a.player.Play(audio.CueReset)
	case ch&input.ChangeShape != 0:
		a.player.Play(audio.CueShape)
		log.Printf("[input] shape %s", v.Shape)
	case ch&input.ChangeProjection != 0:
		a.rebuildProjector()
		a.player.Play(audio.CueProjection)
		log.Printf("[input] projection %s", v.Projection)
	case ch&input.ChangeSound != 0:
		a.player.SetMuted(!v.Sound)
		a.player.Play(audio.CueToggle)
	case ch&(input.ChangeSpin|input.ChangePause|input.ChangeHUD) != 0:
		a.player.Play(audio.CueToggle)
	}
	return false
}

// drainConfig applies the newest reloaded config, if any
func (a *app) drainConfig() {
	select {
	case err := <-a.reloadErrs:
		log.Printf("[config] keeping previous settings: %v", err)
	default:
	}
	select {
	case cfg := <-a.updates:
		if err := a.reload(cfg); err != nil {
			log.Printf("[config] reload rejected: %v", err)
		}
	default:
	}
}

// reload applies a new config without disturbing interactive state
// Backend, shape and projection are startup choices and are left alone.
func (a *app) reload(cfg config.Config) error {
	if a.overrides != nil {
		if err := a.overrides(&cfg); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
	}
	keys, err := input.DefaultKeymap().Override(cfg.Keys)
	if err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	shader, err := newShader(cfg.Lighting, a.dark)
	if err != nil {
		return fmt.Errorf("lighting: %w", err)
	}

	if cfg.Render.Size != a.cfg.Render.Size {
		clear(a.meshes)
	}
	if cfg.Display.FPS != a.cfg.Display.FPS && a.setInterval != nil {
		a.setInterval(frameInterval(cfg.Display.FPS))
	}

	a.cfg = cfg
	a.keys = keys
	a.scene.Shader = shader
	a.scene.Offset = vmath.Vec3{Z: cfg.Render.Depth}
	a.state.SetSettings(controlSettings(cfg))
	a.fb.SetBackground(cfg.BackgroundRune())
	a.rebuildProjector()
	return nil
}

// mesh returns the cached mesh for a shape kind
func (a *app) mesh(k mesh.Kind) mesh.Mesh {
	m, ok := a.meshes[k]
	if !ok {
		m = mesh.Generate(mesh.Default(k, a.cfg.Render.Size))
		a.meshes[k] = m
	}
	return m
}

func (a *app) rebuildProjector() {
	a.scene.Projector = newProjector(a.cfg.Render, a.state.View().Projection, a.fb.Width(), a.fb.Height())
}

// newProjector sizes a projector to the viewport
// A zero FOV fits the object to the terminal height; orthographic scale with zero
// matches the perspective scale at the object's depth so toggling keeps the size.
func newProjector(r config.Render, mode projection.Mode, width, height int) projection.Projector {
	fov := r.FOV
	if fov == 0 {
		fov = float64(height) * 5 / 3
	}
	scale := r.Scale
	if scale == 0 {
		scale = fov / (r.Distance + r.Depth)
	}
	return projection.New(projection.Config{
		Mode:     mode,
		Width:    width,
		Height:   height,
		Scale:    scale,
		FOV:      fov,
		Distance: r.Distance,
		Aspect:   r.Aspect,
	})
}

// newShader builds the shader, reversing the ramp for light backgrounds
func newShader(l config.Lighting, dark bool) (*shading.Shader, error) {
	ramp, err := shading.NewRamp(l.Ramp)
	if err != nil {
		return nil, err
	}
	if invertRamp(l.Invert, dark) {
		ramp = ramp.Reverse()
	}
	light := vmath.Vec3{X: l.Light.X, Y: l.Light.Y, Z: l.Light.Z}
	return shading.New(ramp, light, l.Ambient), nil
}

func invertRamp(mode string, dark bool) bool {
	switch mode {
	case config.InvertAlways:
		return true
	case config.InvertNever:
		return false
	}
	return !dark
}

func initialView(cfg config.Config) (input.View, error) {
	kind, err := mesh.ParseKind(cfg.Render.Shape)
	if err != nil {
		return input.View{}, fmt.Errorf("render.shape: %w", err)
	}
	mode, err := projection.ParseMode(cfg.Render.Projection)
	if err != nil {
		return input.View{}, fmt.Errorf("render.projection: %w", err)
	}
	return input.View{
		Shape:      kind,
		Projection: mode,
		Zoom:       cfg.Controls.Zoom,
		Spin:       cfg.Controls.Spin,
		HUD:        cfg.Display.HUD,
		Sound:      cfg.Audio.Enabled,
	}, nil
}

// nearMargin keeps the nearest vertex this fraction of the camera distance in front of it
const nearMargin = 0.1

// controlSettings derives the tunables, capping zoom so no vertex crosses the camera plane
func controlSettings(cfg config.Config) input.Settings {
	s := settingsFrom(cfg.Controls)
	s.MaxZoom = min(s.MaxZoom, zoomLimit(cfg.Render))
	s.MinZoom = min(s.MinZoom, s.MaxZoom)
	return s
}

// zoomLimit is the largest zoom keeping Distance + z positive for every vertex of every shape
// Rotation about the origin preserves vertex length, so the bounding radius covers any pose.
func zoomLimit(r config.Render) float64 {
	radius := 0.0
	for _, k := range mesh.Kinds() {
		for _, v := range mesh.Generate(mesh.Default(k, r.Size)).Vertices {
			radius = max(radius, vmath.V3Mag(v))
		}
	}
	if radius == 0 {
		return math.Inf(1)
	}
	return (1 - nearMargin) * (r.Depth + r.Distance) / radius
}

func settingsFrom(c config.Controls) input.Settings {
	s := input.DefaultSettings()
	s.Step = vmath.Angle(c.Step)
	s.ZoomStep = c.ZoomStep

	var spin vmath.Euler
	if c.SpinRate.X != 0 {
		spin = spin.With(vmath.AxisX, vmath.Angle(c.SpinRate.X))
	}
	if c.SpinRate.Y != 0 {
		spin = spin.With(vmath.AxisY, vmath.Angle(c.SpinRate.Y))
	}
	if c.SpinRate.Z != 0 {
		spin = spin.With(vmath.AxisZ, vmath.Angle(c.SpinRate.Z))
	}
	s.Spin = spin
	return s
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}
