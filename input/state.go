package input

import (
	"github.com/lixenwraith/ascii3d/mesh"
	"github.com/lixenwraith/ascii3d/projection"
	"github.com/lixenwraith/ascii3d/vmath"
)

// Change flags report what an action modified
type Change uint16

const (
	ChangeRotation Change = 1 << iota
	ChangeShape
	ChangeProjection
	ChangeZoom
	ChangeSpin
	ChangePause
	ChangeHUD
	ChangeSound
	ChangeReset
	ChangeQuit
)

// Settings are the control tunables
type Settings struct {
	Step     vmath.Angle // degrees per rotate key press
	Spin     vmath.Euler // degrees per frame while auto-spin is on
	ZoomStep float64     // multiplicative zoom per key press, > 1
	MinZoom  float64
	MaxZoom  float64
}

// DefaultSettings returns the default tunables
func DefaultSettings() Settings {
	return Settings{
		Step:     10,
		Spin:     vmath.Euler{X: 4, Y: 10, Axes: vmath.AxisX | vmath.AxisY},
		ZoomStep: 1.1,
		MinZoom:  0.1,
		MaxZoom:  10,
	}
}

// View is the mutable view state read by the renderer at the start of each frame
type View struct {
	Rotation   vmath.Euler
	Shape      mesh.Kind
	Projection projection.Mode
	Zoom       float64
	Spin       bool
	Paused     bool
	HUD        bool
	Sound      bool
}

// State applies actions and per-frame spin to a View
// Owned by the frame task; not safe for concurrent use.
type State struct {
	settings Settings
	initial  View
	view     View
}

// NewState creates a state starting at initial
// Rotation always has all axes active so accumulated angles apply to every axis.
func NewState(settings Settings, initial View) *State {
	initial.Rotation.Axes = vmath.AxisAll
	if initial.Zoom <= 0 {
		initial.Zoom = 1
	}
	initial.Zoom = settings.clampZoom(initial.Zoom)
	return &State{
		settings: settings,
		initial:  initial,
		view:     initial,
	}
}

// View returns the current view
func (s *State) View() View {
	return s.view
}

// Settings returns the tunables in effect
func (s *State) Settings() Settings {
	return s.settings
}

// SetSettings replaces the tunables, for config reload
// Current and reset zoom are pulled into the new zoom range.
func (s *State) SetSettings(settings Settings) {
	s.settings = settings
	s.initial.Zoom = settings.clampZoom(s.initial.Zoom)
	s.view.Zoom = settings.clampZoom(s.view.Zoom)
}

func (st Settings) clampZoom(z float64) float64 {
	return max(st.MinZoom, min(st.MaxZoom, z))
}

// Apply performs one action and reports what changed
func (s *State) Apply(a Action) Change {
	v := &s.view
	step := s.settings.Step

	switch a {
	case ActionQuit:
		return ChangeQuit
	case ActionRotateXPos:
		v.Rotation.X += step
		return ChangeRotation
	case ActionRotateXNeg:
		v.Rotation.X -= step
		return ChangeRotation
	case ActionRotateYPos:
		v.Rotation.Y += step
		return ChangeRotation
	case ActionRotateYNeg:
		v.Rotation.Y -= step
		return ChangeRotation
	case ActionRotateZPos:
		v.Rotation.Z += step
		return ChangeRotation
	case ActionRotateZNeg:
		v.Rotation.Z -= step
		return ChangeRotation
	case ActionToggleSpin:
		v.Spin = !v.Spin
		return ChangeSpin
	case ActionPause:
		v.Paused = !v.Paused
		return ChangePause
	case ActionNextShape:
		v.Shape = v.Shape.Next()
		return ChangeShape
	case ActionToggleProjection:
		v.Projection = v.Projection.Toggle()
		return ChangeProjection
	case ActionZoomIn:
		return s.zoom(s.settings.ZoomStep)
	case ActionZoomOut:
		return s.zoom(1 / s.settings.ZoomStep)
	case ActionReset:
		v.Rotation = vmath.Euler{Axes: vmath.AxisAll}
		v.Zoom = s.initial.Zoom
		return ChangeReset | ChangeRotation | ChangeZoom
	case ActionToggleHUD:
		v.HUD = !v.HUD
		return ChangeHUD
	case ActionToggleSound:
		v.Sound = !v.Sound
		return ChangeSound
	}
	return 0
}

func (s *State) zoom(factor float64) Change {
	z := s.settings.clampZoom(s.view.Zoom * factor)
	if z == s.view.Zoom {
		return 0
	}
	s.view.Zoom = z
	return ChangeZoom
}

// Advance applies one frame of auto-spin; no-op while paused or spin is off
// Angles are not wrapped and grow without bound.
func (s *State) Advance() Change {
	if !s.view.Spin || s.view.Paused {
		return 0
	}
	spin := s.settings.Spin
	for _, axis := range [...]vmath.Axis{vmath.AxisX, vmath.AxisY, vmath.AxisZ} {
		if d := spin.Angle(axis); d != 0 {
			s.view.Rotation = s.view.Rotation.With(axis, s.view.Rotation.Angle(axis)+d)
		}
	}
	return ChangeRotation
}
