// Package projection maps camera-space vertices to screen coordinates.
//
// Screen Y grows downward, so world Y is inverted. Both projectors centre the origin at
// (Width/2, Height/2). Aspect stretches X to compensate for terminal cells being roughly
// twice as tall as they are wide; zero means no stretch.
package projection

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/ascii3d/vmath"
)

// Projector maps 3D vertices to 2D screen points, one output per input
type Projector interface {
	Project(vertices []vmath.Vec3) []vmath.Vec2
}

// Mode selects a projector implementation
type Mode uint8

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

func (m Mode) String() string {
	switch m {
	case ModePerspective:
		return "perspective"
	case ModeOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModePerspective {
		return ModeOrthographic
	}
	return ModePerspective
}

// ParseMode resolves a mode name; "ortho" and "persp" are accepted
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "persp":
		return ModePerspective, nil
	case "orthographic", "ortho":
		return ModeOrthographic, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// Config carries the parameters of both projectors
type Config struct {
	Mode   Mode
	Width  int
	Height int

	// Orthographic
	Scale float64

	// Perspective
	FOV      float64
	Distance float64

	Aspect float64
}

// New builds the projector selected by cfg.Mode
func New(cfg Config) Projector {
	switch cfg.Mode {
	case ModeOrthographic:
		return &Orthographic{Width: cfg.Width, Height: cfg.Height, Scale: cfg.Scale, Aspect: cfg.Aspect}
	default:
		return &Perspective{Width: cfg.Width, Height: cfg.Height, FOV: cfg.FOV, Distance: cfg.Distance, Aspect: cfg.Aspect}
	}
}

// Orthographic ignores depth: x = W/2 + X·Scale, y = H/2 − Y·Scale
type Orthographic struct {
	Width, Height int
	Scale         float64
	Aspect        float64
}

func (o *Orthographic) Project(vertices []vmath.Vec3) []vmath.Vec2 {
	cx, cy := center(o.Width, o.Height)
	ax := aspect(o.Aspect)

	out := make([]vmath.Vec2, len(vertices))
	for i, v := range vertices {
		out[i] = vmath.Vec2{
			X: cx + v.X*o.Scale*ax,
			Y: cy - v.Y*o.Scale,
		}
	}
	return out
}

// Perspective scales by FOV / (Distance + Z)
// Not guarded at Distance + Z == 0: the result is ±Inf or NaN and the rasterizer drops it.
// Callers translate geometry to Z > -Distance before projecting.
type Perspective struct {
	Width, Height int
	FOV           float64
	Distance      float64
	Aspect        float64
}

func (p *Perspective) Project(vertices []vmath.Vec3) []vmath.Vec2 {
	cx, cy := center(p.Width, p.Height)
	ax := aspect(p.Aspect)

	out := make([]vmath.Vec2, len(vertices))
	for i, v := range vertices {
		s := p.LocalScale(v.Z)
		out[i] = vmath.Vec2{
			X: cx + v.X*s*ax,
			Y: cy - v.Y*s,
		}
	}
	return out
}

// LocalScale returns the screen units per world unit at depth z
func (p *Perspective) LocalScale(z float64) float64 {
	return p.FOV / (p.Distance + z)
}

func center(w, h int) (float64, float64) {
	return float64(w) / 2, float64(h) / 2
}

func aspect(a float64) float64 {
	if a == 0 {
		return 1
	}
	return a
}
