// Package shading computes flat per-face Lambertian intensity and maps it onto a
// character ramp ordered from darkest to brightest.
package shading

import (
	"errors"
	"math"

	"github.com/lixenwraith/ascii3d/vmath"
)

// DefaultRamp is ordered darkest → brightest
const DefaultRamp = " .:-=+*#%@"

// ErrShortRamp is returned for ramps that cannot express at least two levels
var ErrShortRamp = errors.New("shading ramp needs at least 2 characters")

// Ramp is an ordered sequence of characters, darkest first
type Ramp []rune

// NewRamp validates and converts a ramp string
func NewRamp(s string) (Ramp, error) {
	r := Ramp([]rune(s))
	if len(r) < 2 {
		return nil, ErrShortRamp
	}
	return r, nil
}

// Reverse returns the ramp in the opposite order, for light-background terminals
func (r Ramp) Reverse() Ramp {
	out := make(Ramp, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return out
}

func (r Ramp) String() string {
	return string(r)
}

// Shader holds a point light and an ambient floor
type Shader struct {
	ramp    Ramp
	light   vmath.Vec3
	ambient float64
}

// New creates a shader; ramp must come from NewRamp
func New(ramp Ramp, light vmath.Vec3, ambient float64) *Shader {
	return &Shader{
		ramp:    ramp,
		light:   light,
		ambient: ambient,
	}
}

func (s *Shader) Ramp() Ramp        { return s.ramp }
func (s *Shader) Light() vmath.Vec3 { return s.light }
func (s *Shader) Ambient() float64  { return s.ambient }

// Normal returns the unit normal of triangle (v1, v2, v3) as (v2−v1)×(v3−v1)
// Degenerate triangles yield the zero vector
func Normal(v1, v2, v3 vmath.Vec3) vmath.Vec3 {
	edge1 := vmath.V3Sub(v2, v1)
	edge2 := vmath.V3Sub(v3, v1)
	return vmath.V3Normalize(vmath.V3Cross(edge1, edge2))
}

// Intensity returns clamp(max(0, n·l) + ambient, 0, 1), l being the unit direction from
// point to the light. A light sitting on the point contributes ambient only.
func (s *Shader) Intensity(point, normal vmath.Vec3) float64 {
	toLight := vmath.V3Sub(s.light, point)
	if vmath.V3MagSq(toLight) == 0 {
		return s.ambient
	}
	dir := vmath.V3Normalize(toLight)

	diffuse := math.Max(0, vmath.V3Dot(normal, dir))
	return clamp01(diffuse + s.ambient)
}

// Char maps intensity to the ramp: index = floor(i·(len−1))
// Out-of-range input is clamped, NaN maps to the darkest character
func (s *Shader) Char(intensity float64) rune {
	i := clamp01(intensity)
	idx := int(math.Floor(i * float64(len(s.ramp)-1)))
	return s.ramp[idx]
}

// ShadeFace shades a triangle once, at its centroid with its face normal
func (s *Shader) ShadeFace(v1, v2, v3 vmath.Vec3) rune {
	n := Normal(v1, v2, v3)
	c := vmath.V3Centroid(v1, v2, v3)
	return s.Char(s.Intensity(c, n))
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
