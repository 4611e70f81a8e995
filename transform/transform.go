// Package transform applies translate, scale and rotate to vertex lists.
// Every function returns a new slice; inputs are never modified. NaN and Inf propagate.
package transform

import (
	"github.com/lixenwraith/ascii3d/vmath"
)

// Translate adds offset to every vertex
func Translate(vertices []vmath.Vec3, offset vmath.Vec3) []vmath.Vec3 {
	out := make([]vmath.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = vmath.V3Add(v, offset)
	}
	return out
}

// Scale multiplies every vertex by factor relative to origin
func Scale(vertices []vmath.Vec3, factor float64, origin vmath.Vec3) []vmath.Vec3 {
	out := make([]vmath.Vec3, len(vertices))
	for i, v := range vertices {
		local := vmath.V3Sub(v, origin)
		out[i] = vmath.V3Add(vmath.V3Scale(local, factor), origin)
	}
	return out
}

// Rotate rotates every vertex about origin by the active axes of e, in X, Y, Z order
func Rotate(vertices []vmath.Vec3, e vmath.Euler, origin vmath.Vec3) []vmath.Vec3 {
	out := make([]vmath.Vec3, len(vertices))
	for i, v := range vertices {
		local := vmath.V3Sub(v, origin)
		out[i] = vmath.V3Add(e.Apply(local), origin)
	}
	return out
}
