// Package mesh generates triangle meshes for the supported solids.
//
// Shapes form a closed set: Shape is sealed (only this package can implement it) and
// Generate switches over every kind exhaustively. Generated meshes always satisfy the
// index invariant checked by Validate.
package mesh

import (
	"fmt"

	"github.com/lixenwraith/ascii3d/vmath"
)

// Face is a triangle as three indices into Mesh.Vertices
type Face [3]int

// Mesh is an indexed triangle list
type Mesh struct {
	Vertices []vmath.Vec3
	Faces    []Face
}

// Validate reports the first face index that does not address a vertex
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		for k, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d index %d: vertex %d out of range [0,%d)", fi, k, idx, n)
			}
		}
	}
	return nil
}

// Triangle returns the three vertices of face i
func (m Mesh) Triangle(i int) (a, b, c vmath.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}
