package mesh

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/ascii3d/vmath"
)

// Kind enumerates the supported solids
type Kind uint8

const (
	KindCube Kind = iota
	KindPrism

	kindCount
)

var kindNames = [kindCount]string{
	KindCube:  "cube",
	KindPrism: "prism",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Next returns the following kind, wrapping to the first
func (k Kind) Next() Kind {
	return (k + 1) % kindCount
}

// Kinds returns every supported kind in cycle order
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// ParseKind resolves a shape name, case-insensitive
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// Shape is a solid with its own generation parameters
type Shape interface {
	Kind() Kind
	shape()
}

// Cube is an axis-aligned cube centred on Origin with edge length Scale
type Cube struct {
	Origin vmath.Vec3
	Scale  float64
}

// Prism is a four-sided base at Origin.Z with an apex pushed toward -Z
type Prism struct {
	Origin vmath.Vec3
	Base   float64
	Height float64
}

func (Cube) Kind() Kind  { return KindCube }
func (Prism) Kind() Kind { return KindPrism }
func (Cube) shape()      {}
func (Prism) shape()     {}

// Default returns a shape of the given kind centred on the origin, sized by size
func Default(k Kind, size float64) Shape {
	switch k {
	case KindCube:
		return Cube{Scale: size}
	case KindPrism:
		return Prism{Base: size, Height: size}
	}
	panic(fmt.Sprintf("mesh: no default for %v", k))
}

// Generate builds the mesh for a shape
func Generate(s Shape) Mesh {
	switch v := s.(type) {
	case Cube:
		return NewCube(v.Origin, v.Scale)
	case Prism:
		return NewPrism(v.Origin, v.Base, v.Height)
	}
	panic(fmt.Sprintf("mesh: unhandled shape %T", s))
}

// cubeFaces lists two triangles per side
// Vertex bits: bit0 = +x, bit1 = +y, bit2 = +z
var cubeFaces = []Face{
	{0, 2, 3}, {0, 3, 1}, // -z (front): 0,1,2,3
	{4, 5, 7}, {4, 7, 6}, // +z (back): 4,5,6,7
	{0, 4, 6}, {0, 6, 2}, // -x (left): 0,2,4,6
	{1, 3, 7}, {1, 7, 5}, // +x (right): 1,3,5,7
	{0, 1, 5}, {0, 5, 4}, // -y (bottom): 0,1,4,5
	{2, 6, 7}, {2, 7, 3}, // +y (top): 2,3,6,7
}

// NewCube returns 8 vertices at origin ± scale/2 ordered by bit pattern
// [---, +--, -+-, ++-, --+, +-+, -++, +++] and 12 triangular faces
func NewCube(origin vmath.Vec3, scale float64) Mesh {
	h := scale / 2
	verts := make([]vmath.Vec3, 8)
	for i := range verts {
		sx, sy, sz := -h, -h, -h
		if i&1 != 0 {
			sx = h
		}
		if i&2 != 0 {
			sy = h
		}
		if i&4 != 0 {
			sz = h
		}
		verts[i] = vmath.Vec3{X: origin.X + sx, Y: origin.Y + sy, Z: origin.Z + sz}
	}

	faces := make([]Face, len(cubeFaces))
	copy(faces, cubeFaces)
	return Mesh{Vertices: verts, Faces: faces}
}

// prismFaces wind counter-clockwise seen from outside, matching the cube
var prismFaces = []Face{
	{0, 1, 2}, {0, 2, 3}, // base, normal +z
	{4, 1, 0}, {4, 2, 1}, {4, 3, 2}, {4, 0, 3}, // sides fanning from apex
}

// NewPrism returns a 4-vertex base straddling origin.y ± (height/2)/1.5 at origin.z and an
// apex at origin.z - base, with 2 base and 4 side faces
func NewPrism(origin vmath.Vec3, base, height float64) Mesh {
	hb := base / 2
	hy := (height / 2) / 1.5
	verts := []vmath.Vec3{
		{X: origin.X - hb, Y: origin.Y - hy, Z: origin.Z},
		{X: origin.X + hb, Y: origin.Y - hy, Z: origin.Z},
		{X: origin.X + hb, Y: origin.Y + hy, Z: origin.Z},
		{X: origin.X - hb, Y: origin.Y + hy, Z: origin.Z},
		{X: origin.X, Y: origin.Y, Z: origin.Z - 2*hb},
	}

	faces := make([]Face, len(prismFaces))
	copy(faces, prismFaces)
	return Mesh{Vertices: verts, Faces: faces}
}
