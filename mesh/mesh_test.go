package mesh

import (
	"math"
	"testing"

	"github.com/lixenwraith/ascii3d/vmath"
)

func TestNewCube(t *testing.T) {
	m := NewCube(vmath.Vec3{}, 2)

	if len(m.Vertices) != 8 {
		t.Fatalf("Expected 8 vertices, got %d", len(m.Vertices))
	}
	if len(m.Faces) != 12 {
		t.Fatalf("Expected 12 faces, got %d", len(m.Faces))
	}

	for i, v := range m.Vertices {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if math.Abs(c) != 1 {
				t.Errorf("Vertex %d: expected components of ±1, got %v", i, v)
			}
		}
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Expected valid cube, got %v", err)
	}
}

func TestNewCubeBitOrder(t *testing.T) {
	origin := vmath.Vec3{X: 10, Y: -5, Z: 3}
	m := NewCube(origin, 4)

	for i, v := range m.Vertices {
		want := vmath.Vec3{X: origin.X - 2, Y: origin.Y - 2, Z: origin.Z - 2}
		if i&1 != 0 {
			want.X += 4
		}
		if i&2 != 0 {
			want.Y += 4
		}
		if i&4 != 0 {
			want.Z += 4
		}
		if v != want {
			t.Errorf("Vertex %d: expected %v, got %v", i, want, v)
		}
	}
}

func TestCubeFacesCoverEverySide(t *testing.T) {
	m := NewCube(vmath.Vec3{}, 2)

	// Each side's two triangles share a constant coordinate
	sides := map[string]int{}
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		switch {
		case a.X == b.X && b.X == c.X:
			sides["x"+sign(a.X)]++
		case a.Y == b.Y && b.Y == c.Y:
			sides["y"+sign(a.Y)]++
		case a.Z == b.Z && b.Z == c.Z:
			sides["z"+sign(a.Z)]++
		default:
			t.Errorf("Face %d is not on a cube side", i)
		}
	}

	for _, side := range []string{"x-", "x+", "y-", "y+", "z-", "z+"} {
		if sides[side] != 2 {
			t.Errorf("Expected 2 faces on side %s, got %d", side, sides[side])
		}
	}
}

func sign(f float64) string {
	if f < 0 {
		return "-"
	}
	return "+"
}

func TestNewPrism(t *testing.T) {
	origin := vmath.Vec3{X: 0, Y: 0, Z: 10}
	m := NewPrism(origin, 6, 3)

	if len(m.Vertices) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(m.Vertices))
	}
	if len(m.Faces) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(m.Faces))
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Expected valid prism, got %v", err)
	}

	for i := 0; i < 4; i++ {
		v := m.Vertices[i]
		if v.Z != origin.Z {
			t.Errorf("Base vertex %d: expected z=%v, got %v", i, origin.Z, v.Z)
		}
		if math.Abs(v.X) != 3 {
			t.Errorf("Base vertex %d: expected |x|=3, got %v", i, v.X)
		}
		if math.Abs(math.Abs(v.Y)-1) > 1e-12 {
			t.Errorf("Base vertex %d: expected |y|=1, got %v", i, v.Y)
		}
	}

	apex := m.Vertices[4]
	if apex != (vmath.Vec3{X: 0, Y: 0, Z: 4}) {
		t.Errorf("Expected apex at (0,0,4), got %v", apex)
	}

	// Every side face fans from the apex
	for _, f := range m.Faces[2:] {
		if f[0] != 4 {
			t.Errorf("Expected side face to start at apex, got %v", f)
		}
	}
}

func TestFaceNormalsPointOutward(t *testing.T) {
	meshes := map[string]Mesh{
		"cube":  NewCube(vmath.Vec3{X: 1, Y: -2, Z: 5}, 4),
		"prism": NewPrism(vmath.Vec3{Z: 60}, 20, 20),
	}

	for name, m := range meshes {
		var center vmath.Vec3
		for _, v := range m.Vertices {
			center = vmath.V3Add(center, v)
		}
		center = vmath.V3Scale(center, 1/float64(len(m.Vertices)))

		for i, f := range m.Faces {
			a, b, c := m.Triangle(i)
			normal := vmath.V3Cross(vmath.V3Sub(b, a), vmath.V3Sub(c, a))
			out := vmath.V3Sub(vmath.V3Centroid(a, b, c), center)
			if vmath.V3Dot(normal, out) <= 0 {
				t.Errorf("%s face %d %v: expected outward normal, got %v", name, i, f, normal)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	m := Mesh{
		Vertices: []vmath.Vec3{{}, {}, {}},
		Faces:    []Face{{0, 1, 2}, {0, 1, 3}},
	}
	if err := m.Validate(); err == nil {
		t.Error("Expected error for index 3 in a 3-vertex mesh")
	}

	m.Faces = []Face{{0, -1, 2}}
	if err := m.Validate(); err == nil {
		t.Error("Expected error for negative index")
	}
}

func TestGenerateDispatch(t *testing.T) {
	for _, k := range Kinds() {
		s := Default(k, 2)
		if s.Kind() != k {
			t.Errorf("Expected kind %v, got %v", k, s.Kind())
		}
		m := Generate(s)
		if err := m.Validate(); err != nil {
			t.Errorf("%v: %v", k, err)
		}
		if len(m.Faces) == 0 {
			t.Errorf("%v: expected faces", k)
		}
	}
}

func TestGenerateReturnsIndependentFaces(t *testing.T) {
	a := NewCube(vmath.Vec3{}, 1)
	a.Faces[0] = Face{7, 7, 7}

	b := NewCube(vmath.Vec3{}, 1)
	if b.Faces[0] == (Face{7, 7, 7}) {
		t.Error("Expected generated faces to be independent of earlier results")
	}
}

func TestKindCycleAndParse(t *testing.T) {
	if KindCube.Next() != KindPrism {
		t.Errorf("Expected prism after cube, got %v", KindCube.Next())
	}
	if KindPrism.Next() != KindCube {
		t.Errorf("Expected wrap to cube, got %v", KindPrism.Next())
	}

	k, err := ParseKind(" Prism ")
	if err != nil || k != KindPrism {
		t.Errorf("Expected prism, got %v (%v)", k, err)
	}
	if _, err := ParseKind("torus"); err == nil {
		t.Error("Expected error for unknown shape")
	}
	if KindCube.String() != "cube" {
		t.Errorf("Expected name cube, got %s", KindCube.String())
	}
}
