// Package scene runs the per-frame geometry pipeline: rotate, scale, translate, project,
// cull, shade and draw the three edges of every surviving face.
package scene

import (
	"github.com/lixenwraith/ascii3d/mesh"
	"github.com/lixenwraith/ascii3d/projection"
	"github.com/lixenwraith/ascii3d/shading"
	"github.com/lixenwraith/ascii3d/transform"
	"github.com/lixenwraith/ascii3d/vmath"
)

// Canvas is the raster target; *render.FrameBuffer implements it
type Canvas interface {
	DrawLine(p1, p2 vmath.Vec2, ch rune, depth float64) int
}

// Pose is the per-frame object state
type Pose struct {
	Rotation vmath.Euler
	Zoom     float64 // uniform scale about the object origin, 0 means 1
}

// Stats counts faces processed in one frame
type Stats struct {
	Faces  int // faces in the mesh
	Culled int // skipped by the centroid depth test
	Broken int // skipped for referencing a missing vertex
	Drawn  int // faces whose edges were drawn
	Cells  int // cells written by edge rasterization
}

// Scene holds the frame-invariant pipeline parts
type Scene struct {
	Projector projection.Projector
	Shader    *shading.Shader

	// Offset moves the object in front of the camera after rotation
	Offset vmath.Vec3
}

// New creates a scene
func New(p projection.Projector, s *shading.Shader, offset vmath.Vec3) *Scene {
	return &Scene{
		Projector: p,
		Shader:    s,
		Offset:    offset,
	}
}

// Transform returns the camera-space vertices of m for the given pose
// Order: rotate about the origin, scale about the origin, translate by Offset
func (sc *Scene) Transform(m mesh.Mesh, pose Pose) []vmath.Vec3 {
	verts := transform.Rotate(m.Vertices, pose.Rotation, vmath.Vec3{})
	if pose.Zoom != 0 && pose.Zoom != 1 {
		verts = transform.Scale(verts, pose.Zoom, vmath.Vec3{})
	}
	return transform.Translate(verts, sc.Offset)
}

// Draw renders one frame of m onto c
// A face whose camera-space centroid has z <= 0 is culled before shading and makes no
// draw calls. Surviving faces draw their three edges with one shade character at the
// centroid depth.
func (sc *Scene) Draw(c Canvas, m mesh.Mesh, pose Pose) Stats {
	world := sc.Transform(m, pose)
	screen := sc.Projector.Project(world)

	st := Stats{Faces: len(m.Faces)}
	n := len(world)

	for _, f := range m.Faces {
		if f[0] < 0 || f[0] >= n || f[1] < 0 || f[1] >= n || f[2] < 0 || f[2] >= n {
			st.Broken++
			continue
		}

		a, b, d := world[f[0]], world[f[1]], world[f[2]]
		centroid := vmath.V3Centroid(a, b, d)
		if centroid.Z <= 0 {
			st.Culled++
			continue
		}

		ch := sc.Shader.ShadeFace(a, b, d)
		depth := centroid.Z

		pa, pb, pd := screen[f[0]], screen[f[1]], screen[f[2]]
		st.Cells += c.DrawLine(pa, pb, ch, depth)
		st.Cells += c.DrawLine(pb, pd, ch, depth)
		st.Cells += c.DrawLine(pd, pa, ch, depth)
		st.Drawn++
	}

	return st
}
