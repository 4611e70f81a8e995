package render

import (
	"math"

	"github.com/lixenwraith/ascii3d/vmath"
)

// guardBand is how far outside the viewport lines are rasterized, in viewport sizes
// Lines reaching further are clipped to it so a near-singular projection cannot stall a frame
const guardBand = 16

// DrawPoint writes ch at the floored position if in bounds and nearer than the current depth
// Returns true if the cell was written
func (fb *FrameBuffer) DrawPoint(p vmath.Vec2, ch rune, depth float64) bool {
	if !vmath.V2IsFinite(p) {
		return false
	}
	return fb.plot(int(math.Floor(p.X)), int(math.Floor(p.Y)), ch, depth)
}

// DrawPoints draws every point with the same character and depth
func (fb *FrameBuffer) DrawPoints(ps []vmath.Vec2, ch rune, depth float64) int {
	n := 0
	for _, p := range ps {
		if fb.DrawPoint(p, ch, depth) {
			n++
		}
	}
	return n
}

// DrawLine rasterizes p1→p2 with Bresenham between floored endpoints, both inclusive
// Every visited cell goes through the same bounds and depth test as DrawPoint using one
// constant depth. Lines with a non-finite endpoint are dropped. Returns the number of
// cells written.
func (fb *FrameBuffer) DrawLine(p1, p2 vmath.Vec2, ch rune, depth float64) int {
	p1, p2, ok := fb.clipGuard(p1, p2)
	if !ok {
		return 0
	}

	x1, y1 := int(math.Floor(p1.X)), int(math.Floor(p1.Y))
	x2, y2 := int(math.Floor(p2.X)), int(math.Floor(p2.Y))

	n := 0
	bresenham(x1, y1, x2, y2, func(x, y int) {
		if fb.plot(x, y, ch, depth) {
			n++
		}
	})
	return n
}

// DrawText writes text left to right from (x, y), each rune tested independently
// Returns the number of cells written
func (fb *FrameBuffer) DrawText(x, y int, text string, depth float64) int {
	n := 0
	i := 0
	for _, r := range text {
		if fb.plot(x+i, y, r, depth) {
			n++
		}
		i++
	}
	return n
}

// clipGuard clips p1→p2 to the guard rectangle (Liang–Barsky)
// Endpoints already inside are returned unchanged; ok is false when nothing remains.
func (fb *FrameBuffer) clipGuard(p1, p2 vmath.Vec2) (vmath.Vec2, vmath.Vec2, bool) {
	if !vmath.V2IsFinite(p1) || !vmath.V2IsFinite(p2) {
		return p1, p2, false
	}

	span := float64(guardBand * max(fb.width, fb.height, 1))
	xmin, xmax := -span, float64(fb.width)+span
	ymin, ymax := -span, float64(fb.height)+span

	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	edges := [4][2]float64{
		{-dx, p1.X - xmin},
		{dx, xmax - p1.X},
		{-dy, p1.Y - ymin},
		{dy, ymax - p1.Y},
	}

	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			// Parallel to this edge
			if q < 0 {
				return p1, p2, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p1, p2, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return p1, p2, false
			}
			t1 = min(t1, r)
		}
	}

	a, b := p1, p2
	if t0 > 0 {
		a = vmath.Vec2{X: p1.X + t0*dx, Y: p1.Y + t0*dy}
	}
	if t1 < 1 {
		b = vmath.Vec2{X: p1.X + t1*dx, Y: p1.Y + t1*dy}
	}
	// dx overflows to Inf for endpoints near the float range; NaN fails these tests too
	inside := func(p vmath.Vec2) bool {
		return p.X >= xmin-1 && p.X <= xmax+1 && p.Y >= ymin-1 && p.Y <= ymax+1
	}
	if !inside(a) || !inside(b) {
		return p1, p2, false
	}
	return a, b, true
}

// bresenham visits every lattice point from (x1,y1) to (x2,y2) inclusive
func bresenham(x1, y1, x2, y2 int, visit func(x, y int)) {
	dx := absInt(x2 - x1)
	dy := absInt(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		visit(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
