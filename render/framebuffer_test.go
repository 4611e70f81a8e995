package render

import (
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/ascii3d/vmath"
)

func TestNewFrameBuffer(t *testing.T) {
	width, height := 80, 24
	fb := NewFrameBuffer(width, height, '.')

	if fb.Width() != width {
		t.Errorf("Expected width %d, got %d", width, fb.Width())
	}
	if fb.Height() != height {
		t.Errorf("Expected height %d, got %d", height, fb.Height())
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, ok := fb.Cell(x, y)
			if !ok || r != '.' {
				t.Fatalf("Expected background at (%d, %d), got %q", x, y, r)
			}
			d, _ := fb.Depth(x, y)
			if !math.IsInf(d, 1) {
				t.Fatalf("Expected +Inf depth at (%d, %d), got %v", x, y, d)
			}
		}
	}
}

func TestClearResetsCellsAndDepth(t *testing.T) {
	fb := NewFrameBuffer(7, 5, ' ')
	fb.DrawText(0, 0, "hello", 1)
	fb.DrawPoint(vmath.Vec2{X: 6, Y: 4}, '#', 2)

	fb.Clear()

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			r, _ := fb.Cell(x, y)
			d, _ := fb.Depth(x, y)
			if r != ' ' || !math.IsInf(d, 1) {
				t.Fatalf("Expected cleared cell at (%d, %d), got %q depth %v", x, y, r, d)
			}
		}
	}
}

func TestDepthTestNearerWins(t *testing.T) {
	fb := NewFrameBuffer(10, 10, ' ')
	p := vmath.Vec2{X: 3, Y: 3}

	fb.DrawPoint(p, 'a', 5.0)
	fb.DrawPoint(p, 'b', 2.0)

	r, _ := fb.Cell(3, 3)
	d, _ := fb.Depth(3, 3)
	if r != 'b' || d != 2.0 {
		t.Errorf("Expected 'b' at depth 2, got %q at %v", r, d)
	}
}

func TestDepthTestFartherLoses(t *testing.T) {
	fb := NewFrameBuffer(10, 10, ' ')
	p := vmath.Vec2{X: 3, Y: 3}

	fb.DrawPoint(p, 'a', 2.0)
	if fb.DrawPoint(p, 'b', 5.0) {
		t.Error("Expected farther write to be rejected")
	}

	r, _ := fb.Cell(3, 3)
	d, _ := fb.Depth(3, 3)
	if r != 'a' || d != 2.0 {
		t.Errorf("Expected 'a' at depth 2, got %q at %v", r, d)
	}
}

func TestDepthTestTieKeepsFirst(t *testing.T) {
	fb := NewFrameBuffer(4, 4, ' ')
	p := vmath.Vec2{X: 1, Y: 1}

	fb.DrawPoint(p, 'a', 3.0)
	fb.DrawPoint(p, 'b', 3.0)

	if r, _ := fb.Cell(1, 1); r != 'a' {
		t.Errorf("Expected first writer 'a' to win a tie, got %q", r)
	}
}

func TestDrawPointFloorsAndClips(t *testing.T) {
	fb := NewFrameBuffer(5, 5, ' ')

	if !fb.DrawPoint(vmath.Vec2{X: 2.9, Y: 0.1}, '*', 0) {
		t.Fatal("Expected in-bounds write")
	}
	if r, _ := fb.Cell(2, 0); r != '*' {
		t.Errorf("Expected floored write at (2,0), got %q", r)
	}

	outside := []vmath.Vec2{
		{X: -0.5, Y: 1},
		{X: 5, Y: 1},
		{X: 1, Y: 5.2},
		{X: math.Inf(1), Y: 0},
		{X: math.NaN(), Y: 0},
	}
	for _, p := range outside {
		if fb.DrawPoint(p, 'x', 0) {
			t.Errorf("Expected %v to be discarded", p)
		}
	}
}

func TestDrawLineHorizontalTouchesFiveCells(t *testing.T) {
	var visited [][2]int
	bresenham(0, 0, 4, 0, func(x, y int) {
		visited = append(visited, [2]int{x, y})
	})

	if len(visited) != 5 {
		t.Fatalf("Expected 5 visited cells, got %d: %v", len(visited), visited)
	}
	if visited[0] != [2]int{0, 0} || visited[4] != [2]int{4, 0} {
		t.Errorf("Expected both endpoints, got %v", visited)
	}

	fb := NewFrameBuffer(10, 3, ' ')
	if n := fb.DrawLine(vmath.Vec2{X: 0, Y: 0}, vmath.Vec2{X: 4, Y: 0}, '#', 1); n != 5 {
		t.Errorf("Expected 5 cells written, got %d", n)
	}
	if got := fb.Row(0); got != "#####     " {
		t.Errorf("Expected row %q, got %q", "#####     ", got)
	}
}

func TestBresenhamDirectionsIncludeEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		count          int
	}{
		{"single", 2, 2, 2, 2, 1},
		{"reverse", 4, 0, 0, 0, 5},
		{"vertical", 1, 0, 1, 3, 4},
		{"diagonal", 0, 0, 3, 3, 4},
		{"steep", 0, 0, 1, 4, 5},
		{"negative", 3, 3, -2, 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pts [][2]int
			bresenham(tt.x1, tt.y1, tt.x2, tt.y2, func(x, y int) {
				pts = append(pts, [2]int{x, y})
			})
			if len(pts) != tt.count {
				t.Errorf("Expected %d points, got %d: %v", tt.count, len(pts), pts)
			}
			if pts[0] != [2]int{tt.x1, tt.y1} {
				t.Errorf("Expected start (%d,%d), got %v", tt.x1, tt.y1, pts[0])
			}
			if pts[len(pts)-1] != [2]int{tt.x2, tt.y2} {
				t.Errorf("Expected end (%d,%d), got %v", tt.x2, tt.y2, pts[len(pts)-1])
			}
		})
	}
}

func TestDrawLineUsesDepthPerCell(t *testing.T) {
	fb := NewFrameBuffer(10, 1, ' ')
	fb.DrawPoint(vmath.Vec2{X: 2, Y: 0}, 'n', 1.0)

	n := fb.DrawLine(vmath.Vec2{X: 0, Y: 0}, vmath.Vec2{X: 4, Y: 0}, 'f', 3.0)
	if n != 4 {
		t.Errorf("Expected 4 cells written around the nearer point, got %d", n)
	}
	if got := fb.Row(0); got != "ffnff     " {
		t.Errorf("Expected %q, got %q", "ffnff     ", got)
	}
}

func TestDrawLineClipsPartially(t *testing.T) {
	fb := NewFrameBuffer(5, 1, ' ')
	n := fb.DrawLine(vmath.Vec2{X: -3, Y: 0}, vmath.Vec2{X: 8, Y: 0}, '-', 0)
	if n != 5 {
		t.Errorf("Expected only the 5 visible cells written, got %d", n)
	}
}

func TestDrawLineDiscardsNonFiniteEndpoints(t *testing.T) {
	fb := NewFrameBuffer(10, 10, ' ')

	cases := [][2]vmath.Vec2{
		{{X: 5, Y: 5}, {X: math.Inf(1), Y: 5}},
		{{X: math.NaN(), Y: 0}, {X: 5, Y: 5}},
		{{X: -math.MaxFloat64, Y: 5}, {X: math.MaxFloat64, Y: 5}},
	}
	for _, c := range cases {
		if n := fb.DrawLine(c[0], c[1], '#', 0); n != 0 {
			t.Errorf("Expected line %v-%v to be discarded, wrote %d", c[0], c[1], n)
		}
	}
}

func TestDrawLineClipsFarEndpointToGuardBand(t *testing.T) {
	fb := NewFrameBuffer(10, 10, ' ')

	// Heads off to a far-away point but crosses the screen on the way
	n := fb.DrawLine(vmath.Vec2{X: 5, Y: 5}, vmath.Vec2{X: 1e12, Y: -1e12}, '#', 0)
	if n == 0 {
		t.Fatal("Expected the on-screen part of the line to be drawn")
	}
	if r, _ := fb.Cell(5, 5); r != '#' {
		t.Errorf("Expected start cell written, got %q", r)
	}

	// Both endpoints far out on opposite sides
	fb.Clear()
	if n := fb.DrawLine(vmath.Vec2{X: -1e9, Y: 3}, vmath.Vec2{X: 1e9, Y: 3}, '-', 0); n != 10 {
		t.Errorf("Expected the full visible row of 10 cells, got %d", n)
	}
	if got := fb.Row(3); got != "----------" {
		t.Errorf("Expected %q, got %q", "----------", got)
	}

	// Entirely outside the guard band
	fb.Clear()
	if n := fb.DrawLine(vmath.Vec2{X: 1e9, Y: 0}, vmath.Vec2{X: 2e9, Y: 9}, '#', 0); n != 0 {
		t.Errorf("Expected nothing drawn, got %d", n)
	}
}

func TestClipGuardKeepsInsideEndpoints(t *testing.T) {
	fb := NewFrameBuffer(10, 10, ' ')
	p1, p2 := vmath.Vec2{X: -3.3, Y: 1.7}, vmath.Vec2{X: 12.1, Y: 8.9}

	a, b, ok := fb.clipGuard(p1, p2)
	if !ok || a != p1 || b != p2 {
		t.Errorf("Expected %v-%v unchanged, got %v-%v (ok=%v)", p1, p2, a, b, ok)
	}

	_, b, ok = fb.clipGuard(vmath.Vec2{X: 5, Y: 5}, vmath.Vec2{X: 1e6, Y: 5})
	if !ok || math.Abs(b.X-170) > 1e-9 || b.Y != 5 {
		t.Errorf("Expected clip at x=170, got %v (ok=%v)", b, ok)
	}
}

func TestDrawText(t *testing.T) {
	fb := NewFrameBuffer(8, 2, ' ')

	n := fb.DrawText(5, 1, "abcdef", 0)
	if n != 3 {
		t.Errorf("Expected 3 visible characters, got %d", n)
	}
	if got := fb.Row(1); got != "     abc" {
		t.Errorf("Expected %q, got %q", "     abc", got)
	}

	// Nearer geometry hides farther text per cell
	fb.Clear()
	fb.DrawPoint(vmath.Vec2{X: 1, Y: 0}, '#', 1)
	fb.DrawText(0, 0, "xyz", 2)
	if got := fb.Row(0); got != "x#z     " {
		t.Errorf("Expected %q, got %q", "x#z     ", got)
	}

	if fb.DrawText(0, -1, "nope", 0) != 0 {
		t.Error("Expected text above the screen to be discarded")
	}
}

func TestResize(t *testing.T) {
	fb := NewFrameBuffer(4, 4, '~')
	fb.DrawText(0, 0, "ab", 0)

	fb.Resize(6, 2)
	if fb.Width() != 6 || fb.Height() != 2 {
		t.Fatalf("Expected 6x2, got %dx%d", fb.Width(), fb.Height())
	}
	if got := fb.Row(0); got != strings.Repeat("~", 6) {
		t.Errorf("Expected cleared row after resize, got %q", got)
	}

	fb.Resize(-1, 3)
	if fb.DrawText(0, 0, "x", 0) != 0 {
		t.Error("Expected empty buffer to discard writes")
	}
}

type captureDisplay struct {
	cells         []rune
	width, height int
}

func (c *captureDisplay) Present(cells []rune, width, height int) error {
	c.cells = append(c.cells[:0], cells...)
	c.width, c.height = width, height
	return nil
}

func TestRenderHandsGridToDisplay(t *testing.T) {
	fb := NewFrameBuffer(3, 2, ' ')
	fb.DrawText(0, 1, "xyz", 0)

	var d captureDisplay
	if err := fb.Render(&d); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if d.width != 3 || d.height != 2 {
		t.Errorf("Expected 3x2, got %dx%d", d.width, d.height)
	}
	if string(d.cells) != "   xyz" {
		t.Errorf("Expected row-major %q, got %q", "   xyz", string(d.cells))
	}
}
