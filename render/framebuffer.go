package render

import (
	"math"
)

// Display receives a finished frame
// cells is row-major: cells[y*width + x]; implementations must not retain it
type Display interface {
	Present(cells []rune, width, height int) error
}

// FrameBuffer is a character grid with a parallel depth grid
// Depth holds the nearest depth written this frame, +Inf where nothing was drawn.
// Owned by a single frame loop; not safe for concurrent use.
type FrameBuffer struct {
	cells      []rune
	depth      []float64
	width      int
	height     int
	background rune
}

// NewFrameBuffer creates a cleared buffer
// Non-positive dimensions produce an empty buffer that discards all writes
func NewFrameBuffer(width, height int, background rune) *FrameBuffer {
	fb := &FrameBuffer{background: background}
	fb.Resize(width, height)
	return fb
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient, and clears
func (fb *FrameBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(fb.cells) < size {
		fb.cells = make([]rune, size)
		fb.depth = make([]float64, size)
	} else {
		fb.cells = fb.cells[:size]
		fb.depth = fb.depth[:size]
	}
	fb.width = width
	fb.height = height
	fb.Clear()
}

// Clear resets every cell to the background and every depth to +Inf using exponential copy
func (fb *FrameBuffer) Clear() {
	if len(fb.cells) == 0 {
		return
	}
	fb.cells[0] = fb.background
	fb.depth[0] = math.Inf(1)
	for filled := 1; filled < len(fb.cells); filled *= 2 {
		copy(fb.cells[filled:], fb.cells[:filled])
	}
	for filled := 1; filled < len(fb.depth); filled *= 2 {
		copy(fb.depth[filled:], fb.depth[:filled])
	}
}

func (fb *FrameBuffer) Width() int       { return fb.width }
func (fb *FrameBuffer) Height() int      { return fb.height }
func (fb *FrameBuffer) Background() rune { return fb.background }

// SetBackground changes the fill character used by the next Clear
func (fb *FrameBuffer) SetBackground(r rune) {
	fb.background = r
}

// inBounds returns true if in screen bounds
func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// Cell returns the character at (x, y)
func (fb *FrameBuffer) Cell(x, y int) (rune, bool) {
	if !fb.inBounds(x, y) {
		return 0, false
	}
	return fb.cells[y*fb.width+x], true
}

// Depth returns the depth at (x, y), +Inf if nothing was drawn
func (fb *FrameBuffer) Depth(x, y int) (float64, bool) {
	if !fb.inBounds(x, y) {
		return 0, false
	}
	return fb.depth[y*fb.width+x], true
}

// Row returns a copy of row y as a string
func (fb *FrameBuffer) Row(y int) string {
	if y < 0 || y >= fb.height {
		return ""
	}
	start := y * fb.width
	return string(fb.cells[start : start+fb.width])
}

// Render hands the composited grid to the display
func (fb *FrameBuffer) Render(d Display) error {
	return d.Present(fb.cells, fb.width, fb.height)
}

// plot is the single write path: bounds check then nearer-wins depth test
// Equal depth keeps the existing cell
func (fb *FrameBuffer) plot(x, y int, ch rune, depth float64) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	idx := y*fb.width + x
	if !(depth < fb.depth[idx]) {
		return false
	}
	fb.cells[idx] = ch
	fb.depth[idx] = depth
	return true
}
