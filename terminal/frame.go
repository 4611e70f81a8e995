package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// FrameWriter emits a full character grid as ANSI output
// Each frame hides the cursor, homes it, positions every row explicitly, then shows the
// cursor. Rows are addressed with ESC[row;1H rather than newlines so raw mode output
// without CR translation stays aligned.
type FrameWriter struct {
	w *bufio.Writer
}

// NewFrameWriter wraps w with a buffer sized for a typical frame
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: bufio.NewWriterSize(w, 64*1024)}
}

// Present writes one frame; cells is row-major with len >= width*height
func (f *FrameWriter) Present(cells []rune, width, height int) error {
	if width < 0 || height < 0 || len(cells) < width*height {
		return fmt.Errorf("frame %dx%d: have %d cells", width, height, len(cells))
	}

	w := f.w
	w.Write(csiCursorHide)
	w.Write(csiHome)
	for y := 0; y < height; y++ {
		writeCursorPos(w, 0, y)
		for _, r := range cells[y*width : (y+1)*width] {
			w.WriteRune(r)
		}
	}
	w.Write(csiCursorShow)
	return w.Flush()
}
