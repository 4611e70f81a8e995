package terminal

import (
	"io"

	"github.com/muesli/termenv"
)

// DarkBackground reports whether the terminal behind out has a dark background
// termenv queries the terminal (OSC 11) and falls back to dark when it cannot tell.
// Call before Init: the query reads the reply from stdin.
func DarkBackground(out io.Writer) bool {
	return termenv.NewOutput(out).HasDarkBackground()
}
