// Package terminal provides the character display used by the renderer.
//
// Two implementations of Terminal are available:
//   - New: raw-mode stdin/stdout with direct ANSI output, SIGWINCH resize and a
//     zero-dependency key parser
//   - NewTcell: a tcell screen, for terminals the ANSI path handles poorly
//
// Both deliver key and resize events on a channel that the frame loop drains without
// blocking, and both accept a full row-major rune grid per frame.
package terminal
