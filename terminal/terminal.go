package terminal

import (
	"io"
	"os"
	"sync"
)

// Terminal is a character display with keyboard and resize events
// Present matches render.Display so a terminal can be handed straight to a frame buffer.
type Terminal interface {
	// Init enters raw mode and the alternate screen, hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Events delivers key and resize events; closed never, drained by the frame loop
	Events() <-chan Event

	// Present writes a row-major cell grid
	Present(cells []rune, width, height int) error
}

// Option configures a terminal
type Option func(*options)

type options struct {
	launch func(func())
	events int
}

// WithLauncher sets how background goroutines are started, for crash-safe wrappers
func WithLauncher(launch func(func())) Option {
	return func(o *options) { o.launch = launch }
}

// WithEventBuffer sets the event channel capacity
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.events = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		launch: func(fn func()) { go fn() },
		events: 256,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ansiTerminal implements Terminal over a raw Backend with direct ANSI output
type ansiTerminal struct {
	backend Backend
	frame   *FrameWriter
	input   *inputReader
	eventCh chan Event
	launch  func(func())

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates the raw-mode ANSI terminal on stdin/stdout
func New(opts ...Option) Terminal {
	return newANSI(newBackend(), opts...)
}

func newANSI(b Backend, opts ...Option) *ansiTerminal {
	o := buildOptions(opts)
	return &ansiTerminal{
		backend: b,
		frame:   NewFrameWriter(backendWriter{b}),
		eventCh: make(chan Event, o.events),
		launch:  o.launch,
	}
}

func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.backend.SetResizeHandler(func(w, h int) {
		t.send(Event{Type: EventResize, Width: w, Height: h})
	})

	t.writeRaw(csiAltScreenEnter)
	t.writeRaw(csiCursorHide)
	t.writeRaw(csiAutoWrapOff)
	t.writeRaw(csiClear)

	t.input = newInputReader(t.backend, t.send)
	t.input.start(t.launch)

	t.initialized = true
	return nil
}

func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	t.writeRaw(csiCursorShow)
	t.writeRaw(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the main buffer gets it
	t.writeRaw(csiAutoWrapOn)
	t.writeRaw(csiSGR0)

	t.backend.Fini()
	t.finalized = true
}

func (t *ansiTerminal) Size() (int, int) {
	return t.backend.Size()
}

func (t *ansiTerminal) Events() <-chan Event {
	return t.eventCh
}

// Present drops frames sized for a stale viewport; the resize event is already queued
func (t *ansiTerminal) Present(cells []rune, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	if w, h := t.backend.Size(); w != width || h != height {
		return nil
	}
	return t.frame.Present(cells, width, height)
}

// send delivers without blocking the reader; a full channel drops the event
func (t *ansiTerminal) send(ev Event) {
	select {
	case t.eventCh <- ev:
	default:
	}
}

func (t *ansiTerminal) writeRaw(data []byte) {
	t.backend.Write(data)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
