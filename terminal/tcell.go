package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal implements Terminal on a tcell screen
type tcellTerminal struct {
	screen  tcell.Screen
	eventCh chan Event
	launch  func(func())
	style   tcell.Style

	mu          sync.Mutex
	initialized bool
	finalized   bool
	pollDone    chan struct{}
}

// NewTcell creates a terminal backed by tcell's terminfo screen
func NewTcell(opts ...Option) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTcellWithScreen(screen, opts...), nil
}

func newTcellWithScreen(screen tcell.Screen, opts ...Option) *tcellTerminal {
	o := buildOptions(opts)
	return &tcellTerminal{
		screen:  screen,
		eventCh: make(chan Event, o.events),
		launch:  o.launch,
		style:   tcell.StyleDefault,
	}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()

	t.pollDone = make(chan struct{})
	t.launch(t.pollLoop)

	t.initialized = true
	return nil
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	// Fini makes PollEvent return nil, ending pollLoop
	t.screen.Fini()
	<-t.pollDone
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerminal) Events() <-chan Event {
	return t.eventCh
}

func (t *tcellTerminal) Present(cells []rune, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	if w, h := t.screen.Size(); w != width || h != height {
		return nil
	}

	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x, r := range row {
			t.screen.SetContent(x, y, r, nil, t.style)
		}
	}
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) pollLoop() {
	defer close(t.pollDone)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.send(Event{Type: EventClosed})
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if out, ok := convertTcellKey(ev); ok {
				t.send(out)
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			t.send(Event{Type: EventResize, Width: w, Height: h})
		case *tcell.EventError:
			t.send(Event{Type: EventError, Err: ev})
		}
	}
}

func (t *tcellTerminal) send(ev Event) {
	select {
	case t.eventCh <- ev:
	default:
	}
}

// tcellKeys maps named tcell keys; ctrl letters are handled by range
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
}

func convertTcellKey(ev *tcell.EventKey) (Event, bool) {
	var mod Modifier
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}

	k := ev.Key()
	if k == tcell.KeyRune {
		r := ev.Rune()
		// Some tcell versions report Ctrl+letter as a rune with ModCtrl
		if mod&ModCtrl != 0 {
			switch {
			case r >= 'a' && r <= 'z':
				return Event{Type: EventKey, Key: KeyCtrlA + Key(r-'a'), Modifiers: mod}, true
			case r >= 'A' && r <= 'Z':
				return Event{Type: EventKey, Key: KeyCtrlA + Key(r-'A'), Modifiers: mod}, true
			}
		}
		return Event{Type: EventKey, Key: KeyRune, Rune: r, Modifiers: mod}, true
	}
	if key, ok := tcellKeys[k]; ok {
		return Event{Type: EventKey, Key: key, Modifiers: mod}, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(k-tcell.KeyCtrlA), Modifiers: mod}, true
	}
	return Event{}, false
}
