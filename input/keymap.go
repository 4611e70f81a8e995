package input

import (
	"fmt"
	"maps"
	"strings"

	"github.com/lixenwraith/ascii3d/terminal"
)

// Binding identifies a key; Rune is set only for terminal.KeyRune
type Binding struct {
	Key  terminal.Key
	Rune rune
}

// RuneBinding binds a printable character
func RuneBinding(r rune) Binding {
	return Binding{Key: terminal.KeyRune, Rune: r}
}

// KeyBinding binds a named key
func KeyBinding(k terminal.Key) Binding {
	return Binding{Key: k}
}

// Keymap maps keys to actions
type Keymap map[Binding]Action

// DefaultKeymap returns the default bindings
func DefaultKeymap() Keymap {
	return Keymap{
		RuneBinding('x'): ActionRotateXPos,
		RuneBinding('X'): ActionRotateXNeg,
		RuneBinding('y'): ActionRotateYPos,
		RuneBinding('Y'): ActionRotateYNeg,
		RuneBinding('z'): ActionRotateZPos,
		RuneBinding('Z'): ActionRotateZNeg,

		KeyBinding(terminal.KeyUp):    ActionRotateXNeg,
		KeyBinding(terminal.KeyDown):  ActionRotateXPos,
		KeyBinding(terminal.KeyLeft):  ActionRotateYNeg,
		KeyBinding(terminal.KeyRight): ActionRotateYPos,

		RuneBinding(' '):               ActionToggleSpin,
		RuneBinding('p'):               ActionPause,
		RuneBinding('s'):               ActionNextShape,
		KeyBinding(terminal.KeyTab):    ActionNextShape,
		RuneBinding('o'):               ActionToggleProjection,
		RuneBinding('+'):               ActionZoomIn,
		RuneBinding('='):               ActionZoomIn,
		RuneBinding('-'):               ActionZoomOut,
		RuneBinding('r'):               ActionReset,
		RuneBinding('h'):               ActionToggleHUD,
		RuneBinding('m'):               ActionToggleSound,
		RuneBinding('q'):               ActionQuit,
		KeyBinding(terminal.KeyEscape): ActionQuit,
		KeyBinding(terminal.KeyCtrlC):  ActionQuit,
	}
}

// Lookup returns the action bound to a key event, ActionNone otherwise
func (km Keymap) Lookup(ev terminal.Event) Action {
	if ev.Type != terminal.EventKey {
		return ActionNone
	}
	b := Binding{Key: ev.Key}
	if ev.Key == terminal.KeyRune {
		b.Rune = ev.Rune
	}
	return km[b]
}

// Clone returns an independent copy
func (km Keymap) Clone() Keymap {
	return maps.Clone(km)
}

// Override returns a copy with the given key→action bindings applied
// Keys are single characters, an alias (space, plus, minus) or a terminal key name.
// Action "none" removes the binding.
func (km Keymap) Override(bindings map[string]string) (Keymap, error) {
	result := km.Clone()
	if result == nil {
		result = Keymap{}
	}

	for keyStr, actionName := range bindings {
		b, err := ParseBinding(keyStr)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}
		a, err := ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}
		if a == ActionNone {
			delete(result, b)
		} else {
			result[b] = a
		}
	}
	return result, nil
}

// runeAliases cover keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"plus":      '+',
	"minus":     '-',
	"backslash": '\\',
}

// ParseBinding converts a config key string to a Binding
func ParseBinding(s string) (Binding, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return RuneBinding(r), nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return RuneBinding(runes[0]), nil
	}

	if k, ok := terminal.KeyByName(strings.ToLower(s)); ok {
		return KeyBinding(k), nil
	}
	return Binding{}, fmt.Errorf("invalid key: %q (expected single character, alias or key name)", s)
}
