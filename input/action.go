package input

import (
	"fmt"
	"strings"
)

// Action is a semantic control request produced from a key
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit

	ActionRotateXPos
	ActionRotateXNeg
	ActionRotateYPos
	ActionRotateYNeg
	ActionRotateZPos
	ActionRotateZNeg

	ActionToggleSpin
	ActionPause
	ActionNextShape
	ActionToggleProjection
	ActionZoomIn
	ActionZoomOut
	ActionReset
	ActionToggleHUD
	ActionToggleSound

	actionCount
)

// actionNames are the canonical config names; "none" unbinds a key
var actionNames = [actionCount]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionRotateXPos:       "rotate_x_pos",
	ActionRotateXNeg:       "rotate_x_neg",
	ActionRotateYPos:       "rotate_y_pos",
	ActionRotateYNeg:       "rotate_y_neg",
	ActionRotateZPos:       "rotate_z_pos",
	ActionRotateZNeg:       "rotate_z_neg",
	ActionToggleSpin:       "toggle_spin",
	ActionPause:            "pause",
	ActionNextShape:        "next_shape",
	ActionToggleProjection: "toggle_projection",
	ActionZoomIn:           "zoom_in",
	ActionZoomOut:          "zoom_out",
	ActionReset:            "reset",
	ActionToggleHUD:        "toggle_hud",
	ActionToggleSound:      "toggle_sound",
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// ParseAction resolves a config action name
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action: %q", name)
}
