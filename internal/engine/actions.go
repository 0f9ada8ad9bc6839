// Package engine turns per-frame gesture classifications into pointer and
// key actions, owning the control/draw mode state machine, debounce counters
// and the position smoother.
package engine

import "github.com/keerthipriyaa029/gesturemouse/internal/gesture"

// Mode is the active interaction mode. Exactly one mode is active at a time
// and it is owned and mutated only by the Engine.
type Mode string

const (
	// ModeControl maps gestures to cursor, scroll and key actions.
	ModeControl Mode = "control"
	// ModeDraw maps the pointing gesture to drag-to-point drawing.
	ModeDraw Mode = "draw"
)

// ActionKind identifies the type of an emitted action.
type ActionKind string

const (
	// ActionMove moves the cursor to an absolute screen position.
	ActionMove ActionKind = "move"
	// ActionDraw drags to an absolute screen position with the left button held.
	ActionDraw ActionKind = "draw"
	// ActionClick presses and releases a mouse button at the current position.
	ActionClick ActionKind = "click"
	// ActionScroll scrolls vertically by Delta notches, positive up.
	ActionScroll ActionKind = "scroll"
	// ActionKey taps a named key (volume_up, volume_down, brightness_up,
	// brightness_down).
	ActionKey ActionKind = "key"
	// ActionModeSwitch reports a completed mode transition; Mode holds the
	// new mode.
	ActionModeSwitch ActionKind = "mode_switch"
)

// Key names carried by ActionKey events. The injection layer maps them to
// platform key codes.
const (
	KeyVolumeUp       = "volume_up"
	KeyVolumeDown     = "volume_down"
	KeyBrightnessUp   = "brightness_up"
	KeyBrightnessDown = "brightness_down"
)

// Action is one instruction for the external input-injection layer.
// Actions are transient: emitted, dispatched, then discarded.
type Action struct {
	Kind    ActionKind    `json:"kind"`
	X       int           `json:"x,omitempty"`
	Y       int           `json:"y,omitempty"`
	Button  string        `json:"button,omitempty"`
	Delta   int           `json:"delta,omitempty"`
	Key     string        `json:"key,omitempty"`
	Mode    Mode          `json:"mode,omitempty"`
	Gesture gesture.Label `json:"gesture,omitempty"`
}
