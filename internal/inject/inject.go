// Package inject delivers pointer and keyboard events to the operating
// system. The production implementation drives robotgo; tests use the
// Recorder double.
package inject

import "github.com/pkg/errors"

// ErrUnsupportedKey is returned when a named key has no system key binding
// on this platform. Callers may fall back to an external command binding.
var ErrUnsupportedKey = errors.New("inject: unsupported key")

// Injector performs input events on the host system.
type Injector interface {
	// MoveTo places the cursor at absolute screen coordinates.
	MoveTo(x, y int) error

	// DragTo moves the cursor with the left button held, starting the drag
	// on the first call. EndDrag releases the button.
	DragTo(x, y int) error
	EndDrag() error

	// Click presses and releases the named button ("left" or "right") at
	// the given coordinates.
	Click(button string, x, y int) error

	// Scroll scrolls vertically by delta notches, positive meaning up.
	Scroll(delta int) error

	// KeyTap taps a named media key. Returns ErrUnsupportedKey for keys
	// robotgo cannot deliver on this platform.
	KeyTap(key string) error
}

// systemKeys maps engine key names onto robotgo key tokens. Brightness has
// no portable robotgo token, so those keys stay unmapped and are served by
// command bindings instead.
var systemKeys = map[string]string{
	"volume_up":   "audio_vol_up",
	"volume_down": "audio_vol_down",
	"volume_mute": "audio_mute",
}

// SystemKey resolves an engine key name to a robotgo key token.
func SystemKey(name string) (string, bool) {
	k, ok := systemKeys[name]
	return k, ok
}
