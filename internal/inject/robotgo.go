package inject

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"
)

// Robotgo injects events through the robotgo library.
type Robotgo struct {
	dragging bool
}

// NewRobotgo returns an injector backed by robotgo.
func NewRobotgo() *Robotgo {
	return &Robotgo{}
}

// ScreenSize reports the primary display's dimensions in pixels.
func ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

func (r *Robotgo) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robotgo) DragTo(x, y int) error {
	if !r.dragging {
		robotgo.Toggle("left", "down")
		r.dragging = true
	}
	robotgo.Move(x, y)
	return nil
}

func (r *Robotgo) EndDrag() error {
	if !r.dragging {
		return nil
	}
	robotgo.Toggle("left", "up")
	r.dragging = false
	return nil
}

func (r *Robotgo) Click(button string, x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click(button)
	return nil
}

func (r *Robotgo) Scroll(delta int) error {
	robotgo.Scroll(0, delta)
	return nil
}

func (r *Robotgo) KeyTap(key string) error {
	token, ok := SystemKey(key)
	if !ok {
		return errors.Wrap(ErrUnsupportedKey, key)
	}
	if err := robotgo.KeyTap(token); err != nil {
		return errors.Wrapf(err, "key tap %q", token)
	}
	return nil
}
