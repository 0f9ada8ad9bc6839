package inject

import "fmt"

// Event is one recorded injection, rendered as a compact string so tests
// can assert on sequences.
type Event string

// Recorder captures injected events instead of delivering them.
type Recorder struct {
	Events []Event

	// FailKeys makes KeyTap return ErrUnsupportedKey for the listed names,
	// simulating keys robotgo cannot serve.
	FailKeys map[string]bool

	dragging bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{FailKeys: make(map[string]bool)}
}

func (r *Recorder) record(format string, args ...any) {
	r.Events = append(r.Events, Event(fmt.Sprintf(format, args...)))
}

func (r *Recorder) MoveTo(x, y int) error {
	r.record("move %d,%d", x, y)
	return nil
}

func (r *Recorder) DragTo(x, y int) error {
	if !r.dragging {
		r.record("drag start")
		r.dragging = true
	}
	r.record("drag %d,%d", x, y)
	return nil
}

func (r *Recorder) EndDrag() error {
	if r.dragging {
		r.record("drag end")
		r.dragging = false
	}
	return nil
}

func (r *Recorder) Click(button string, x, y int) error {
	r.record("click %s %d,%d", button, x, y)
	return nil
}

func (r *Recorder) Scroll(delta int) error {
	r.record("scroll %d", delta)
	return nil
}

func (r *Recorder) KeyTap(key string) error {
	if r.FailKeys[key] {
		return ErrUnsupportedKey
	}
	r.record("key %s", key)
	return nil
}

// Reset clears the recorded events and drag state.
func (r *Recorder) Reset() {
	r.Events = nil
	r.dragging = false
}
