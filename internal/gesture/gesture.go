// Package gesture classifies single-frame hand landmarks into discrete
// gesture labels using threshold-based geometry rules.
package gesture

// Label identifies a recognized hand gesture. Exactly one label is produced
// per frame; LabelNone means no gesture (or no hand) was recognized.
type Label string

const (
	LabelNone        Label = "none"
	LabelMoveCursor  Label = "move_cursor"
	LabelLeftClick   Label = "left_click"
	LabelRightClick  Label = "right_click"
	LabelScrollUp    Label = "scroll_up"
	LabelScrollDown  Label = "scroll_down"
	LabelOpenPalm    Label = "open_palm"
	LabelFist        Label = "fist"
	LabelThumbUp     Label = "thumb_up"
	LabelThumbDown   Label = "thumb_down"
	LabelThreeFinger Label = "three_finger"
)

// FingerState reports which fingers are extended, in the usual
// thumb-to-pinky order.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// Count returns how many fingers are extended.
func (f FingerState) Count() int {
	n := 0
	for _, up := range [5]bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if up {
			n++
		}
	}
	return n
}

// onlyIndex reports the cursor-move pose: index extended, everything else folded.
func (f FingerState) onlyIndex() bool {
	return !f.Thumb && f.Index && !f.Middle && !f.Ring && !f.Pinky
}

// indexMiddle reports the scroll pose: index and middle extended, rest folded.
func (f FingerState) indexMiddle() bool {
	return !f.Thumb && f.Index && f.Middle && !f.Ring && !f.Pinky
}

// indexMiddleRing reports the brightness pose: three middle fingers extended.
func (f FingerState) indexMiddleRing() bool {
	return !f.Thumb && f.Index && f.Middle && f.Ring && !f.Pinky
}

// onlyThumb reports the thumb-up/down base pose: thumb extended, rest folded.
func (f FingerState) onlyThumb() bool {
	return f.Thumb && !f.Index && !f.Middle && !f.Ring && !f.Pinky
}
