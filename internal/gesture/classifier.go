package gesture

import (
	"fmt"

	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
)

// Config holds the tunable geometry thresholds for classification.
// All ratios are fractions of the hand size (wrist to middle MCP distance)
// except ScrollThreshold, which is in normalized image coordinates.
type Config struct {
	// PinchRatio is the maximum normalized fingertip distance for a pinch.
	PinchRatio float64

	// ExtensionRatio is the margin by which a fingertip must clear its PIP
	// joint (or the thumb tip its IP joint) to count as extended.
	ExtensionRatio float64

	// ThumbAxisRatio is how far above or below the wrist the thumb tip must
	// sit for the thumb-up and thumb-down gestures.
	ThumbAxisRatio float64

	// ScrollThreshold is the minimum vertical index-tip displacement between
	// consecutive frames to register a scroll.
	ScrollThreshold float64
}

// DefaultConfig returns the default classification thresholds. These are
// tuned against the pose fixtures in the detector package rather than
// derived analytically; adjust through configuration if a camera setup
// misclassifies.
func DefaultConfig() Config {
	return Config{
		PinchRatio:      0.35,
		ExtensionRatio:  0.25,
		ThumbAxisRatio:  1.0,
		ScrollThreshold: 0.015,
	}
}

// Validate checks that every threshold is positive.
func (c Config) Validate() error {
	if c.PinchRatio <= 0 {
		return fmt.Errorf("pinch ratio must be positive, got %g", c.PinchRatio)
	}
	if c.ExtensionRatio <= 0 {
		return fmt.Errorf("extension ratio must be positive, got %g", c.ExtensionRatio)
	}
	if c.ThumbAxisRatio <= 0 {
		return fmt.Errorf("thumb axis ratio must be positive, got %g", c.ThumbAxisRatio)
	}
	if c.ScrollThreshold <= 0 {
		return fmt.Errorf("scroll threshold must be positive, got %g", c.ScrollThreshold)
	}
	return nil
}

// Result is the outcome of classifying one frame.
type Result struct {
	Label   Label
	Fingers FingerState

	// ScrollDelta is the vertical index-tip displacement that produced a
	// scroll label, positive for upward movement. Zero for other labels.
	ScrollDelta float64
}

// frame bundles the derived per-frame features the rules match against.
type frame struct {
	hand    *detector.HandLandmarks
	fingers FingerState
	// scrollDelta is the vertical displacement of the index tip since the
	// previous frame, positive upward; valid only when hasPrev is true.
	scrollDelta float64
	hasPrev     bool
}

// rule is one entry of the ordered classification sequence. Rules are tried
// first to last and the first match wins.
type rule struct {
	name string
	eval func(c *Classifier, f *frame) (Label, bool)
}

// Classifier maps one landmark frame to a gesture label.
//
// Classification is stateless per call with one documented exception: scroll
// direction depends on the index-tip position of the previous frame, so the
// classifier retains that single value between calls.
type Classifier struct {
	cfg   Config
	rules []rule

	prevIndexY float64
	hasPrev    bool
}

// NewClassifier creates a Classifier, rejecting invalid thresholds.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("classifier config: %w", err)
	}
	return &Classifier{cfg: cfg, rules: orderedRules()}, nil
}

// orderedRules returns the classification sequence. Order matters: pinches
// are geometrically a subset of "index extended", and a fist is a subset of
// "nothing extended", so the more specific patterns come first.
func orderedRules() []rule {
	return []rule{
		{name: "fist", eval: func(c *Classifier, f *frame) (Label, bool) {
			if f.fingers == (FingerState{}) {
				return LabelFist, true
			}
			return LabelNone, false
		}},
		{name: "open_palm", eval: func(c *Classifier, f *frame) (Label, bool) {
			if f.fingers.Count() == 5 {
				return LabelOpenPalm, true
			}
			return LabelNone, false
		}},
		{name: "thumb_up_down", eval: func(c *Classifier, f *frame) (Label, bool) {
			if !f.fingers.onlyThumb() {
				return LabelNone, false
			}
			size := f.hand.HandSize()
			wristY := f.hand.Points[detector.Wrist].Y
			tipY := f.hand.Points[detector.ThumbTip].Y
			if wristY-tipY > c.cfg.ThumbAxisRatio*size {
				return LabelThumbUp, true
			}
			if tipY-wristY > c.cfg.ThumbAxisRatio*size {
				return LabelThumbDown, true
			}
			return LabelNone, false
		}},
		{name: "three_finger_pinch", eval: func(c *Classifier, f *frame) (Label, bool) {
			if isThreePinch(f.hand, detector.ThumbTip, detector.IndexTip, detector.MiddleTip, c.cfg.PinchRatio) {
				return LabelRightClick, true
			}
			return LabelNone, false
		}},
		{name: "two_finger_pinch", eval: func(c *Classifier, f *frame) (Label, bool) {
			if isPinch(f.hand, detector.ThumbTip, detector.IndexTip, c.cfg.PinchRatio) &&
				!isPinch(f.hand, detector.ThumbTip, detector.MiddleTip, c.cfg.PinchRatio) {
				return LabelLeftClick, true
			}
			return LabelNone, false
		}},
		{name: "scroll", eval: func(c *Classifier, f *frame) (Label, bool) {
			if !f.fingers.indexMiddle() || !f.hasPrev {
				return LabelNone, false
			}
			if f.scrollDelta > c.cfg.ScrollThreshold {
				return LabelScrollUp, true
			}
			if f.scrollDelta < -c.cfg.ScrollThreshold {
				return LabelScrollDown, true
			}
			return LabelNone, false
		}},
		{name: "three_finger", eval: func(c *Classifier, f *frame) (Label, bool) {
			if f.fingers.indexMiddleRing() {
				return LabelThreeFinger, true
			}
			return LabelNone, false
		}},
		{name: "move_cursor", eval: func(c *Classifier, f *frame) (Label, bool) {
			if f.fingers.onlyIndex() {
				return LabelMoveCursor, true
			}
			return LabelNone, false
		}},
	}
}

// Classify maps one landmark frame to a gesture label. A nil hand (no hand
// detected this frame) or a degenerate landmark set fails closed to
// LabelNone and clears the scroll reference.
func (c *Classifier) Classify(hand *detector.HandLandmarks) Result {
	if hand == nil || hand.HandSize() < minHandSize {
		c.hasPrev = false
		return Result{Label: LabelNone}
	}

	f := frame{
		hand:    hand,
		fingers: Extensions(hand, c.cfg.ExtensionRatio),
		hasPrev: c.hasPrev,
	}
	indexY := hand.Points[detector.IndexTip].Y
	if c.hasPrev {
		f.scrollDelta = c.prevIndexY - indexY
	}

	res := Result{Label: LabelNone, Fingers: f.fingers}
	for i := range c.rules {
		if label, ok := c.rules[i].eval(c, &f); ok {
			res.Label = label
			break
		}
	}
	if res.Label == LabelScrollUp || res.Label == LabelScrollDown {
		res.ScrollDelta = f.scrollDelta
	}

	c.prevIndexY = indexY
	c.hasPrev = true
	return res
}

// Reset clears the retained previous-frame state.
func (c *Classifier) Reset() {
	c.hasPrev = false
	c.prevIndexY = 0
}
