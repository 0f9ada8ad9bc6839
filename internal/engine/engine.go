package engine

import (
	"fmt"
	"math"

	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
	"github.com/keerthipriyaa029/gesturemouse/internal/smoothing"
)

// Config holds the engine's screen mapping and debounce settings.
type Config struct {
	// ScreenWidth and ScreenHeight are the target screen dimensions in pixels.
	ScreenWidth  int
	ScreenHeight int

	// FrameMargin is the normalized border of the camera frame excluded from
	// the control area, so the cursor can reach the screen edges without the
	// hand leaving the frame.
	FrameMargin float64

	// DebounceFrames is the number of consecutive frames a mode-switch
	// gesture must be sustained before the mode flips.
	DebounceFrames int

	// ClickCooldownFrames is the minimum number of frames between emitted
	// clicks. A held pinch emits one click regardless; the cooldown guards
	// against rapid re-pinches.
	ClickCooldownFrames int

	// KeyCooldownFrames is the minimum number of frames between emitted key
	// taps for the volume and brightness gestures.
	KeyCooldownFrames int

	// LossTimeoutFrames is how many consecutive no-hand frames are bridged
	// by the smoother's motion model before its state is reset.
	LossTimeoutFrames int

	// ScrollScale converts normalized vertical displacement into scroll
	// notches.
	ScrollScale float64
}

// DefaultConfig returns engine defaults tuned for a 15 FPS pipeline.
func DefaultConfig(screenWidth, screenHeight int) Config {
	return Config{
		ScreenWidth:         screenWidth,
		ScreenHeight:        screenHeight,
		FrameMargin:         0.15,
		DebounceFrames:      5,
		ClickCooldownFrames: 5,
		KeyCooldownFrames:   3,
		LossTimeoutFrames:   10,
		ScrollScale:         100,
	}
}

// Validate checks the configuration at construction time so invalid settings
// never surface mid-stream.
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.FrameMargin < 0 || c.FrameMargin >= 0.5 {
		return fmt.Errorf("frame margin must be in [0, 0.5), got %g", c.FrameMargin)
	}
	if c.DebounceFrames < 1 {
		return fmt.Errorf("debounce frames must be at least 1, got %d", c.DebounceFrames)
	}
	if c.ClickCooldownFrames < 0 {
		return fmt.Errorf("click cooldown frames must not be negative, got %d", c.ClickCooldownFrames)
	}
	if c.KeyCooldownFrames < 0 {
		return fmt.Errorf("key cooldown frames must not be negative, got %d", c.KeyCooldownFrames)
	}
	if c.LossTimeoutFrames < 0 {
		return fmt.Errorf("loss timeout frames must not be negative, got %d", c.LossTimeoutFrames)
	}
	if c.ScrollScale <= 0 {
		return fmt.Errorf("scroll scale must be positive, got %g", c.ScrollScale)
	}
	return nil
}

// Engine consumes classified gestures frame by frame and emits actions.
//
// The engine assumes exactly one hand-tracking session: it is driven
// synchronously by the capture loop and is not safe for concurrent frames.
type Engine struct {
	cfg      Config
	smoother smoothing.Smoother

	mode    Mode
	palmRun int
	fistRun int

	leftHeld  bool
	rightHeld bool

	clickCooldown int
	keyCooldowns  map[string]int

	lostFrames int
}

// New creates an Engine in control mode with the given smoother.
func New(cfg Config, smoother smoothing.Smoother) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if smoother == nil {
		return nil, fmt.Errorf("engine requires a smoother")
	}
	return &Engine{
		cfg:          cfg,
		smoother:     smoother,
		mode:         ModeControl,
		keyCooldowns: make(map[string]int),
	}, nil
}

// Mode returns the currently active mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Process consumes one frame's classification and returns the actions to
// inject. A nil hand means no hand was detected; that is a valid state, not
// an error, and yields no actions.
func (e *Engine) Process(hand *detector.HandLandmarks, res gesture.Result) []Action {
	e.tickCooldowns()

	if hand == nil {
		e.handleLostFrame()
		return nil
	}

	if e.lostFrames > 0 {
		e.lostFrames = 0
	}

	var actions []Action
	actions = e.updateMode(res.Label, actions)
	e.updateHeld(res.Label)

	switch e.mode {
	case ModeControl:
		actions = e.processControl(hand, res, actions)
	case ModeDraw:
		actions = e.processDraw(hand, res, actions)
	}
	return actions
}

// handleLostFrame bridges a short hand loss with the smoother's motion model
// and resets filter state once the loss exceeds the configured timeout, so a
// reacquired hand is not interpolated from a stale position.
func (e *Engine) handleLostFrame() {
	e.palmRun = 0
	e.fistRun = 0
	e.leftHeld = false
	e.rightHeld = false

	e.lostFrames++
	if e.lostFrames == e.cfg.LossTimeoutFrames+1 {
		e.smoother.Reset()
		return
	}
	if e.lostFrames <= e.cfg.LossTimeoutFrames {
		e.smoother.Predict()
	}
}

// updateMode advances the sustained-gesture counters and flips the mode once
// a switch gesture has been held for DebounceFrames consecutive frames. Any
// other gesture breaks the run.
func (e *Engine) updateMode(label gesture.Label, actions []Action) []Action {
	switch label {
	case gesture.LabelOpenPalm:
		e.fistRun = 0
		if e.mode == ModeControl {
			e.palmRun++
			if e.palmRun >= e.cfg.DebounceFrames {
				e.mode = ModeDraw
				e.palmRun = 0
				actions = append(actions, Action{Kind: ActionModeSwitch, Mode: ModeDraw, Gesture: label})
			}
		}
	case gesture.LabelFist:
		e.palmRun = 0
		if e.mode == ModeDraw {
			e.fistRun++
			if e.fistRun >= e.cfg.DebounceFrames {
				e.mode = ModeControl
				e.fistRun = 0
				actions = append(actions, Action{Kind: ActionModeSwitch, Mode: ModeControl, Gesture: label})
			}
		}
	default:
		e.palmRun = 0
		e.fistRun = 0
	}
	return actions
}

// updateHeld re-arms the click gestures once the pinch is released, so one
// sustained pinch emits exactly one click.
func (e *Engine) updateHeld(label gesture.Label) {
	if label != gesture.LabelLeftClick {
		e.leftHeld = false
	}
	if label != gesture.LabelRightClick {
		e.rightHeld = false
	}
}

func (e *Engine) processControl(hand *detector.HandLandmarks, res gesture.Result, actions []Action) []Action {
	switch res.Label {
	case gesture.LabelMoveCursor:
		x, y := e.smoothedScreenPosition(hand)
		actions = append(actions, Action{Kind: ActionMove, X: x, Y: y, Gesture: res.Label})

	case gesture.LabelLeftClick:
		if !e.leftHeld && e.clickCooldown == 0 {
			x, y := e.mapToScreen(hand.Points[detector.IndexTip])
			actions = append(actions, Action{Kind: ActionClick, Button: "left", X: x, Y: y, Gesture: res.Label})
			e.clickCooldown = e.cfg.ClickCooldownFrames
		}
		e.leftHeld = true
		e.smoother.Predict()

	case gesture.LabelRightClick:
		if !e.rightHeld && e.clickCooldown == 0 {
			x, y := e.mapToScreen(hand.Points[detector.IndexTip])
			actions = append(actions, Action{Kind: ActionClick, Button: "right", X: x, Y: y, Gesture: res.Label})
			e.clickCooldown = e.cfg.ClickCooldownFrames
		}
		e.rightHeld = true
		e.smoother.Predict()

	case gesture.LabelScrollUp, gesture.LabelScrollDown:
		delta := int(math.Round(res.ScrollDelta * e.cfg.ScrollScale))
		if delta == 0 {
			if res.Label == gesture.LabelScrollUp {
				delta = 1
			} else {
				delta = -1
			}
		}
		actions = append(actions, Action{Kind: ActionScroll, Delta: delta, Gesture: res.Label})
		e.smoother.Predict()

	case gesture.LabelThumbUp:
		actions = e.emitKey(KeyVolumeUp, res.Label, actions)
		e.smoother.Predict()

	case gesture.LabelThumbDown:
		actions = e.emitKey(KeyVolumeDown, res.Label, actions)
		e.smoother.Predict()

	case gesture.LabelThreeFinger:
		actions = e.emitKey(KeyBrightnessUp, res.Label, actions)
		e.smoother.Predict()

	default:
		// Unrecognized or switch-only gestures move nothing.
		e.smoother.Predict()
	}
	return actions
}

func (e *Engine) processDraw(hand *detector.HandLandmarks, res gesture.Result, actions []Action) []Action {
	switch res.Label {
	case gesture.LabelMoveCursor:
		x, y := e.smoothedScreenPosition(hand)
		actions = append(actions, Action{Kind: ActionDraw, X: x, Y: y, Gesture: res.Label})
	default:
		// Draw mode ignores everything except drawing and the fist switch,
		// which updateMode already handled.
		e.smoother.Predict()
	}
	return actions
}

// emitKey taps a named key, rate limited per key by the key cooldown.
func (e *Engine) emitKey(key string, label gesture.Label, actions []Action) []Action {
	if e.keyCooldowns[key] > 0 {
		return actions
	}
	e.keyCooldowns[key] = e.cfg.KeyCooldownFrames
	return append(actions, Action{Kind: ActionKey, Key: key, Gesture: label})
}

func (e *Engine) tickCooldowns() {
	if e.clickCooldown > 0 {
		e.clickCooldown--
	}
	for k, v := range e.keyCooldowns {
		if v > 0 {
			e.keyCooldowns[k] = v - 1
		}
	}
}

// smoothedScreenPosition maps the index fingertip into screen coordinates
// and runs it through the smoother.
func (e *Engine) smoothedScreenPosition(hand *detector.HandLandmarks) (int, int) {
	x, y := e.mapToScreen(hand.Points[detector.IndexTip])
	sx, sy := e.smoother.Smooth(float64(x), float64(y))
	return clamp(int(math.Round(sx)), 0, e.cfg.ScreenWidth-1), clamp(int(math.Round(sy)), 0, e.cfg.ScreenHeight-1)
}

// mapToScreen converts a normalized camera-space point into screen pixels.
// The frame margin shrinks the control area and the x axis is mirrored so
// moving the hand right moves the cursor right on a front-facing camera.
func (e *Engine) mapToScreen(p detector.Point3D) (int, int) {
	m := e.cfg.FrameMargin
	span := 1 - 2*m

	tx := (clampF(p.X, m, 1-m) - m) / span
	ty := (clampF(p.Y, m, 1-m) - m) / span

	x := int(math.Round((1 - tx) * float64(e.cfg.ScreenWidth-1)))
	y := int(math.Round(ty * float64(e.cfg.ScreenHeight-1)))
	return x, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
