package engine

import (
	"testing"

	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
)

// trackingSmoother passes coordinates through unchanged and records how
// often the motion model is advanced or reset.
type trackingSmoother struct {
	predicts int
	resets   int
}

func (s *trackingSmoother) Smooth(x, y float64) (float64, float64) { return x, y }
func (s *trackingSmoother) Predict()                               { s.predicts++ }
func (s *trackingSmoother) Reset()                                 { s.resets++ }

func testConfig() Config {
	cfg := DefaultConfig(1920, 1080)
	cfg.DebounceFrames = 3
	cfg.ClickCooldownFrames = 3
	cfg.KeyCooldownFrames = 2
	cfg.LossTimeoutFrames = 4
	return cfg
}

func newTestEngine(t *testing.T) (*Engine, *trackingSmoother) {
	t.Helper()
	s := &trackingSmoother{}
	e, err := New(testConfig(), s)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e, s
}

// handAt returns a hand whose index fingertip sits at the given normalized
// frame coordinates. The engine only reads the fingertip for positioning.
func handAt(x, y float64) *detector.HandLandmarks {
	h := detector.PointingLandmarks()
	h.Points[detector.IndexTip] = detector.Point3D{X: x, Y: y}
	return &h
}

func result(label gesture.Label) gesture.Result {
	return gesture.Result{Label: label}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero screen width", func(c *Config) { c.ScreenWidth = 0 }},
		{"negative screen height", func(c *Config) { c.ScreenHeight = -1 }},
		{"margin too large", func(c *Config) { c.FrameMargin = 0.5 }},
		{"negative margin", func(c *Config) { c.FrameMargin = -0.1 }},
		{"zero debounce", func(c *Config) { c.DebounceFrames = 0 }},
		{"negative click cooldown", func(c *Config) { c.ClickCooldownFrames = -1 }},
		{"negative key cooldown", func(c *Config) { c.KeyCooldownFrames = -1 }},
		{"negative loss timeout", func(c *Config) { c.LossTimeoutFrames = -1 }},
		{"zero scroll scale", func(c *Config) { c.ScrollScale = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg, &trackingSmoother{}); err == nil {
				t.Error("expected config validation to fail")
			}
		})
	}

	t.Run("nil smoother", func(t *testing.T) {
		if _, err := New(testConfig(), nil); err == nil {
			t.Error("expected nil smoother to be rejected")
		}
	})
}

func TestScreenMapping(t *testing.T) {
	e, _ := newTestEngine(t)

	cases := []struct {
		name   string
		fx, fy float64
		x, y   int
	}{
		// The x axis is mirrored so hand-right means cursor-right.
		{"center", 0.5, 0.5, 960, 540},
		{"left edge of control area", 0.15, 0.15, 1919, 0},
		{"right edge of control area", 0.85, 0.85, 0, 1079},
		{"outside margin clamps", 0.0, 1.0, 1919, 1079},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actions := e.Process(handAt(tc.fx, tc.fy), result(gesture.LabelMoveCursor))
			if len(actions) != 1 {
				t.Fatalf("expected 1 action, got %d", len(actions))
			}
			a := actions[0]
			if a.Kind != ActionMove {
				t.Fatalf("expected move action, got %s", a.Kind)
			}
			if a.X != tc.x || a.Y != tc.y {
				t.Errorf("mapped (%g, %g) to (%d, %d), want (%d, %d)", tc.fx, tc.fy, a.X, a.Y, tc.x, tc.y)
			}
		})
	}
}

func TestMoveEmitsOneActionPerFrame(t *testing.T) {
	e, _ := newTestEngine(t)
	for i := 0; i < 10; i++ {
		actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		if len(actions) != 1 {
			t.Fatalf("frame %d: expected 1 action, got %d", i, len(actions))
		}
	}
}

func TestModeSwitchDebounce(t *testing.T) {
	t.Run("sustained palm switches to draw", func(t *testing.T) {
		e, _ := newTestEngine(t)
		for i := 0; i < 2; i++ {
			if actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm)); len(actions) != 0 {
				t.Fatalf("frame %d: premature actions %v", i, actions)
			}
		}
		if e.Mode() != ModeControl {
			t.Fatal("mode switched before the debounce window elapsed")
		}
		actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		if len(actions) != 1 || actions[0].Kind != ActionModeSwitch || actions[0].Mode != ModeDraw {
			t.Fatalf("expected a switch to draw mode, got %v", actions)
		}
		if e.Mode() != ModeDraw {
			t.Errorf("Mode() = %s, want %s", e.Mode(), ModeDraw)
		}
	})

	t.Run("interrupted run starts over", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		if e.Mode() != ModeControl {
			t.Error("interrupted palm frames should not accumulate across the interruption")
		}
	})

	t.Run("hand loss breaks the run", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(nil, result(gesture.LabelNone))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		if e.Mode() != ModeControl {
			t.Error("a lost frame should reset the sustained-gesture counter")
		}
	})

	t.Run("sustained fist switches back to control", func(t *testing.T) {
		e, _ := newTestEngine(t)
		for i := 0; i < 3; i++ {
			e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
		}
		if e.Mode() != ModeDraw {
			t.Fatal("setup failed to enter draw mode")
		}
		var switched []Action
		for i := 0; i < 3; i++ {
			switched = e.Process(handAt(0.5, 0.5), result(gesture.LabelFist))
		}
		if len(switched) != 1 || switched[0].Mode != ModeControl {
			t.Fatalf("expected a switch back to control, got %v", switched)
		}
	})

	t.Run("fist in control mode does nothing", func(t *testing.T) {
		e, _ := newTestEngine(t)
		for i := 0; i < 6; i++ {
			if actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelFist)); len(actions) != 0 {
				t.Fatalf("fist in control mode emitted %v", actions)
			}
		}
	})
}

func TestClickArming(t *testing.T) {
	t.Run("one click per held pinch", func(t *testing.T) {
		e, _ := newTestEngine(t)
		total := 0
		for i := 0; i < 10; i++ {
			for _, a := range e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick)) {
				if a.Kind == ActionClick {
					total++
				}
			}
		}
		if total != 1 {
			t.Errorf("held pinch emitted %d clicks, want 1", total)
		}
	})

	t.Run("release re-arms after cooldown", func(t *testing.T) {
		e, _ := newTestEngine(t)
		first := e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		if len(first) != 1 || first[0].Button != "left" {
			t.Fatalf("expected a left click, got %v", first)
		}
		// Release long enough for the cooldown to clear.
		for i := 0; i < 3; i++ {
			e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		}
		second := e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		if len(second) != 1 || second[0].Kind != ActionClick {
			t.Fatalf("expected a second click after release, got %v", second)
		}
	})

	t.Run("cooldown suppresses an immediate re-pinch", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		again := e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		if len(again) != 0 {
			t.Errorf("re-pinch inside the cooldown emitted %v", again)
		}
	})

	t.Run("right click uses the right button", func(t *testing.T) {
		e, _ := newTestEngine(t)
		actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelRightClick))
		if len(actions) != 1 || actions[0].Button != "right" {
			t.Fatalf("expected a right click, got %v", actions)
		}
	})
}

func TestScroll(t *testing.T) {
	e, _ := newTestEngine(t)

	t.Run("delta scales with displacement", func(t *testing.T) {
		res := gesture.Result{Label: gesture.LabelScrollUp, ScrollDelta: 0.05}
		actions := e.Process(handAt(0.5, 0.5), res)
		if len(actions) != 1 || actions[0].Kind != ActionScroll {
			t.Fatalf("expected a scroll action, got %v", actions)
		}
		if actions[0].Delta != 5 {
			t.Errorf("Delta = %d, want 5", actions[0].Delta)
		}
	})

	t.Run("tiny displacement still scrolls one notch", func(t *testing.T) {
		res := gesture.Result{Label: gesture.LabelScrollDown, ScrollDelta: -0.001}
		actions := e.Process(handAt(0.5, 0.5), res)
		if len(actions) != 1 || actions[0].Delta != -1 {
			t.Fatalf("expected a single down notch, got %v", actions)
		}
	})
}

func TestKeyGestures(t *testing.T) {
	t.Run("thumb up taps volume up with a cooldown", func(t *testing.T) {
		e, _ := newTestEngine(t)
		taps := 0
		for i := 0; i < 6; i++ {
			for _, a := range e.Process(handAt(0.5, 0.5), result(gesture.LabelThumbUp)) {
				if a.Kind == ActionKey && a.Key == KeyVolumeUp {
					taps++
				}
			}
		}
		// Cooldown of 2 frames allows a tap every other frame.
		if taps != 3 {
			t.Errorf("got %d volume taps over 6 frames, want 3", taps)
		}
	})

	t.Run("thumb down and three fingers map to their keys", func(t *testing.T) {
		e, _ := newTestEngine(t)
		down := e.Process(handAt(0.5, 0.5), result(gesture.LabelThumbDown))
		if len(down) != 1 || down[0].Key != KeyVolumeDown {
			t.Fatalf("expected volume down, got %v", down)
		}
		bright := e.Process(handAt(0.5, 0.5), result(gesture.LabelThreeFinger))
		if len(bright) != 1 || bright[0].Key != KeyBrightnessUp {
			t.Fatalf("expected brightness up, got %v", bright)
		}
	})

	t.Run("cooldowns are tracked per key", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelThumbUp))
		down := e.Process(handAt(0.5, 0.5), result(gesture.LabelThumbDown))
		if len(down) != 1 {
			t.Errorf("volume up cooldown should not block volume down, got %v", down)
		}
	})
}

func TestDrawMode(t *testing.T) {
	e, _ := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.Process(handAt(0.5, 0.5), result(gesture.LabelOpenPalm))
	}

	t.Run("pointing draws instead of moving", func(t *testing.T) {
		actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		if len(actions) != 1 || actions[0].Kind != ActionDraw {
			t.Fatalf("expected a draw action, got %v", actions)
		}
	})

	t.Run("clicks and scrolls are ignored", func(t *testing.T) {
		for _, label := range []gesture.Label{
			gesture.LabelLeftClick,
			gesture.LabelRightClick,
			gesture.LabelScrollUp,
			gesture.LabelThumbUp,
		} {
			if actions := e.Process(handAt(0.5, 0.5), result(label)); len(actions) != 0 {
				t.Errorf("%s in draw mode emitted %v", label, actions)
			}
		}
	})
}

func TestHandLoss(t *testing.T) {
	t.Run("short loss advances the motion model", func(t *testing.T) {
		e, s := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		for i := 0; i < 3; i++ {
			if actions := e.Process(nil, result(gesture.LabelNone)); len(actions) != 0 {
				t.Fatalf("lost frame emitted %v", actions)
			}
		}
		if s.predicts != 3 {
			t.Errorf("Predict called %d times, want 3", s.predicts)
		}
		if s.resets != 0 {
			t.Errorf("smoother reset during a bridgeable loss")
		}
	})

	t.Run("timeout resets the smoother once", func(t *testing.T) {
		e, s := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelMoveCursor))
		for i := 0; i < 10; i++ {
			e.Process(nil, result(gesture.LabelNone))
		}
		if s.resets != 1 {
			t.Errorf("smoother reset %d times, want 1", s.resets)
		}
		if s.predicts != 4 {
			t.Errorf("Predict called %d times past the first frame, want 4", s.predicts)
		}
	})

	t.Run("loss releases a held pinch", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		for i := 0; i < 3; i++ {
			e.Process(nil, result(gesture.LabelNone))
		}
		actions := e.Process(handAt(0.5, 0.5), result(gesture.LabelLeftClick))
		if len(actions) != 1 || actions[0].Kind != ActionClick {
			t.Fatalf("expected a fresh click after reacquisition, got %v", actions)
		}
	})
}
