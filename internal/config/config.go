// Package config defines the daemon's configuration and its loading order:
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/engine"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
	"github.com/keerthipriyaa029/gesturemouse/internal/smoothing"
)

// Config contains the full process configuration.
type Config struct {
	// Addr is the HTTP listen address for the local API, e.g. "127.0.0.1:8420".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database location. Empty means the default under
	// the user's home directory.
	DBPath string `koanf:"db_path"`

	// Tray enables the system tray icon.
	Tray bool `koanf:"tray"`

	// CameraIndex selects the capture device.
	CameraIndex int `koanf:"camera_index"`

	// ActiveFPS and IdleFPS set the frame rates while motion is present and
	// while the scene is still.
	ActiveFPS int `koanf:"active_fps"`
	IdleFPS   int `koanf:"idle_fps"`

	// MaxHands limits how many hands the detector reports per frame.
	MaxHands int `koanf:"max_hands"`

	// MinConfidence and MinTrackingConfidence gate hand detection.
	MinConfidence         float64 `koanf:"min_confidence"`
	MinTrackingConfidence float64 `koanf:"min_tracking_confidence"`

	// Smoothing selects the cursor filter: "none", "ema" or "kalman".
	Smoothing       string  `koanf:"smoothing"`
	SmoothingFactor float64 `koanf:"smoothing_factor"`

	// Classifier thresholds, all expressed relative to the hand size.
	PinchRatio      float64 `koanf:"pinch_ratio"`
	ExtensionRatio  float64 `koanf:"extension_ratio"`
	ThumbAxisRatio  float64 `koanf:"thumb_axis_ratio"`
	ScrollThreshold float64 `koanf:"scroll_threshold"`

	// Screen dimension overrides. Zero means autodetect from the display.
	ScreenWidth  int `koanf:"screen_width"`
	ScreenHeight int `koanf:"screen_height"`

	// FrameMargin is the normalized camera border excluded from the control
	// area.
	FrameMargin float64 `koanf:"frame_margin"`

	// DebounceFrames is how long a mode-switch gesture must be sustained.
	DebounceFrames int `koanf:"debounce_frames"`

	// ClickCooldownFrames and KeyCooldownFrames rate limit repeated clicks
	// and key taps.
	ClickCooldownFrames int `koanf:"click_cooldown_frames"`
	KeyCooldownFrames   int `koanf:"key_cooldown_frames"`

	// LossTimeoutFrames is how many no-hand frames the smoother bridges
	// before its state resets.
	LossTimeoutFrames int `koanf:"loss_timeout_frames"`

	// ScrollScale converts normalized displacement into scroll notches.
	ScrollScale float64 `koanf:"scroll_scale"`
}

// Default returns the built-in configuration.
func Default() *Config {
	gc := gesture.DefaultConfig()
	ec := engine.DefaultConfig(1, 1)
	return &Config{
		Addr:                  "127.0.0.1:8420",
		Tray:                  true,
		CameraIndex:           0,
		ActiveFPS:             15,
		IdleFPS:               2,
		MaxHands:              1,
		MinConfidence:         0.7,
		MinTrackingConfidence: 0.5,
		Smoothing:             string(smoothing.MethodKalman),
		SmoothingFactor:       10,
		PinchRatio:            gc.PinchRatio,
		ExtensionRatio:        gc.ExtensionRatio,
		ThumbAxisRatio:        gc.ThumbAxisRatio,
		ScrollThreshold:       gc.ScrollThreshold,
		FrameMargin:           ec.FrameMargin,
		DebounceFrames:        ec.DebounceFrames,
		ClickCooldownFrames:   ec.ClickCooldownFrames,
		KeyCooldownFrames:     ec.KeyCooldownFrames,
		LossTimeoutFrames:     ec.LossTimeoutFrames,
		ScrollScale:           ec.ScrollScale,
	}
}

// ClassifierConfig builds the gesture classifier settings.
func (c *Config) ClassifierConfig() gesture.Config {
	return gesture.Config{
		PinchRatio:      c.PinchRatio,
		ExtensionRatio:  c.ExtensionRatio,
		ThumbAxisRatio:  c.ThumbAxisRatio,
		ScrollThreshold: c.ScrollThreshold,
	}
}

// EngineConfig builds the engine settings for the given screen size. The
// configured overrides win over the detected dimensions.
func (c *Config) EngineConfig(screenWidth, screenHeight int) engine.Config {
	if c.ScreenWidth > 0 {
		screenWidth = c.ScreenWidth
	}
	if c.ScreenHeight > 0 {
		screenHeight = c.ScreenHeight
	}
	cfg := engine.DefaultConfig(screenWidth, screenHeight)
	cfg.FrameMargin = c.FrameMargin
	cfg.DebounceFrames = c.DebounceFrames
	cfg.ClickCooldownFrames = c.ClickCooldownFrames
	cfg.KeyCooldownFrames = c.KeyCooldownFrames
	cfg.LossTimeoutFrames = c.LossTimeoutFrames
	cfg.ScrollScale = c.ScrollScale
	return cfg
}

// DetectorConfig builds the hand detector settings.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.MaxHands,
		MinConfidence:   c.MinConfidence,
		MinTrackingConf: c.MinTrackingConfidence,
	}
}

// Smoother constructs the configured cursor filter.
func (c *Config) Smoother() (smoothing.Smoother, error) {
	return smoothing.New(smoothing.Method(c.Smoothing), c.SmoothingFactor)
}
