package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GESTUREMOUSE_"

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (Default())
//  2. YAML file named by GESTUREMOUSE_CONFIG, if set
//  3. environment variables with the GESTUREMOUSE_ prefix
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// GESTUREMOUSE_ACTIVE_FPS -> active_fps. Underscores are preserved so
	// env keys line up with the flat koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot produce a working pipeline. The
// classifier and engine validate their own thresholds at construction.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.CameraIndex < 0 {
		return fmt.Errorf("camera index must not be negative, got %d", c.CameraIndex)
	}
	if c.ActiveFPS <= 0 || c.IdleFPS <= 0 {
		return fmt.Errorf("frame rates must be positive, got active=%d idle=%d", c.ActiveFPS, c.IdleFPS)
	}
	if c.IdleFPS > c.ActiveFPS {
		return fmt.Errorf("idle fps %d must not exceed active fps %d", c.IdleFPS, c.ActiveFPS)
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("max hands must be at least 1, got %d", c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %g", c.MinConfidence)
	}
	if c.MinTrackingConfidence < 0 || c.MinTrackingConfidence > 1 {
		return fmt.Errorf("min tracking confidence must be in [0, 1], got %g", c.MinTrackingConfidence)
	}
	if c.ScreenWidth < 0 || c.ScreenHeight < 0 {
		return fmt.Errorf("screen overrides must not be negative, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	return nil
}
