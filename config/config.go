// Package config loads dropzone settings: defaults, then an optional YAML
// file, then DROPZONE_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/dropzone/gesture"
	"github.com/lixenwraith/dropzone/placement"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root settings document
type Config struct {
	Deck    string        `yaml:"deck"` // Empty = built-in deck
	Seed    uint64        `yaml:"seed"` // 0 = time-based
	Engine  EngineConfig  `yaml:"engine"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig tunes hit-testing, rules and gestures
type EngineConfig struct {
	ItemWidth      float64       `yaml:"item_width" validate:"gt=0"`
	ItemHeight     float64       `yaml:"item_height" validate:"gt=0"`
	ThresholdRatio float64       `yaml:"drop_threshold_ratio" validate:"gte=0"`
	Threshold      float64       `yaml:"drop_threshold" validate:"gte=0"` // Absolute, overrides ratio
	WrongCeiling   int           `yaml:"wrong_ceiling" validate:"gte=0"`
	CountMisses    bool          `yaml:"count_misses"`
	ShuffleRetries int           `yaml:"shuffle_retries" validate:"gte=1"`
	DragScale      float64       `yaml:"drag_scale" validate:"gte=1"`
	SettleDuration time.Duration `yaml:"settle_duration" validate:"gte=0"`
	ShakeAmplitude float64       `yaml:"shake_amplitude" validate:"gte=0"`
}

// AudioConfig controls feedback sounds
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume" validate:"gte=0,lte=1"`
}

// LogConfig controls zap output
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	Debug bool   `yaml:"debug"` // Write logs/dropzone.log
	Dir   string `yaml:"dir"`
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the listener
}

// Default returns the built-in settings
// Items are 12x3 terminal cells; threshold is 70% of the item width
func Default() *Config {
	gopts := gesture.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			ItemWidth:      12,
			ItemHeight:     3,
			ThresholdRatio: 0.7,
			WrongCeiling:   placement.DefaultWrongCeiling,
			CountMisses:    true,
			ShuffleRetries: placement.DefaultShuffleRetries,
			DragScale:      gopts.DragScale,
			SettleDuration: gopts.SettleDuration,
			ShakeAmplitude: gopts.ShakeAmplitude,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
		},
	}
}

// Load builds a config from defaults, the optional file at path, and env
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays DROPZONE_* variables; malformed values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("DROPZONE_DECK"); v != "" {
		c.Deck = v
	}
	if v := getenv("DROPZONE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := getenv("DROPZONE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	// 0-100 converted to 0.0-1.0
	if v := getenv("DROPZONE_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100.0, 0), 1)
		}
	}
	if v := getenv("DROPZONE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("DROPZONE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Debug = b
		}
	}
	if v := getenv("DROPZONE_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := getenv("DROPZONE_WRONG_CEILING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.WrongCeiling = n
		}
	}
}

var validate = validator.New()

// Validate checks field ranges
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Placement converts engine settings to the rule engine config
func (c *Config) Placement() placement.Config {
	pc := placement.DefaultConfig(c.Engine.ItemWidth, c.Engine.ItemHeight)
	pc.ThresholdRatio = c.Engine.ThresholdRatio
	pc.Threshold = c.Engine.Threshold
	pc.WrongCeiling = c.Engine.WrongCeiling
	pc.CountMisses = c.Engine.CountMisses
	pc.ShuffleRetries = c.Engine.ShuffleRetries
	pc.Seed = c.Seed
	return pc
}

// Gesture converts engine settings to tracker options
func (c *Config) Gesture() gesture.Options {
	return gesture.Options{
		DragScale:      c.Engine.DragScale,
		SettleDuration: c.Engine.SettleDuration,
		ShakeAmplitude: c.Engine.ShakeAmplitude,
	}
}
