// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Validation errors.
var (
	ErrCount    = errors.New("field.count must be positive")
	ErrLifetime = errors.New("field.lifetime_base must be positive")
	ErrRange    = errors.New("field ranges must not be negative")
	ErrScreen   = errors.New("screen dimensions must not be negative")
)

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Background BackgroundConfig `yaml:"background"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // 0 = follow vsync
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds particle spawn ranges and steering constants.
// Every randomized attribute is drawn as base + uniform[0, range).
type FieldConfig struct {
	Count int `yaml:"count"`

	LifetimeBase  float64 `yaml:"lifetime_base"`  // frames
	LifetimeRange float64 `yaml:"lifetime_range"` // frames
	SpeedBase     float64 `yaml:"speed_base"`
	SpeedRange    float64 `yaml:"speed_range"`
	SizeBase      float64 `yaml:"size_base"`  // px
	SizeRange     float64 `yaml:"size_range"` // px
	HueBase       float64 `yaml:"hue_base"`   // degrees
	HueRange      float64 `yaml:"hue_range"`  // degrees

	SpawnSpeed  float64 `yaml:"spawn_speed"`  // initial velocity magnitude toward the center
	TargetSpeed float64 `yaml:"target_speed"` // magnitude of the steering target velocity
	Steer       float64 `yaml:"steer"`        // lerp factor toward the target velocity per frame
	SpiralBias  float64 `yaml:"spiral_bias"`  // heading offset as a fraction of pi

	StrokeWidth float64 `yaml:"stroke_width"`
	Saturation  float64 `yaml:"saturation"` // 0-1
	Lightness   float64 `yaml:"lightness"`  // 0-1
	AlphaScale  float64 `yaml:"alpha_scale"`
}

// SpiralOffset returns the steering heading offset in radians.
func (f FieldConfig) SpiralOffset() float64 {
	return f.SpiralBias * math.Pi
}

// BackgroundConfig holds the wash painted over the persistent surface each frame.
type BackgroundConfig struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
	Alpha      float64 `yaml:"alpha"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // frames per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	LifetimeMax float64 // LifetimeBase + LifetimeRange
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks the parameters the field cannot run without.
func (c *Config) Validate() error {
	f := &c.Field
	if f.Count <= 0 {
		return fmt.Errorf("%w (got %d)", ErrCount, f.Count)
	}
	if f.LifetimeBase <= 0 {
		return fmt.Errorf("%w (got %g)", ErrLifetime, f.LifetimeBase)
	}
	for name, v := range map[string]float64{
		"lifetime_range": f.LifetimeRange,
		"speed_range":    f.SpeedRange,
		"size_range":     f.SizeRange,
		"hue_range":      f.HueRange,
		"stroke_width":   f.StrokeWidth,
		"alpha_scale":    f.AlphaScale,
		"saturation":     f.Saturation,
		"lightness":      f.Lightness,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s = %g", ErrRange, name, v)
		}
	}
	// Lerp factor; outside [0, 1] the steering overshoots and diverges
	if f.Steer < 0 || f.Steer > 1 {
		return fmt.Errorf("%w: steer = %g, want [0, 1]", ErrRange, f.Steer)
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrScreen, c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after editing Field in place.
func (c *Config) ComputeDerived() {
	c.Derived.LifetimeMax = c.Field.LifetimeBase + c.Field.LifetimeRange
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
