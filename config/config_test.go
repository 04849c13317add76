package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	f := cfg.Field
	if f.Count != 400 {
		t.Errorf("count = %d, want 400", f.Count)
	}
	if f.LifetimeBase != 100 || f.LifetimeRange != 500 {
		t.Errorf("lifetime = %v+%v, want 100+500", f.LifetimeBase, f.LifetimeRange)
	}
	if f.HueBase != 350 || f.HueRange != 30 {
		t.Errorf("hue = %v+%v, want 350+30", f.HueBase, f.HueRange)
	}
	if math.Abs(f.SpiralOffset()-0.375*math.Pi) > 1e-12 {
		t.Errorf("spiral offset = %v, want 0.375*pi", f.SpiralOffset())
	}
	if cfg.Derived.LifetimeMax != 600 {
		t.Errorf("lifetime max = %v, want 600", cfg.Derived.LifetimeMax)
	}
	if cfg.Background.Alpha != 1 {
		t.Errorf("background alpha = %v, want opaque", cfg.Background.Alpha)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.yaml")
	if err := os.WriteFile(path, []byte("field:\n  count: 32\n  hue_base: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Count != 32 {
		t.Errorf("count = %d, want 32", cfg.Field.Count)
	}
	if cfg.Field.HueBase != 200 {
		t.Errorf("hue base = %v, want 200", cfg.Field.HueBase)
	}
	// Untouched fields keep their defaults
	if cfg.Field.SizeRange != 8 {
		t.Errorf("size range = %v, want default 8", cfg.Field.SizeRange)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero count", func(c *Config) { c.Field.Count = 0 }, ErrCount},
		{"zero lifetime", func(c *Config) { c.Field.LifetimeBase = 0 }, ErrLifetime},
		{"negative range", func(c *Config) { c.Field.SizeRange = -1 }, ErrRange},
		{"steer above one", func(c *Config) { c.Field.Steer = 2 }, ErrRange},
		{"negative steer", func(c *Config) { c.Field.Steer = -0.1 }, ErrRange},
		{"steer of one", func(c *Config) { c.Field.Steer = 1 }, nil},
		{"negative alpha scale", func(c *Config) { c.Field.AlphaScale = -0.5 }, ErrRange},
		{"negative saturation", func(c *Config) { c.Field.Saturation = -1 }, ErrRange},
		{"negative lightness", func(c *Config) { c.Field.Lightness = -0.2 }, ErrRange},
		{"negative screen", func(c *Config) { c.Screen.Width = -5 }, ErrScreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsDivergentSteer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steer.yaml")
	if err := os.WriteFile(path, []byte("field:\n  steer: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrRange) {
		t.Errorf("Load = %v, want ErrRange", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Field.Count = 77

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Field.Count != 77 {
		t.Errorf("count = %d, want 77", loaded.Field.Count)
	}
}
