// Ember field preview tool - live particle field with sliders for the spawn ranges.
//
// Every change tears the running background down and attaches a fresh one.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/emberfield/config"
	"github.com/pthm-cable/emberfield/game"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 340
)

// slider describes one tunable field parameter.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*config.FieldConfig) *float64
}

var sliders = []slider{
	{"Count", 10, 2000, "%.0f", nil},
	{"Hue base", 0, 360, "%.0f", func(f *config.FieldConfig) *float64 { return &f.HueBase }},
	{"Hue range", 0, 180, "%.0f", func(f *config.FieldConfig) *float64 { return &f.HueRange }},
	{"Lifetime base", 10, 1000, "%.0f", func(f *config.FieldConfig) *float64 { return &f.LifetimeBase }},
	{"Lifetime range", 0, 2000, "%.0f", func(f *config.FieldConfig) *float64 { return &f.LifetimeRange }},
	{"Speed base", 0, 2, "%.2f", func(f *config.FieldConfig) *float64 { return &f.SpeedBase }},
	{"Speed range", 0, 4, "%.2f", func(f *config.FieldConfig) *float64 { return &f.SpeedRange }},
	{"Size base", 0, 20, "%.1f", func(f *config.FieldConfig) *float64 { return &f.SizeBase }},
	{"Size range", 0, 40, "%.1f", func(f *config.FieldConfig) *float64 { return &f.SizeRange }},
	{"Spiral bias (x pi)", 0, 1, "%.3f", func(f *config.FieldConfig) *float64 { return &f.SpiralBias }},
	{"Steer", 0.001, 0.3, "%.3f", func(f *config.FieldConfig) *float64 { return &f.Steer }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := *base

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(windowWidth, windowHeight, "Ember Field Preview")
	defer rl.CloseWindow()

	host := game.NewWindow()
	var seed int64 = 1
	bg := attach(host, &cfg, seed)
	defer func() { bg.Detach() }()

	needsRebuild := false
	host.SetOverlay(func() {
		if drawPanel(&cfg, base, &seed, bg) {
			needsRebuild = true
		}
	})

	for !rl.WindowShouldClose() {
		// Rebuild between refreshes, never inside the screen pass
		if needsRebuild {
			bg.Detach()
			bg = attach(host, &cfg, seed)
			needsRebuild = false
		}
		host.Refresh()
	}
}

// attach starts a new background with cfg. Invalid settings are logged and
// leave an unattached background, so the preview keeps running.
func attach(host *game.Window, cfg *config.Config, seed int64) *game.Background {
	cfg.ComputeDerived()
	bg := game.NewBackground(cfg, game.Options{Seed: seed})
	if err := cfg.Validate(); err != nil {
		slog.Warn("invalid field settings", "error", err)
		return bg
	}
	if err := bg.Attach(host); err != nil {
		slog.Error("attach failed", "error", err)
	}
	return bg
}

// drawPanel draws the control panel and reports whether any setting changed.
func drawPanel(cfg *config.Config, base *config.Config, seed *int64, bg *game.Background) bool {
	changed := false
	screenW := rl.GetScreenWidth()

	panelX := float32(screenW - panelWidth)
	panelY := float32(10)
	rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+10, int32(rl.GetScreenHeight()), rl.Fade(rl.Black, 0.7))

	rl.DrawText("Ember Field", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 30
	rl.DrawText(fmt.Sprintf("FPS %d  frame %d  state %s", rl.GetFPS(), bg.Frames(), bg.State()),
		int32(panelX), int32(panelY), 14, rl.LightGray)
	panelY += 18
	rl.DrawText(fmt.Sprintf("spiral offset %.3f rad  max lifetime %.0f", cfg.Field.SpiralOffset(), cfg.Derived.LifetimeMax),
		int32(panelX), int32(panelY), 14, rl.LightGray)
	panelY += 26

	field := &cfg.Field
	for _, s := range sliders {
		var cur float32
		if s.value == nil {
			cur = float32(field.Count)
		} else {
			cur = float32(*s.value(field))
		}

		rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 90, Height: 18},
			"", "",
			cur, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+panelWidth-80), int32(panelY+2), 16, rl.RayWhite)
		panelY += 28

		if next == cur {
			continue
		}
		if s.value == nil {
			if n := int(next); n != field.Count {
				field.Count = n
				changed = true
			}
			continue
		}
		*s.value(field) = float64(next)
		changed = true
	}

	panelY += 6
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 150, Height: 30}, "Respawn") {
		*seed++
		changed = true
	}
	if gui.Button(rl.Rectangle{X: panelX + 160, Y: panelY, Width: 150, Height: 30}, "Reset All") {
		*cfg = *base
		changed = true
	}

	rl.DrawText("Press C to copy field YAML to clipboard", int32(panelX), int32(rl.GetScreenHeight()-30), 12, rl.LightGray)
	if rl.IsKeyPressed(rl.KeyC) {
		out, err := yaml.Marshal(map[string]config.FieldConfig{"field": *field})
		if err != nil {
			slog.Error("marshal field config", "error", err)
		} else {
			rl.SetClipboardText(string(out))
		}
	}

	return changed
}
