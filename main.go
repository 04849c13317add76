package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/emberfield/config"
	"github.com/pthm-cable/emberfield/game"
	"github.com/pthm-cable/emberfield/telemetry"
	"github.com/pthm-cable/emberfield/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render to CPU rasters without a window")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited, headless defaults to 600)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for PNG snapshots (headless only)")
	snapshotEvery := flag.Int64("snapshot-every", 0, "Write a snapshot every N frames (0 = last frame only)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output frame stats via slog")
	width := flag.Int("width", 0, "Viewport width (0 = use config)")
	height := flag.Int("height", 0, "Viewport height (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *width > 0 {
		cfg.Screen.Width = *width
	}
	if *height > 0 {
		cfg.Screen.Height = *height
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if out != nil {
		slog.Info("writing run output", "dir", out.Dir())
	}

	opts := game.Options{Seed: rngSeed}
	if *logStats || out != nil {
		opts.Collector = telemetry.NewFrameCollector(cfg.Telemetry.StatsWindow)
		opts.OnStats = func(s telemetry.WindowStats) {
			if *logStats {
				s.LogStats()
			}
			if err := out.WriteFrames(s); err != nil {
				slog.Error("failed to write frame stats", "error", err)
			}
		}
	}

	if *headless {
		frames := *maxFrames
		if frames <= 0 {
			frames = 600
		}
		if err := runHeadless(cfg, opts, frames, *snapshotDir, *snapshotEvery); err != nil {
			slog.Error("headless run failed", "error", err)
			out.Close()
			os.Exit(1)
		}
		return
	}

	runWindow(cfg, opts, *maxFrames)
}

// runHeadless pumps a headless host for the given number of refreshes.
func runHeadless(cfg *config.Config, opts game.Options, frames int64, snapshotDir string, every int64) error {
	host := game.NewHeadless(cfg.Screen.Width, cfg.Screen.Height)
	bg := game.NewBackground(cfg, opts)
	if err := bg.Attach(host); err != nil {
		return err
	}
	defer bg.Detach()

	if snapshotDir != "" {
		if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"frames", frames,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
	)

	start := time.Now()
	for host.Refreshes() < frames {
		host.Refresh()

		n := bg.Frames()
		last := host.Refreshes() == frames
		if snapshotDir != "" && (last || (every > 0 && n%every == 0)) {
			path := filepath.Join(snapshotDir, fmt.Sprintf("frame_%06d.png", n))
			if err := host.Snapshot(path); err != nil {
				return err
			}
			slog.Info("snapshot written", "frame", n, "path", path)
		}
	}

	slog.Info("headless run complete",
		"frames", bg.Frames(),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// runWindow opens a raylib window and runs the background until it closes.
func runWindow(cfg *config.Config, opts game.Options, maxFrames int64) {
	flags := uint32(rl.FlagVsyncHint)
	if cfg.Screen.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	if cfg.Screen.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}

	// The HUD shows the latest stats window, so window mode always collects
	var last telemetry.WindowStats
	var hasStats bool
	onStats := opts.OnStats
	if opts.Collector == nil {
		opts.Collector = telemetry.NewFrameCollector(cfg.Telemetry.StatsWindow)
	}
	opts.OnStats = func(s telemetry.WindowStats) {
		last, hasStats = s, true
		if onStats != nil {
			onStats(s)
		}
	}

	host := game.NewWindow()
	bg := game.NewBackground(cfg, opts)
	if err := bg.Attach(host); err != nil {
		// The field is decoration; keep the window up without it
		slog.Error("background unavailable", "error", err)
	}
	defer bg.Detach()

	hud := ui.NewHUD()
	host.SetOverlay(func() {
		hud.HandleInput()
		w, h := host.Viewport()
		hud.Draw(ui.HUDData{
			Title:     cfg.Screen.Title,
			State:     bg.State().String(),
			Frames:    bg.Frames(),
			Particles: cfg.Field.Count,
			FPS:       rl.GetFPS(),
			Width:     w,
			Height:    h,
			Stats:     last,
			HasStats:  hasStats,
		})
	})

	host.Run(maxFrames)
	slog.Info("window closed", "frames", bg.Frames(), "refreshes", host.Refreshes())
}
