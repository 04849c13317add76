// Package ui draws the on-screen overlays for window mode.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/emberfield/telemetry"
)

// HUDData holds everything the HUD shows for one refresh.
type HUDData struct {
	Title     string
	State     string
	Frames    int64
	Particles int
	FPS       int32
	Width     int
	Height    int

	// Last completed telemetry window, if any
	Stats    telemetry.WindowStats
	HasStats bool
}

// HUD renders the heads-up display. F1 toggles it.
type HUD struct {
	visible bool
	x, y    int32
}

// NewHUD creates a visible HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{visible: true, x: 10, y: 10}
}

// HandleInput processes the toggle key.
func (h *HUD) HandleInput() {
	if rl.IsKeyPressed(rl.KeyF1) {
		h.visible = !h.visible
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}

	x, y := h.x, h.y
	rl.DrawRectangle(x-6, y-6, 300, 104, rl.Fade(rl.Black, 0.5))

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Frame: %d | %s", data.Particles, data.Frames, data.State),
		x, y, 14, rl.LightGray,
	)
	y += 18

	rl.DrawText(
		fmt.Sprintf("FPS: %d | %dx%d", data.FPS, data.Width, data.Height),
		x, y, 14, rl.LightGray,
	)
	y += 18

	if data.HasStats {
		s := data.Stats
		color := rl.LightGray
		if s.P95Ms > 16.7 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("Frame ms: mean %.2f p95 %.2f max %.2f", s.MeanMs, s.P95Ms, s.MaxMs),
			x, y, 12, color,
		)
		y += 16
	}

	rl.DrawText("F1: toggle HUD", x, y, 12, rl.Gray)
}
