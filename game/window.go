package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/emberfield/renderer"
	"github.com/pthm-cable/emberfield/surface"
)

// Window is a Host backed by the raylib window. Each loop iteration is one
// display refresh; EndDrawing paces it to vsync or the target FPS.
// Create it after rl.InitWindow.
type Window struct {
	w, h int

	frames    frameQueue
	listeners resizeListeners
	presented *renderer.Texture
	overlay   func()
	refreshes int64
}

// NewWindow creates a host for the current raylib window.
func NewWindow() *Window {
	return &Window{
		w: rl.GetScreenWidth(),
		h: rl.GetScreenHeight(),
	}
}

// SetOverlay sets a function drawn on screen after the presented surface.
func (w *Window) SetOverlay(fn func()) {
	w.overlay = fn
}

// Viewport returns the window size.
func (w *Window) Viewport() (int, int) {
	return w.w, w.h
}

// NewSurface allocates a render texture.
func (w *Window) NewSurface(width, height int) (surface.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoSurface
	}
	t, err := renderer.NewTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSurface, err)
	}
	return t, nil
}

// RequestFrame queues fn for the next refresh.
func (w *Window) RequestFrame(fn func()) FrameID {
	return w.frames.request(fn)
}

// CancelFrame drops a queued callback.
func (w *Window) CancelFrame(id FrameID) {
	w.frames.cancel(id)
}

// OnResize subscribes to window size changes.
func (w *Window) OnResize(fn func(w, h int)) func() {
	return w.listeners.add(fn)
}

// Present shows s on screen from the next refresh on. Non-texture surfaces are ignored.
func (w *Window) Present(s surface.Surface) {
	if t, ok := s.(*renderer.Texture); ok {
		w.presented = t
	}
}

// Refreshes returns the number of completed refreshes.
func (w *Window) Refreshes() int64 {
	return w.refreshes
}

// Run refreshes until the window closes or maxFrames refreshes have run (0 = unlimited).
func (w *Window) Run(maxFrames int64) {
	for !rl.WindowShouldClose() {
		w.Refresh()
		if maxFrames > 0 && w.refreshes >= maxFrames {
			return
		}
	}
}

// Refresh handles resize, runs queued frame callbacks and presents.
func (w *Window) Refresh() {
	w.pollResize()

	// Callbacks draw into render textures, outside the screen pass
	w.frames.run()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if w.presented != nil && w.presented.Loaded() {
		w.presented.Draw(0, 0)
	}
	if w.overlay != nil {
		w.overlay()
	}
	rl.EndDrawing()

	w.refreshes++
}

func (w *Window) pollResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := rl.GetScreenWidth()
	height := rl.GetScreenHeight()
	if width == w.w && height == w.h {
		return
	}
	w.w, w.h = width, height
	w.listeners.notify(width, height)
}
