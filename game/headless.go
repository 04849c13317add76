package game

import (
	"fmt"
	"image/png"
	"os"

	"github.com/pthm-cable/emberfield/surface"
)

// Headless is a Host without a display. Refreshes happen when Refresh is
// called and surfaces are CPU rasters.
type Headless struct {
	w, h int

	frames    frameQueue
	listeners resizeListeners
	presented surface.Surface
	refreshes int64

	noSurfaces bool
}

// NewHeadless creates a headless host with a w x h viewport.
func NewHeadless(w, h int) *Headless {
	return &Headless{w: w, h: h}
}

// DisableSurfaces makes NewSurface fail, as on a host without 2D drawing.
func (h *Headless) DisableSurfaces() {
	h.noSurfaces = true
}

// Viewport returns the current viewport size.
func (h *Headless) Viewport() (int, int) {
	return h.w, h.h
}

// NewSurface allocates a raster surface.
func (h *Headless) NewSurface(w, hh int) (surface.Surface, error) {
	if h.noSurfaces {
		return nil, ErrNoSurface
	}
	return surface.NewRaster(w, hh), nil
}

// RequestFrame queues fn for the next Refresh.
func (h *Headless) RequestFrame(fn func()) FrameID {
	return h.frames.request(fn)
}

// CancelFrame drops a queued callback.
func (h *Headless) CancelFrame(id FrameID) {
	h.frames.cancel(id)
}

// OnResize subscribes to Resize calls.
func (h *Headless) OnResize(fn func(w, h int)) func() {
	return h.listeners.add(fn)
}

// Present records the surface to show.
func (h *Headless) Present(s surface.Surface) {
	h.presented = s
}

// Presented returns the last presented surface.
func (h *Headless) Presented() surface.Surface {
	return h.presented
}

// Resize changes the viewport and notifies subscribers.
func (h *Headless) Resize(w, hh int) {
	h.w, h.h = w, hh
	h.listeners.notify(w, hh)
}

// Refresh simulates one display refresh and returns the number of callbacks run.
func (h *Headless) Refresh() int {
	h.refreshes++
	return h.frames.run()
}

// Refreshes returns the number of Refresh calls.
func (h *Headless) Refreshes() int64 {
	return h.refreshes
}

// Pending returns the number of queued frame callbacks.
func (h *Headless) Pending() int {
	return h.frames.len()
}

// Listeners returns the number of resize subscribers.
func (h *Headless) Listeners() int {
	return h.listeners.len()
}

// Snapshot writes the presented raster to path as PNG.
func (h *Headless) Snapshot(path string) error {
	r, ok := h.presented.(*surface.Raster)
	if !ok {
		return fmt.Errorf("snapshot: no raster presented")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}
