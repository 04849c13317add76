package game

import (
	"errors"

	"github.com/pthm-cable/emberfield/surface"
)

// ErrNoSurface is returned when a host cannot provide a 2D drawing surface.
var ErrNoSurface = errors.New("game: drawing surface unavailable")

// FrameID identifies a scheduled frame callback. Zero is never issued.
type FrameID uint64

// Host is the environment a Background runs in.
type Host interface {
	// Viewport returns the current viewport size in pixels.
	Viewport() (w, h int)
	// NewSurface allocates a drawing surface.
	NewSurface(w, h int) (surface.Surface, error)
	// RequestFrame runs fn once before the next display refresh.
	RequestFrame(fn func()) FrameID
	// CancelFrame guarantees a pending callback never runs.
	CancelFrame(id FrameID)
	// OnResize subscribes to viewport changes.
	OnResize(fn func(w, h int)) (unsubscribe func())
	// Present marks s as the surface to show on screen.
	Present(s surface.Surface)
}
