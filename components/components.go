// Package components defines ECS components for field particles.
package components

// Position represents a particle's position in canvas pixels.
// It is not clamped to the canvas.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's velocity and its per-particle speed multiplier.
type Velocity struct {
	X, Y  float64
	Speed float64
}

// Life tracks how long a particle has been alive.
type Life struct {
	Age      int32   // frames since (re)spawn
	Lifetime float64 // frames before respawn
}

// Expired reports whether the particle has outlived its lifetime.
func (l Life) Expired() bool {
	return float64(l.Age) > l.Lifetime
}

// Look holds drawing attributes.
type Look struct {
	Size float64 // square side in px
	Hue  float64 // degrees, not normalized
}
