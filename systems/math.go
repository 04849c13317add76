package systems

import "math"

// Angle returns the heading from (x1, y1) toward (x2, y2).
// Coincident points yield 0.
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// Lerp moves a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Fade is a triangular envelope over a lifetime m: 0 at t=0, 1 at t=m/2, 0 at t=m.
// Non-positive m yields 0.
func Fade(t, m float64) float64 {
	if m <= 0 {
		return 0
	}
	h := 0.5 * m
	return math.Abs(math.Mod(t+h, m)-h) / h
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
