// Package surface defines the drawing surfaces the field renders onto.
package surface

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/emberfield/systems"
)

// Surface is an addressable 2D raster target.
//
// A Surface only composites with surfaces of its own implementation;
// AddFrom panics otherwise.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
	// Resize reallocates the surface. Contents are discarded.
	Resize(w, h int) error
	// Clear sets every pixel to transparent black.
	Clear()
	// Fill paints the whole surface with c, source-over.
	Fill(c color.NRGBA)
	// StrokeSquares outlines each stroke's square rotated about its center.
	StrokeSquares(strokes []systems.Stroke, style Style)
	// AddFrom composites src onto this surface with additive blending.
	AddFrom(src Surface)
	// Release frees the surface. Further draws are no-ops.
	Release()
}

// Style holds per-frame stroke parameters shared by every particle.
type Style struct {
	Width      float64 // line width in px
	Saturation float64 // 0-1
	Lightness  float64 // 0-1
}

// HSLA converts hue in degrees plus saturation, lightness and alpha in [0, 1]
// to a non-premultiplied color. Hue wraps, so 370 is the same as 10.
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

// Corners returns the four corners of a stroke's square, offset by half
// outward from the edge (positive grows, negative shrinks), in winding order.
func Corners(s systems.Stroke, offset float64) [4][2]float64 {
	half := 0.5*s.Size + offset
	sin, cos := math.Sincos(s.Theta)
	local := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}

	var out [4][2]float64
	for i, c := range local {
		out[i][0] = s.X + c[0]*cos - c[1]*sin
		out[i][1] = s.Y + c[0]*sin + c[1]*cos
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
