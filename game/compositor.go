package game

import (
	"image/color"

	"github.com/pthm-cable/emberfield/config"
	"github.com/pthm-cable/emberfield/surface"
	"github.com/pthm-cable/emberfield/systems"
)

// Compositor produces one frame from two surfaces: a transient layer
// cleared every frame for particle strokes, and a persistent layer that gets
// an opaque wash and then the transient layer added on top.
type Compositor struct {
	pool       *systems.Pool
	transient  surface.Surface
	persistent surface.Surface

	wash  color.NRGBA
	style surface.Style

	strokes []systems.Stroke
}

// NewCompositor creates a compositor drawing pool onto the two surfaces.
func NewCompositor(cfg *config.Config, pool *systems.Pool, transient, persistent surface.Surface) *Compositor {
	bg := cfg.Background
	return &Compositor{
		pool:       pool,
		transient:  transient,
		persistent: persistent,
		wash:       surface.HSLA(bg.Hue, bg.Saturation, bg.Lightness, bg.Alpha),
		style: surface.Style{
			Width:      cfg.Field.StrokeWidth,
			Saturation: cfg.Field.Saturation,
			Lightness:  cfg.Field.Lightness,
		},
		strokes: make([]systems.Stroke, 0, pool.Len()),
	}
}

// Frame advances the field one tick and composites the result onto the persistent surface.
func (c *Compositor) Frame(vp systems.Viewport) {
	c.pool.Advance()

	c.transient.Clear()
	c.persistent.Fill(c.wash)

	c.strokes = c.pool.StepAll(vp, c.strokes[:0])
	c.transient.StrokeSquares(c.strokes, c.style)

	c.persistent.AddFrom(c.transient)
}
