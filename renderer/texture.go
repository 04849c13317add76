// Package renderer provides GPU drawing surfaces backed by raylib render textures.
package renderer

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/emberfield/surface"
	"github.com/pthm-cable/emberfield/systems"
)

// ErrRenderTexture is returned when raylib cannot allocate a framebuffer.
var ErrRenderTexture = errors.New("renderer: render texture unavailable")

// Texture is a surface.Surface backed by a raylib RenderTexture2D.
// It must be created and used after the raylib window is initialized.
type Texture struct {
	target rl.RenderTexture2D
	w, h   int // logical size, may be 0
	loaded bool
}

// NewTexture allocates a w x h render texture.
func NewTexture(w, h int) (*Texture, error) {
	t := &Texture{}
	if err := t.load(w, h); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Texture) load(w, h int) error {
	w, h = max(w, 0), max(h, 0)
	// raylib cannot allocate an empty framebuffer
	target := rl.LoadRenderTexture(int32(max(w, 1)), int32(max(h, 1)))
	if target.ID == 0 {
		return ErrRenderTexture
	}
	t.target = target
	t.w, t.h = w, h
	t.loaded = true
	return nil
}

// Loaded reports whether the texture holds GPU memory.
func (t *Texture) Loaded() bool {
	return t.loaded
}

// Size returns the surface dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.w, t.h
}

// Resize reallocates the render texture when the dimensions change.
func (t *Texture) Resize(w, h int) error {
	if t.loaded && w == t.w && h == t.h {
		return nil
	}
	t.Release()
	return t.load(w, h)
}

// Clear sets every pixel to transparent black.
func (t *Texture) Clear() {
	if !t.loaded {
		return
	}
	rl.BeginTextureMode(t.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// Fill paints the whole surface with c.
func (t *Texture) Fill(c color.NRGBA) {
	if !t.loaded {
		return
	}
	rl.BeginTextureMode(t.target)
	rl.DrawRectangle(0, 0, int32(t.w), int32(t.h), toColor(c))
	rl.EndTextureMode()
}

// StrokeSquares outlines each stroke's square rotated about its center.
func (t *Texture) StrokeSquares(strokes []systems.Stroke, style surface.Style) {
	if !t.loaded {
		return
	}
	width := float32(style.Width)

	rl.BeginTextureMode(t.target)
	for _, s := range strokes {
		if s.Alpha <= 0 || s.Size <= 0 {
			continue
		}
		col := toColor(surface.HSLA(s.Hue, style.Saturation, style.Lightness, s.Alpha))
		c := surface.Corners(s, 0)
		for i := range c {
			j := (i + 1) % len(c)
			rl.DrawLineEx(
				rl.Vector2{X: float32(c[i][0]), Y: float32(c[i][1])},
				rl.Vector2{X: float32(c[j][0]), Y: float32(c[j][1])},
				width,
				col,
			)
		}
	}
	rl.EndTextureMode()
}

// AddFrom composites src onto t by summing color channels.
// Panics if src is not a *Texture.
func (t *Texture) AddFrom(src surface.Surface) {
	s, ok := src.(*Texture)
	if !ok {
		panic("renderer: Texture.AddFrom with a non-texture source")
	}
	if !t.loaded || !s.loaded {
		return
	}

	rl.BeginTextureMode(t.target)
	// The source already holds alpha-weighted color, so add it unscaled
	rl.BeginBlendMode(rl.BlendAddColors)
	s.draw(0, 0)
	rl.EndBlendMode()
	rl.EndTextureMode()
}

// Draw blits the texture to the current render target at (x, y).
func (t *Texture) Draw(x, y float32) {
	if !t.loaded {
		return
	}
	t.draw(x, y)
}

func (t *Texture) draw(x, y float32) {
	// Render textures are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(t.w), Height: -float32(t.h)}
	rl.DrawTextureRec(t.target.Texture, src, rl.Vector2{X: x, Y: y}, rl.White)
}

// Release frees the GPU texture.
func (t *Texture) Release() {
	if t.loaded {
		rl.UnloadRenderTexture(t.target)
		t.loaded = false
	}
}

func toColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
