package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/pthm-cable/emberfield/systems"
)

// Raster is a CPU surface backed by a premultiplied RGBA image.
type Raster struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	mask []uint8
}

// NewRaster creates a transparent w x h raster. Negative sizes are treated as zero.
func NewRaster(w, h int) *Raster {
	r := &Raster{z: vector.NewRasterizer(1, 1)}
	r.Resize(w, h)
	return r
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size returns the surface dimensions in pixels.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image.
func (r *Raster) Resize(w, h int) error {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	return nil
}

// Clear sets every pixel to transparent black.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// Fill paints the whole surface with c.
func (r *Raster) Fill(c color.NRGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeSquares rasterizes each stroke as an anti-aliased square ring.
func (r *Raster) StrokeSquares(strokes []systems.Stroke, style Style) {
	bounds := r.img.Bounds()
	if bounds.Empty() {
		return
	}

	halfWidth := 0.5 * style.Width
	for _, s := range strokes {
		if s.Alpha <= 0 || s.Size <= 0 || style.Width <= 0 {
			continue
		}

		outer := Corners(s, halfWidth)
		box := cornerBounds(outer)
		if !box.Overlaps(bounds) {
			continue
		}

		bw, bh := box.Dx(), box.Dy()
		r.z.Reset(bw, bh)
		r.z.DrawOp = draw.Src

		ox, oy := float64(box.Min.X), float64(box.Min.Y)
		r.path(outer, ox, oy, false)
		// Opposite winding cancels the interior, leaving the outline
		if 0.5*s.Size > halfWidth {
			r.path(Corners(s, -halfWidth), ox, oy, true)
		}

		mask := r.maskFor(bw, bh)
		r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

		c := HSLA(s.Hue, style.Saturation, style.Lightness, s.Alpha)
		draw.DrawMask(r.img, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	}
}

func (r *Raster) path(corners [4][2]float64, ox, oy float64, reverse bool) {
	order := [4]int{0, 1, 2, 3}
	if reverse {
		order = [4]int{0, 3, 2, 1}
	}
	for i, idx := range order {
		x := float32(corners[idx][0] - ox)
		y := float32(corners[idx][1] - oy)
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

// maskFor returns a w x h alpha mask backed by a reused buffer.
// The stride always equals w; the rasterizer assumes a packed mask.
func (r *Raster) maskFor(w, h int) *image.Alpha {
	n := w * h
	if cap(r.mask) < n {
		r.mask = make([]uint8, n)
	}
	return &image.Alpha{Pix: r.mask[:n], Stride: w, Rect: image.Rect(0, 0, w, h)}
}

// AddFrom adds src's premultiplied channels onto r, saturating at 255.
func (r *Raster) AddFrom(src Surface) {
	s, ok := src.(*Raster)
	if !ok {
		panic("surface: Raster.AddFrom with a non-raster source")
	}

	area := r.img.Bounds().Intersect(s.img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		di := r.img.PixOffset(area.Min.X, y)
		si := s.img.PixOffset(area.Min.X, y)
		n := 4 * area.Dx()
		dst := r.img.Pix[di : di+n]
		for i, v := range s.img.Pix[si : si+n] {
			sum := uint16(dst[i]) + uint16(v)
			if sum > 255 {
				sum = 255
			}
			dst[i] = uint8(sum)
		}
	}
}

// Release drops the backing image.
func (r *Raster) Release() {
	r.img = image.NewRGBA(image.Rectangle{})
	r.mask = nil
}

// cornerBounds returns the integer pixel box enclosing the corners.
func cornerBounds(c [4][2]float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range c {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
