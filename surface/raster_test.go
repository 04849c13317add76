package surface

import (
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/emberfield/systems"
)

func TestHSLA(t *testing.T) {
	tests := []struct {
		name       string
		h, s, l, a float64
		want       color.NRGBA
	}{
		{"red", 0, 1, 0.5, 1, color.NRGBA{255, 0, 0, 255}},
		{"wrapped red", 360, 1, 0.5, 1, color.NRGBA{255, 0, 0, 255}},
		{"green", 120, 1, 0.5, 0.5, color.NRGBA{0, 255, 0, 128}},
		{"black", 0, 0, 0, 1, color.NRGBA{0, 0, 0, 255}},
		{"transparent", 200, 1, 0.5, 0, color.NRGBA{0, 170, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLA(tt.h, tt.s, tt.l, tt.a)
			if got != tt.want {
				t.Errorf("HSLA(%v, %v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, tt.a, got, tt.want)
			}
		})
	}
}

func TestHSLAHueWraps(t *testing.T) {
	if HSLA(370, 1, 0.5, 1) != HSLA(10, 1, 0.5, 1) {
		t.Error("hue 370 should equal hue 10")
	}
	if HSLA(-10, 1, 0.5, 1) != HSLA(350, 1, 0.5, 1) {
		t.Error("hue -10 should equal hue 350")
	}
}

func TestCornersRotateAboutCenter(t *testing.T) {
	s := systems.Stroke{X: 50, Y: 40, Size: 10, Theta: math.Pi / 4}
	c := Corners(s, 0)

	var cx, cy float64
	for _, p := range c {
		cx += p[0] / 4
		cy += p[1] / 4
		if d := math.Hypot(p[0]-50, p[1]-40); math.Abs(d-5*math.Sqrt2) > 1e-9 {
			t.Errorf("corner %v is %v from center, want %v", p, d, 5*math.Sqrt2)
		}
	}
	if math.Abs(cx-50) > 1e-9 || math.Abs(cy-40) > 1e-9 {
		t.Errorf("corner centroid = (%v, %v), want (50, 40)", cx, cy)
	}
	// A 45 degree square has its first corner straight up
	if math.Abs(c[0][0]-50) > 1e-9 {
		t.Errorf("first corner x = %v, want 50", c[0][0])
	}
}

func TestRasterFillAndClear(t *testing.T) {
	r := NewRaster(4, 3)
	if w, h := r.Size(); w != 4 || h != 3 {
		t.Fatalf("size = %dx%d, want 4x3", w, h)
	}

	r.Fill(HSLA(0, 0, 0.03, 1))
	got := r.Image().RGBAAt(2, 1)
	if got.A != 255 || got.R != 8 || got.G != 8 || got.B != 8 {
		t.Errorf("filled pixel = %v, want opaque (8, 8, 8)", got)
	}

	r.Clear()
	if got := r.Image().RGBAAt(2, 1); got != (color.RGBA{}) {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}
}

func TestRasterStrokeDrawsOutline(t *testing.T) {
	r := NewRaster(40, 40)
	style := Style{Width: 1, Saturation: 1, Lightness: 0.5}
	r.StrokeSquares([]systems.Stroke{{X: 20, Y: 20, Size: 10, Theta: 0, Hue: 0, Alpha: 1}}, style)

	// The edge at x = 15 crosses pixel column 14-15
	edge := r.Image().RGBAAt(15, 20)
	if edge.R == 0 {
		t.Errorf("edge pixel = %v, want red", edge)
	}
	if edge.G != 0 || edge.B != 0 {
		t.Errorf("edge pixel = %v, want pure red", edge)
	}
	if center := r.Image().RGBAAt(20, 20); center.A != 0 {
		t.Errorf("center pixel = %v, want untouched", center)
	}
	if far := r.Image().RGBAAt(2, 2); far.A != 0 {
		t.Errorf("far pixel = %v, want untouched", far)
	}
}

func TestRasterStrokeSkipsInvisible(t *testing.T) {
	r := NewRaster(20, 20)
	style := Style{Width: 1, Saturation: 1, Lightness: 0.5}
	r.StrokeSquares([]systems.Stroke{
		{X: 10, Y: 10, Size: 6, Alpha: 0},
		{X: -100, Y: -100, Size: 6, Alpha: 1},
		{X: 10, Y: 10, Size: 0, Alpha: 1},
	}, style)

	for _, v := range r.Image().Pix {
		if v != 0 {
			t.Fatal("invisible strokes touched the surface")
		}
	}
}

func TestRasterStrokeClipsAtEdge(t *testing.T) {
	r := NewRaster(10, 10)
	style := Style{Width: 1, Saturation: 1, Lightness: 0.5}
	// Half the square hangs off the top-left corner
	r.StrokeSquares([]systems.Stroke{{X: 1, Y: 1, Size: 8, Theta: 0.3, Hue: 10, Alpha: 1}}, style)

	lit := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if r.Image().RGBAAt(x, y).A > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("clipped stroke drew nothing")
	}
}

func TestAdditiveCompositeBrightens(t *testing.T) {
	half := color.NRGBA{R: 128, A: 255}

	a := NewRaster(8, 8)
	b := NewRaster(8, 8)
	a.Fill(half)
	b.Fill(half)

	b.AddFrom(a)
	got := b.Image().RGBAAt(3, 3)
	if got.R <= 128 {
		t.Errorf("composited red = %d, want brighter than 128", got.R)
	}
	if got.R != 255 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("composited pixel = %v, want saturated (255, 0, 0, 255)", got)
	}
}

func TestAdditiveCompositeTransparentSourceIsNoop(t *testing.T) {
	a := NewRaster(5, 5)
	b := NewRaster(5, 5)
	b.Fill(color.NRGBA{R: 20, G: 30, B: 40, A: 255})

	b.AddFrom(a)
	if got := b.Image().RGBAAt(1, 1); got != (color.RGBA{R: 20, G: 30, B: 40, A: 255}) {
		t.Errorf("pixel = %v, want unchanged", got)
	}
}

func TestAddFromMismatchedSizes(t *testing.T) {
	a := NewRaster(3, 3)
	b := NewRaster(6, 2)
	a.Fill(color.NRGBA{G: 100, A: 255})

	b.AddFrom(a)
	if got := b.Image().RGBAAt(2, 1); got.G != 100 {
		t.Errorf("overlap pixel = %v, want green 100", got)
	}
	if got := b.Image().RGBAAt(5, 1); got.G != 0 {
		t.Errorf("pixel outside source = %v, want untouched", got)
	}
}

func TestZeroSizeRaster(t *testing.T) {
	r := NewRaster(0, 0)
	r.Clear()
	r.Fill(color.NRGBA{A: 255})
	r.StrokeSquares([]systems.Stroke{{X: 0, Y: 0, Size: 4, Alpha: 1}}, Style{Width: 1, Saturation: 1, Lightness: 0.5})
	r.AddFrom(NewRaster(0, 0))
	if w, h := r.Size(); w != 0 || h != 0 {
		t.Errorf("size = %dx%d, want 0x0", w, h)
	}
}

func TestReleaseEmptiesRaster(t *testing.T) {
	r := NewRaster(10, 10)
	r.Release()
	if w, h := r.Size(); w != 0 || h != 0 {
		t.Errorf("size after release = %dx%d, want 0x0", w, h)
	}
	// Draws after release are no-ops
	r.Fill(color.NRGBA{A: 255})
}
