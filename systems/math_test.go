package systems

import (
	"math"
	"testing"
)

func TestFade(t *testing.T) {
	tests := []struct {
		name string
		t, m float64
		want float64
	}{
		{"birth", 0, 200, 0},
		{"peak", 100, 200, 1},
		{"quarter", 50, 200, 0.5},
		{"three quarters", 150, 200, 0.5},
		{"death", 200, 200, 0},
		{"odd lifetime peak", 151.5, 303, 1},
		{"zero lifetime", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fade(tt.t, tt.m)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fade(%v, %v) = %v, want %v", tt.t, tt.m, got, tt.want)
			}
		})
	}
}

func TestFadeBounds(t *testing.T) {
	for _, m := range []float64{1, 7.5, 100, 599.9} {
		for age := 0.0; age <= 2*m; age += 0.25 {
			f := Fade(age, m)
			if f < 0 || f > 1 || math.IsNaN(f) {
				t.Fatalf("Fade(%v, %v) = %v, outside [0, 1]", age, m, f)
			}
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.05); math.Abs(got-10.5) > 1e-12 {
		t.Errorf("Lerp(10, 20, 0.05) = %v, want 10.5", got)
	}
	if got := Lerp(3, 9, 0); got != 3 {
		t.Errorf("Lerp with t=0 = %v, want 3", got)
	}
	if got := Lerp(3, 9, 1); got != 9 {
		t.Errorf("Lerp with t=1 = %v, want 9", got)
	}
}

func TestAngle(t *testing.T) {
	if got := Angle(0, 0, 10, 0); got != 0 {
		t.Errorf("Angle east = %v, want 0", got)
	}
	if got := Angle(0, 0, 0, 10); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Angle south = %v, want pi/2", got)
	}
	// Coincident points must not produce NaN
	if got := Angle(0, 0, 0, 0); got != 0 {
		t.Errorf("Angle of coincident points = %v, want 0", got)
	}
}

func TestViewportResize(t *testing.T) {
	vp := NewViewport(800, 600)
	if vp.CenterX != 400 || vp.CenterY != 300 {
		t.Errorf("center = (%v, %v), want (400, 300)", vp.CenterX, vp.CenterY)
	}

	vp.Resize(1920, 1080)
	if vp.CenterX != 960 || vp.CenterY != 540 {
		t.Errorf("center = (%v, %v), want (960, 540)", vp.CenterX, vp.CenterY)
	}

	vp.Resize(0, 0)
	if vp.CenterX != 0 || vp.CenterY != 0 {
		t.Errorf("zero-area center = (%v, %v), want (0, 0)", vp.CenterX, vp.CenterY)
	}

	vp.Resize(-10, 20)
	if vp.Width != 0 || vp.CenterY != 10 {
		t.Errorf("negative width not clamped: %+v", vp)
	}
}
