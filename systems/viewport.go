package systems

// Viewport holds the canvas dimensions and the convergence center.
type Viewport struct {
	Width, Height    float64
	CenterX, CenterY float64
}

// NewViewport creates a viewport for a w x h canvas.
func NewViewport(w, h int) Viewport {
	var v Viewport
	v.Resize(w, h)
	return v
}

// Resize sets the canvas dimensions and recenters the convergence point.
// Particles are not moved. Negative dimensions are treated as zero.
func (v *Viewport) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	v.Width = float64(w)
	v.Height = float64(h)
	v.CenterX = 0.5 * v.Width
	v.CenterY = 0.5 * v.Height
}

// Size returns the canvas dimensions in whole pixels.
func (v Viewport) Size() (int, int) {
	return int(v.Width), int(v.Height)
}
