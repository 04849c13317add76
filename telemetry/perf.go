// Package telemetry collects frame timing and writes it to logs and CSV.
package telemetry

import (
	"log/slog"
	"time"
)

// FrameSample holds data for one rendered frame.
type FrameSample struct {
	Tick      int64
	At        time.Time     // when the frame finished
	Cost      time.Duration // time spent compositing
	Respawns  int
	Particles int
	Width     int
	Height    int
}

// FrameCollector groups frame samples into fixed-size windows.
type FrameCollector struct {
	windowSize int
	costs      []float64 // milliseconds
	respawns   int
	first      time.Time
	last       FrameSample
}

// NewFrameCollector creates a collector that emits stats every windowSize frames.
func NewFrameCollector(windowSize int) *FrameCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &FrameCollector{
		windowSize: windowSize,
		costs:      make([]float64, 0, windowSize),
	}
}

// WindowSize returns the number of frames per window.
func (c *FrameCollector) WindowSize() int {
	return c.windowSize
}

// Record adds a sample. When the window fills it returns the window's stats
// and true, and starts a new window.
func (c *FrameCollector) Record(s FrameSample) (WindowStats, bool) {
	if len(c.costs) == 0 {
		c.first = s.At
	}
	c.costs = append(c.costs, float64(s.Cost)/float64(time.Millisecond))
	c.respawns += s.Respawns
	c.last = s

	if len(c.costs) < c.windowSize {
		return WindowStats{}, false
	}
	stats := c.flush()
	return stats, true
}

// Flush returns stats for a partial window, if any samples are pending.
func (c *FrameCollector) Flush() (WindowStats, bool) {
	if len(c.costs) == 0 {
		return WindowStats{}, false
	}
	return c.flush(), true
}

func (c *FrameCollector) flush() WindowStats {
	stats := ComputeWindowStats(c.costs)
	stats.WindowEnd = c.last.Tick
	stats.Respawns = c.respawns
	stats.Particles = c.last.Particles
	stats.Width = c.last.Width
	stats.Height = c.last.Height

	// Frames after the first are spread over the elapsed wall time
	if elapsed := c.last.At.Sub(c.first); elapsed > 0 && stats.Frames > 1 {
		stats.FPS = float64(stats.Frames-1) / elapsed.Seconds()
	}

	c.costs = c.costs[:0]
	c.respawns = 0
	return stats
}

// LogStats outputs window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("frames",
		"window_end", s.WindowEnd,
		"frames", s.Frames,
		"mean_ms", s.MeanMs,
		"p50_ms", s.P50Ms,
		"p95_ms", s.P95Ms,
		"max_ms", s.MaxMs,
		"fps", s.FPS,
		"respawns", s.Respawns,
		"particles", s.Particles,
		"width", s.Width,
		"height", s.Height,
	)
}
