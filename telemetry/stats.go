package telemetry

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated frame statistics for one window.
type WindowStats struct {
	WindowEnd int64   `csv:"window_end"`
	Frames    int     `csv:"frames"`
	MeanMs    float64 `csv:"mean_ms"`
	P50Ms     float64 `csv:"p50_ms"`
	P95Ms     float64 `csv:"p95_ms"`
	MaxMs     float64 `csv:"max_ms"`
	FPS       float64 `csv:"fps"`
	Respawns  int     `csv:"respawns"`
	Particles int     `csv:"particles"`
	Width     int     `csv:"width"`
	Height    int     `csv:"height"`
}

// ComputeWindowStats summarizes frame costs in milliseconds.
// The input is not modified.
func ComputeWindowStats(costs []float64) WindowStats {
	if len(costs) == 0 {
		return WindowStats{}
	}

	sorted := slices.Clone(costs)
	slices.Sort(sorted)

	return WindowStats{
		Frames: len(sorted),
		MeanMs: stat.Mean(sorted, nil),
		P50Ms:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95Ms:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MaxMs:  floats.Max(sorted),
	}
}
