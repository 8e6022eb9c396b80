package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the centring and scaling used for one feature column.
type ColumnStats struct {
	Mean   float64
	StdDev float64 // sample standard deviation (n-1); 0 when undefined
}

// Scale z-scores v. A column without spread maps every value to 0.
func (c ColumnStats) Scale(v float64) float64 {
	if c.StdDev == 0 {
		return 0
	}
	return (v - c.Mean) / c.StdDev
}

// Unscale maps a z-score back to raw units.
func (c ColumnStats) Unscale(z float64) float64 {
	return z*c.StdDev + c.Mean
}

// Normalize z-scores each column of points independently. Rows must all
// have the same length. Columns with zero or undefined standard deviation
// (constant input, or a single row) become all zeros after centring rather
// than NaN.
func Normalize(points [][]float64) ([][]float64, []ColumnStats) {
	if len(points) == 0 {
		return nil, nil
	}
	dims := len(points[0])

	stats := make([]ColumnStats, dims)
	col := make([]float64, len(points))
	for d := 0; d < dims; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) || math.IsInf(std, 0) || std < 1e-12 {
			std = 0
		}
		stats[d] = ColumnStats{Mean: mean, StdDev: std}
	}

	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = ScaleRow(p, stats)
	}
	return out, stats
}

// ScaleRow applies stats to a single row.
func ScaleRow(row []float64, stats []ColumnStats) []float64 {
	out := make([]float64, len(row))
	for d, v := range row {
		out[d] = stats[d].Scale(v)
	}
	return out
}

// UnscaleRow maps a normalised row back to raw units.
func UnscaleRow(row []float64, stats []ColumnStats) []float64 {
	out := make([]float64, len(row))
	for d, z := range row {
		out[d] = stats[d].Unscale(z)
	}
	return out
}
