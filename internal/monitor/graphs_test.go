package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainOutput switches lipgloss to the Ascii profile for the duration of a
// test so rendered output can be compared rune by rune.
func plainOutput(t *testing.T) {
	t.Helper()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
}

// colorOutput forces TrueColor so ANSI color codes can be asserted.
func colorOutput(t *testing.T) {
	t.Helper()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
}

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name          string
		data          []float64
		wantMin       float64
		wantMax       float64
		wantIsPercent bool
	}{
		{"empty data returns percentage defaults", []float64{}, 0, 100, true},
		{"percentage data uses fixed range", []float64{10, 50, 90}, 0, 100, true},
		{"non-percentage data uses actual range", []float64{-50, 200, 500}, -50, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minVal, maxVal, isPercent := findMinMax(tt.data)
			assert.Equal(t, tt.wantMin, minVal)
			assert.Equal(t, tt.wantMax, maxVal)
			assert.Equal(t, tt.wantIsPercent, isPercent)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.InDelta(t, 0.5, normalizeValue(50, 0, 100), 1e-9)
	assert.InDelta(t, 0.0, normalizeValue(0, 0, 100), 1e-9)
	assert.InDelta(t, 0.5, normalizeValue(7, 7, 7), 1e-9, "flat range sits mid-height")
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-3, 10))
	assert.Equal(t, 10, clampInt(42, 10))
	assert.Equal(t, 5, clampInt(5, 10))
}

func TestResampleData(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		target int
		want   []float64
	}{
		{"empty", nil, 5, nil},
		{"zero target", []float64{1, 2}, 0, nil},
		{"same size", []float64{1, 2, 3}, 3, []float64{1, 2, 3}},
		{"single value fills", []float64{7}, 3, []float64{7, 7, 7}},
		{"downsample keeps peaks", []float64{1, 9, 2, 3}, 2, []float64{9, 3}},
		{"upsample interpolates", []float64{0, 10}, 3, []float64{0, 5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resampleData(tt.data, tt.target))
		})
	}
}

func TestRenderBrailleSeries_Dimensions(t *testing.T) {
	plainOutput(t)

	out := RenderBrailleSeries([]float64{10, 20, 30, 40}, 12, 3, ColorCPU, true)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 12, lipgloss.Width(l))
	}
}

func TestRenderBrailleSeries_InvalidSize(t *testing.T) {
	assert.Empty(t, RenderBrailleSeries([]float64{1}, 0, 3, ColorCPU, true))
	assert.Empty(t, RenderBrailleSeries([]float64{1}, 3, 0, ColorCPU, true))
}

func TestRenderBrailleSeries_RightAligned(t *testing.T) {
	plainOutput(t)

	// Two points fill exactly the last character column
	out := RenderBrailleSeries([]float64{100, 100}, 5, 1, ColorCPU, true)
	runes := []rune(out)
	require.Len(t, runes, 5)
	for _, r := range runes[:4] {
		assert.Equal(t, brailleBase, r, "leading columns stay empty")
	}
	assert.Equal(t, '⣿', runes[4], "full-height pair fills every dot")
}

func TestRenderBrailleSeries_EmptySeriesIsBlank(t *testing.T) {
	plainOutput(t)

	out := RenderBrailleSeries(nil, 4, 2, ColorCPU, true)
	assert.Equal(t, strings.Repeat(string(brailleBase), 4)+"\n"+strings.Repeat(string(brailleBase), 4), out)
}

func TestRenderBrailleSeries_AutoScalesRawSeries(t *testing.T) {
	plainOutput(t)

	// Counter values far above 100 still span the full height
	out := RenderBrailleSeries([]float64{5000, 9000}, 1, 1, ColorDisk, false)
	assert.Equal(t, "⣸", out, "floor point keeps its baseline dot, peak fills the column")
}

func TestRenderBrailleSeries_ThresholdColors(t *testing.T) {
	colorOutput(t)

	hot := RenderBrailleSeries([]float64{95, 95}, 1, 1, ColorCPU, true)
	cool := RenderBrailleSeries([]float64{10, 10}, 1, 1, ColorCPU, true)
	assert.NotEqual(t, hot, cool)
	assert.Contains(t, hot, "255;0;85", "critical values render in the critical color")
}

func TestRenderMiniSparkline(t *testing.T) {
	assert.Empty(t, RenderMiniSparkline(nil, 5))
	assert.Equal(t, "▁█", RenderMiniSparkline([]float64{0, 100}, 2))
}

func TestRenderGradientBar(t *testing.T) {
	plainOutput(t)

	assert.Equal(t, "█████░░░░░", RenderGradientBar(10, 50))
	assert.Equal(t, "░░░░", RenderGradientBar(4, -10))
	assert.Equal(t, "████", RenderGradientBar(4, 250))
}
