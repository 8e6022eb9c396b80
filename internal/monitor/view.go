package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// Chart geometry
const (
	chartHeight   = 3
	scatterRows   = 10
	minChartWidth = 20
	gaugeWidth    = 10
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(m.renderReadouts())
	b.WriteString("\n\n")

	switch m.LayoutMode() {
	case LayoutMinimal:
		b.WriteString(m.renderSparklines())
	case LayoutStacked:
		width := m.viewWidth() - 2
		b.WriteString(m.renderCharts(width))
		b.WriteString("\n")
		b.WriteString(m.renderScatterSection(width))
	default:
		half := (m.viewWidth() - 3) / 2
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderCharts(half),
			" ",
			m.renderScatterSection(half),
		))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title, status, and history fill.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sysdash")

	host := ""
	if m.hostname != "" {
		host = " " + m.hostname
	}

	updated := "waiting for first sample"
	if !m.lastUpdate.IsZero() {
		updated = "last sample " + m.lastUpdate.Format("15:04:05")
	}

	stats := LabelStyle.Render(fmt.Sprintf("%s | %d/%d samples | every %s | %s",
		host, len(m.samples), m.capacity, m.interval, updated))

	return HeaderStyle.Render(title+stats) + "  " + m.renderStatus()
}

func (m Model) renderStatus() string {
	s := m.Status()
	glyph := StatusGlyphMonitoring
	switch s {
	case StatusPaused:
		glyph = StatusGlyphPaused
	case StatusOptimizing:
		glyph = StatusGlyphOptimizing
	case StatusStopped:
		glyph = StatusGlyphStopped
	}
	out := StatusStyle(s).Render(glyph + " Status: " + s.String())
	if m.fault != "" {
		out += "  " + FaultStyle.Render(m.fault)
	}
	return out
}

// renderReadouts renders the live metric values.
func (m Model) renderReadouts() string {
	var cpu, mem float64
	if n := len(m.samples); n > 0 {
		cpu, mem = m.samples[n-1].CPU, m.samples[n-1].Memory
	}

	parts := []string{
		LabelStyle.Render("CPU: ") + MetricStyle(cpu).Bold(true).Render(fmt.Sprintf("%.1f%%", cpu)),
		LabelStyle.Render("Memory: ") + MetricStyle(mem).Bold(true).Render(fmt.Sprintf("%.1f%%", mem)),
		LabelStyle.Render("Disk I/O: ") + ValueStyle.Render(FormatDiskRate(m.rates)),
		LabelStyle.Render("Network: ") + ValueStyle.Render(FormatNetRate(m.rates)),
	}
	return " " + strings.Join(parts, "   ")
}

// renderSparklines renders one-row histories for narrow terminals, each
// followed by a gauge of the latest reading.
func (m Model) renderSparklines() string {
	width := m.viewWidth() - 10 - gaugeWidth - 1
	if width < 8 {
		width = 8
	}
	cpu, mem, _ := m.series()
	row := func(label string, data []float64, color lipgloss.Color) string {
		var latest float64
		if len(data) > 0 {
			latest = data[len(data)-1]
		}
		return LabelStyle.Render(label) +
			lipgloss.NewStyle().Foreground(color).Render(RenderMiniSparkline(data, width)) +
			" " + RenderGradientBar(gaugeWidth, latest)
	}
	return strings.Join([]string{
		row("CPU    ", cpu, ColorCPU),
		row("Memory ", mem, ColorMemory),
	}, "\n")
}

// renderCharts renders the three time-series charts stacked vertically.
func (m Model) renderCharts(width int) string {
	if width < minChartWidth {
		width = minChartWidth
	}
	inner := width - 4
	cpu, mem, disk := m.series()

	latest := func(data []float64, format string) string {
		if len(data) == 0 {
			return "-"
		}
		return fmt.Sprintf(format, data[len(data)-1])
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		Section("CPU Usage (%)", latest(cpu, "%.1f%%"),
			RenderBrailleSeries(cpu, inner, chartHeight, ColorCPU, true), width),
		Section("Memory Usage (%)", latest(mem, "%.1f%%"),
			RenderBrailleSeries(mem, inner, chartHeight, ColorMemory, true), width),
		Section("Disk Read (MB)", latest(disk, "%.1f"),
			RenderBrailleSeries(disk, inner, chartHeight, ColorDisk, false), width),
	)
}

// renderScatterSection renders cpu against memory, colored by cluster.
func (m Model) renderScatterSection(width int) string {
	if width < minChartWidth {
		width = minChartWidth
	}
	// Leave room for the border and the y-axis gutter
	plotWidth := width - 4 - 4

	points, value := m.scatterPoints()
	plot := strings.Split(RenderScatter(points, plotWidth, scatterRows), "\n")

	axis := LabelStyle
	lines := make([]string, 0, len(plot)+2)
	for i, row := range plot {
		gutter := "    "
		switch i {
		case 0:
			gutter = "100 "
		case len(plot) - 1:
			gutter = "  0 "
		}
		lines = append(lines, axis.Render(gutter)+row)
	}
	lines = append(lines, axis.Render("    0"+strings.Repeat(" ", max(plotWidth-8, 1))+"100"))
	lines = append(lines, m.renderLegend())

	return Section("Behavioral Clusters", value, strings.Join(lines, "\n"), width)
}

// scatterPoints picks what the scatter shows. With an assignment, its
// window is plotted by label; otherwise every sample is plotted unlabeled.
func (m Model) scatterPoints() ([]ScatterPoint, string) {
	if m.showClusters && m.assignment != nil {
		a := m.assignment
		points := make([]ScatterPoint, len(a.Samples))
		for i, s := range a.Samples {
			points[i] = ScatterPoint{X: s.CPU, Y: s.Memory, Label: a.Labels[i]}
		}
		return points, fmt.Sprintf("k=%d", len(a.Centroids))
	}

	points := make([]ScatterPoint, len(m.samples))
	for i, s := range m.samples {
		points[i] = ScatterPoint{X: s.CPU, Y: s.Memory, Label: -1}
	}
	if !m.showClusters {
		return points, "off"
	}
	return points, "warming up"
}

// renderLegend lists cluster colors with their sizes and mean cpu/memory.
func (m Model) renderLegend() string {
	if !m.showClusters || m.assignment == nil {
		return LabelStyle.Render("x: cpu %  y: memory %")
	}
	sizes := m.assignment.Sizes()
	parts := make([]string, 0, len(sizes))
	for label, n := range sizes {
		c := m.assignment.Centroids[label]
		swatch := lipgloss.NewStyle().Foreground(ClusterColor(label)).Render("●")
		parts = append(parts, fmt.Sprintf("%s %d n=%d cpu %.0f mem %.0f", swatch, label, n, c[0], c[1]))
	}
	return strings.Join(parts, "  ")
}

// series extracts chart data from the snapshot. Disk read is in megabytes.
func (m Model) series() (cpu, mem, disk []float64) {
	cpu = make([]float64, len(m.samples))
	mem = make([]float64, len(m.samples))
	disk = make([]float64, len(m.samples))
	for i, s := range m.samples {
		cpu[i] = s.CPU
		mem[i] = s.Memory
		disk[i] = float64(s.DiskRead) / 1e6
	}
	return cpu, mem, disk
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// FormatDiskRate formats combined disk throughput in MB/s.
func FormatDiskRate(r metrics.Rates) string {
	return fmt.Sprintf("%.1fMB/s", (r.DiskReadPerSec+r.DiskWritePerSec)/1e6)
}

// FormatNetRate formats combined network throughput in KB/s.
func FormatNetRate(r metrics.Rates) string {
	return fmt.Sprintf("%.1fKB/s", (r.NetRecvPerSec+r.NetSentPerSec)/1e3)
}
