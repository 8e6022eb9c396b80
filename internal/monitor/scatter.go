package monitor

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// scatterSupersample is the canvas resolution per output pixel. Points are
// drawn wider than one output pixel so they survive the downsample.
const scatterSupersample = 4

// ScatterPoint is one (x, y) point in percent units. Label < 0 means the
// point has no cluster.
type ScatterPoint struct {
	X, Y  float64
	Label int
}

// RenderScatter plots points on a 0-100 by 0-100 plane, cols characters
// wide and rows characters tall. Each character cell holds two vertical
// pixels drawn with an upper half-block, foreground for the top pixel and
// background for the bottom one.
func RenderScatter(points []ScatterPoint, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	canvas := drawScatter(points, cols*scatterSupersample, rows*2*scatterSupersample)
	img := imaging.Resize(canvas, cols, rows*2, imaging.Box)
	return halfBlocks(img)
}

// drawScatter paints points onto a w x h canvas filled with the surface color.
func drawScatter(points []ScatterPoint, w, h int) *image.NRGBA {
	canvas := imaging.New(w, h, rgba(ColorSurfaceBg))
	radius := scatterSupersample

	for _, p := range points {
		cx := int(clampPercent(p.X) / 100 * float64(w-1))
		cy := int((1 - clampPercent(p.Y)/100) * float64(h-1))
		fill := rgba(ClusterColor(p.Label))
		for y := cy - radius; y <= cy+radius; y++ {
			for x := cx - radius; x <= cx+radius; x++ {
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				canvas.SetNRGBA(x, y, fill)
			}
		}
	}
	return canvas
}

// halfBlocks emits img two pixel rows per text line.
func halfBlocks(img *image.NRGBA) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var line strings.Builder
		for x := 0; x < w; x++ {
			top := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			bottom := color.NRGBA{}
			if y+1 < h {
				bottom = img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1)
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render("▀"))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
