package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysdash/internal/analysis"
)

// Overlay styles
var (
	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				MarginBottom(1)

	recommendationStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)
)

// renderHelpOverlay renders a centered box listing every key binding.
func (m Model) renderHelpOverlay() string {
	lines := []string{
		overlayTitleStyle.Render("Keyboard Shortcuts"),
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		LabelStyle.Render("Press ? or esc to close"),
	}
	return m.place(overlayBoxStyle.Render(strings.Join(lines, "\n")))
}

// renderRecommendationsOverlay renders the numbered recommendation list.
func (m Model) renderRecommendationsOverlay() string {
	lines := []string{overlayTitleStyle.Render("Recommendations")}
	lines = append(lines, FormatRecommendations(m.recommendations, recommendationStyle)...)
	lines = append(lines, "", LabelStyle.Render("Press r or esc to close"))
	return m.place(overlayBoxStyle.Render(strings.Join(lines, "\n")))
}

// FormatRecommendations numbers each message from 1. The insufficient data
// notice is not an advisory and is shown unnumbered.
func FormatRecommendations(recs []string, style lipgloss.Style) []string {
	if len(recs) == 1 && recs[0] == analysis.MsgInsufficientData {
		return []string{LabelStyle.Render(recs[0])}
	}
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = style.Render(fmt.Sprintf("%d. %s", i+1, r))
	}
	return out
}

// place centers box in the terminal, or returns it as-is before the first resize.
func (m Model) place(box string) string {
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}
