package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Clickable control zone IDs.
const (
	zoneOptimize  = "btn-optimize"
	zonePause     = "btn-pause"
	zoneRecommend = "btn-recommend"
	zoneClusters  = "btn-clusters"
)

// buttonOrder fixes the left-to-right order of the control panel.
var buttonOrder = []string{zoneOptimize, zonePause, zoneRecommend, zoneClusters}

// handleMouse maps a left click on a control to the same action as its key.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, id := range buttonOrder {
		if z := m.zones.Get(id); z != nil && z.InBounds(msg) {
			m.press(id)
			return nil
		}
	}
	return nil
}

// press runs the action bound to a control.
func (m *Model) press(id string) {
	switch id {
	case zoneOptimize:
		m.startOptimization()
	case zonePause:
		m.togglePause()
	case zoneRecommend:
		m.toggleOverlay(overlayRecommendations)
	case zoneClusters:
		m.toggleClusters()
	}
}

// buttonLabel returns the text of a control for the current state.
func (m Model) buttonLabel(id string) string {
	switch id {
	case zoneOptimize:
		return "Start Optimization"
	case zonePause:
		if m.paused {
			return "Resume Monitoring"
		}
		return "Pause Monitoring"
	case zoneRecommend:
		return "View Recommendations"
	case zoneClusters:
		if m.showClusters {
			return "[x] Show Clusters"
		}
		return "[ ] Show Clusters"
	}
	return id
}

// renderControls renders the control panel as a row of buttons.
func (m Model) renderControls() string {
	buttons := make([]string, 0, len(buttonOrder))
	for _, id := range buttonOrder {
		style := ButtonStyle
		if (id == zoneOptimize && m.optimizing) || (id == zonePause && m.paused) || (id == zoneClusters && m.showClusters) {
			style = ButtonActiveStyle
		}
		buttons = append(buttons, m.mark(id, style.Render(m.buttonLabel(id))))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if lipgloss.Width(row) > m.viewWidth() {
		return lipgloss.JoinVertical(lipgloss.Left, buttons...)
	}
	return row
}

// mark registers s as a clickable zone when mouse support is on.
func (m Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}
