package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysdash/internal/poller"
)

// RenderFrame renders a single dashboard frame for u without running a
// Bubble Tea program. Mouse support is ignored.
func RenderFrame(u poller.Update, opts Options, width, height int) string {
	opts.Mouse = false
	opts.Updates = nil

	var m tea.Model = NewModel(opts)
	m, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m, _ = m.Update(updateMsg(u))
	return m.View()
}
