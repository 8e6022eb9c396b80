package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the dashboard key bindings. It implements help.KeyMap.
type keyMap struct {
	Pause     key.Binding
	Clusters  key.Binding
	Recommend key.Binding
	Optimize  key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Clusters, k.Recommend, k.Help, k.Quit}
}

// FullHelp returns the binding groups shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Clusters, k.Optimize},
		{k.Recommend, k.Help, k.Close, k.Quit},
	}
}

var keys = keyMap{
	Pause:     key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause/resume")),
	Clusters:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle clusters")),
	Recommend: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommendations")),
	Optimize:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "start optimization")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
// Keys keep working after the poller stops so the user can always read
// recommendations or quit.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.toggleOverlay(overlayHelp)
		return true, nil

	case key.Matches(msg, m.keys.Close):
		m.overlay = overlayNone
		return true, nil

	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
		return true, nil

	case key.Matches(msg, m.keys.Clusters):
		m.toggleClusters()
		return true, nil

	case key.Matches(msg, m.keys.Recommend):
		m.toggleOverlay(overlayRecommendations)
		return true, nil

	case key.Matches(msg, m.keys.Optimize):
		m.startOptimization()
		return true, nil
	}

	return false, nil
}
