package monitor

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestKeyMap_Bindings(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"p pauses", runeKey('p'), keys.Pause},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace}, keys.Pause},
		{"c toggles clusters", runeKey('c'), keys.Clusters},
		{"r opens recommendations", runeKey('r'), keys.Recommend},
		{"o optimizes", runeKey('o'), keys.Optimize},
		{"? opens help", runeKey('?'), keys.Help},
		{"esc closes", tea.KeyMsg{Type: tea.KeyEsc}, keys.Close},
		{"q quits", runeKey('q'), keys.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestKeyMap_HelpCoversEveryBinding(t *testing.T) {
	seen := map[string]bool{}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			seen[b.Help().Key] = true
		}
	}
	for _, b := range []key.Binding{keys.Pause, keys.Clusters, keys.Recommend, keys.Optimize, keys.Help, keys.Close, keys.Quit} {
		assert.True(t, seen[b.Help().Key], "missing %q in full help", b.Help().Key)
	}
	assert.NotEmpty(t, keys.ShortHelp())
}

func TestHandleKeyMsg_UnknownKey(t *testing.T) {
	m, controls := newTestModel(t)
	handled, cmd := m.HandleKeyMsg(runeKey('z'))
	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.True(t, controls.Active())
}
