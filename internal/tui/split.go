// ABOUTME: Two independent views side by side in one program.
// ABOUTME: Keys go to the focused pane; store changes and ticks reach both.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Split hosts two Models. They share nothing but the underlying store, so
// each one learns about the other's saves the same way a separate process
// would.
type Split struct {
	panes [2]*Model
	focus int
	keys  splitKeyMap

	width, height int
}

func NewSplit(left, right *Model) *Split {
	return &Split{panes: [2]*Model{left, right}, keys: newSplitKeyMap()}
}

// Pane returns the model at index 0 (left) or 1 (right).
func (s *Split) Pane(i int) *Model {
	return s.panes[i]
}

// Focused returns the index of the pane receiving keys.
func (s *Split) Focused() int {
	return s.focus
}

func (s *Split) Init() tea.Cmd {
	return tea.Batch(s.panes[0].Init(), s.panes[1].Init())
}

func (s *Split) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		left := msg.Width / 2
		// Borders take two columns and rows; the footer one more row.
		_, c1 := s.panes[0].Update(tea.WindowSizeMsg{Width: left - 2, Height: msg.Height - 3})
		_, c2 := s.panes[1].Update(tea.WindowSizeMsg{Width: msg.Width - left - 2, Height: msg.Height - 3})
		return s, tea.Batch(c1, c2)

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.switchPane) {
			s.focus = 1 - s.focus
			return s, nil
		}
		_, cmd := s.panes[s.focus].Update(msg)
		return s, cmd
	}

	// Each pane ignores messages from the other's watch and ticker.
	_, c1 := s.panes[0].Update(msg)
	_, c2 := s.panes[1].Update(msg)
	return s, tea.Batch(c1, c2)
}

func (s *Split) View() string {
	views := make([]string, len(s.panes))
	for i, p := range s.panes {
		style := paneStyle
		if i == s.focus {
			style = focusedPaneStyle
		}
		if s.width > 0 {
			w := s.width / 2
			if i == 1 {
				w = s.width - w
			}
			style = style.Width(max(w-2, 1))
		}
		views[i] = style.Render(p.View())
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	return lipgloss.JoinVertical(lipgloss.Left, row, helpStyle.Render(helpLine([]key.Binding{s.keys.switchPane})))
}
