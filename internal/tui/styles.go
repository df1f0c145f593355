// ABOUTME: Lipgloss styles shared by the TUI screens.
// ABOUTME: Colors follow the CLI palette.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	sortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	rowTitleStyle = lipgloss.NewStyle().Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Bold(true)

	rowStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888")).
				Italic(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(lipgloss.Color("#0AF"))

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334455"))

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#0AF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)
