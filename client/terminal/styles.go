package terminal

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#facc15")
	accentColor  = lipgloss.Color("#0fb5ff")
	mutedColor   = lipgloss.Color("#9ca3af")
	errorColor   = lipgloss.Color("#ff5050")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			Width(30)

	focusedInputBoxStyle = inputBoxStyle.Copy().
				BorderForeground(accentColor)

	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Width(30)

	highlightStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)
