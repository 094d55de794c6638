package report

import "github.com/charmbracelet/lipgloss"

var (
	// Table header style
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	// Failure row style
	failedRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)
