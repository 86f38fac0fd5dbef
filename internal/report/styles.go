package report

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the report renderers.

var (
	regressionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	improvementStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46")). // Green
				Bold(true)

	invariantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray

	naStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")) // Dim Gray

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Padding(0, 1)
)
