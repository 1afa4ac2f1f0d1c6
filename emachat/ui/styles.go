package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles for the chat screen.
type Styles struct {
	Local       lipgloss.Style
	Remote      lipgloss.Style
	Status      lipgloss.Style
	StatusAlert lipgloss.Style
	Input       lipgloss.Style
}

func DefaultStyles() Styles {
	bubble := lipgloss.NewStyle().Padding(0, 1).MarginBottom(1)
	return Styles{
		Local: bubble.
			Background(lipgloss.Color("#6a0dad")).
			Foreground(lipgloss.Color("#ffffff")),
		Remote: bubble.
			Background(lipgloss.Color("#e1bee7")).
			Foreground(lipgloss.Color("#000000")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusAlert: lipgloss.NewStyle().Foreground(lipgloss.Color("#c62828")),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#cccccc")),
	}
}
