package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Card     lipgloss.Style
	CardHead lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Capacity lipgloss.Style
	SOH      lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle().Width(28),
		Focused:  lipgloss.NewStyle().Width(28).Bold(true).Foreground(lipgloss.Color("63")),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		Card: lipgloss.NewStyle().
			Padding(0, 2).
			Width(32).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		CardHead: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Capacity: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		SOH:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
}
