package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F99D"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#57C7FF")).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9AEDFE")).Bold(true)
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#57C7FF")).
			Padding(0, 1)
)
