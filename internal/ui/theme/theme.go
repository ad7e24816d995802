package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface  = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext  = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface).
		Foreground(Text).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext)

	Ahead     = lipgloss.NewStyle().Foreground(Green).Bold(true)
	OnTrack   = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Behind    = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	FarBehind = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// StatusStyle picks the style for a progress status string.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "ahead":
		return Ahead
	case "on-track":
		return OnTrack
	case "behind":
		return Behind
	default:
		return FarBehind
	}
}
