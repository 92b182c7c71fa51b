package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("63")
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorMatch   = lipgloss.Color("214")
	ColorStale   = lipgloss.Color("178")

	InputStyle        lipgloss.Style
	FocusedInputStyle lipgloss.Style
	PopupStyle        lipgloss.Style
	PaneStyle         lipgloss.Style
	ToggleOnStyle     lipgloss.Style
	ToggleOffStyle    lipgloss.Style
	SelectedStyle     lipgloss.Style
	MatchStyle        lipgloss.Style
	MutedStyle        lipgloss.Style

	StatusDefaultStyle   lipgloss.Style
	StatusSearchingStyle lipgloss.Style
	StatusErrorStyle     lipgloss.Style
	StatusStaleStyle     lipgloss.Style
)

func init() {
	ApplyTheme("63")
}

// ApplyTheme rebuilds the styles around a primary color (ANSI code or hex).
func ApplyTheme(primary string) {
	if primary != "" {
		ColorPrimary = lipgloss.Color(primary)
	}

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	FocusedInputStyle = InputStyle.BorderForeground(ColorPrimary)
	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted)
	ToggleOnStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	ToggleOffStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	MatchStyle = lipgloss.NewStyle().Foreground(ColorMatch).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusDefaultStyle = lipgloss.NewStyle().Padding(0, 1)
	StatusSearchingStyle = StatusDefaultStyle.Foreground(ColorPrimary)
	StatusErrorStyle = StatusDefaultStyle.Foreground(ColorError)
	StatusStaleStyle = StatusDefaultStyle.Foreground(ColorStale)
}
