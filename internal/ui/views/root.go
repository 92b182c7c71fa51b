package views

import (
	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	var popup string
	switch {
	case s.HasPopup():
		popup = RenderTextPopup(s)
	case s.ShowWorkspaces:
		popup = RenderWorkspacePopup(s)
	}
	if popup != "" {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(""),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
		)
	}

	explorerWidth := s.Width / 4
	if explorerWidth < 16 {
		explorerWidth = 16
	}
	resultsWidth := s.Width - explorerWidth - 4
	if resultsWidth < 20 {
		resultsWidth = 20
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderResults(s, resultsWidth),
		RenderExplorer(s, explorerWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderInputs(s),
		body,
		RenderStatus(s),
	)
}
