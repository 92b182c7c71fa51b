package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderWorkspacePopup renders the workspace switcher
func RenderWorkspacePopup(s models.State) string {
	if !s.ShowWorkspaces || len(s.Workspaces) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Switch Workspace:"))
	lines = append(lines, "")

	for i, ws := range s.Workspaces {
		if i == s.WorkspaceIndex {
			lines = append(lines, fmt.Sprintf("%s  %s", SelectedStyle.Render("▸ "+ws.Name), MutedStyle.Render(ws.Root)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s  %s", ws.Name, MutedStyle.Render(ws.Root)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: Navigate  Enter: Select  Esc: Cancel"))

	return PopupStyle.Render(strings.Join(lines, "\n"))
}

// RenderTextPopup renders the blocking notification holding rendered markdown.
func RenderTextPopup(s models.State) string {
	if !s.HasPopup() {
		return ""
	}

	var lines []string
	if s.PopupTitle != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(s.PopupTitle))
	}
	lines = append(lines, s.PopupView.View())
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: Scroll  Enter/Esc: Dismiss"))

	return PopupStyle.Render(strings.Join(lines, "\n"))
}
