package views

import (
	"fmt"

	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var left string
	switch {
	case s.Error != "":
		left = StatusErrorStyle.Render("✘ " + s.Error)
	case s.Searching:
		left = StatusSearchingStyle.Render(fmt.Sprintf("%s Searching", s.Spinner.View()))
	case s.StatusMessage != "":
		left = StatusDefaultStyle.Render(s.StatusMessage)
	default:
		left = StatusDefaultStyle.Render("Ready")
	}

	var position string
	if len(s.Matches) > 0 {
		position = fmt.Sprintf("%d/%d", s.Cursor+1, len(s.Matches))
		if s.Truncated {
			position += "+"
		}
	}

	right := ""
	if s.Stale {
		right = StatusStaleStyle.Render("stale") + " "
	}
	if position != "" {
		right += StatusDefaultStyle.Render(position)
	}
	if s.Workspace != "" {
		right += StatusDefaultStyle.Foreground(ColorMuted).Render(s.Workspace)
	}

	if right == "" {
		return left
	}
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
