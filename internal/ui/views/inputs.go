package views

import (
	"strings"

	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderInputs renders the query fields and the option toggles.
func RenderInputs(s models.State) string {
	width := s.Width - 4
	if width < 20 {
		width = 20
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			box(s, models.FocusSearch, s.SearchInput.View(), width-16),
			" ",
			RenderToggles(s),
		),
	}
	if s.ReplaceMode {
		rows = append(rows, box(s, models.FocusReplace, s.ReplaceInput.View(), width-16))
	}
	half := width/2 - 2
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
		box(s, models.FocusInclude, s.IncludeInput.View(), half),
		" ",
		box(s, models.FocusExclude, s.ExcludeInput.View(), half),
	))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderToggles renders the Aa / ab / .* switches.
func RenderToggles(s models.State) string {
	toggles := []struct {
		label string
		on    bool
	}{
		{"Aa", s.CaseSensitive},
		{"ab", s.WholeWord},
		{".*", s.Regex},
	}
	parts := make([]string, 0, len(toggles))
	for _, t := range toggles {
		if t.on {
			parts = append(parts, ToggleOnStyle.Render(t.label))
		} else {
			parts = append(parts, ToggleOffStyle.Render(t.label))
		}
	}
	return strings.Join(parts, " ")
}

func box(s models.State, f models.Focus, content string, width int) string {
	style := InputStyle
	if s.Focus == f {
		style = FocusedInputStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}
