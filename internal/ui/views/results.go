package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/ui/models"
)

// RenderResults renders a window of the result list that keeps the cursor visible.
func RenderResults(s models.State, width int) string {
	height := s.ResultsHeight
	if height < 1 {
		height = 1
	}

	var lines []string
	switch {
	case s.Searching && len(s.Matches) == 0:
		lines = append(lines, MutedStyle.Render("Searching..."))
	case len(s.Matches) == 0:
		lines = append(lines, MutedStyle.Render("No results"))
	default:
		start, end := window(len(s.Matches), s.Cursor, height)
		for i := start; i < end; i++ {
			lines = append(lines, renderMatch(s, i, width))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return PaneStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// window returns the [start, end) slice of n rows of which cursor must be visible.
func window(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	if cursor < 0 {
		cursor = 0
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func renderMatch(s models.State, i, width int) string {
	m := s.Matches[i]
	loc := fmt.Sprintf("%s:%d:%d", m.Path, m.Line, m.Column)
	text := truncate(m.Context, width-len([]rune(loc))-4)

	if i == s.Cursor {
		return SelectedStyle.Render("▸ "+loc) + " " + text
	}
	return "  " + MutedStyle.Render(loc) + " " + text
}

func truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
