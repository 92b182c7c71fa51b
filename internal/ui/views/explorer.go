package views

import (
	"strings"

	"github.com/Cyclone1070/wsearch/internal/ui/models"
)

// RenderExplorer renders the current directory listing.
func RenderExplorer(s models.State, width int) string {
	height := s.ResultsHeight
	if height < 1 {
		height = 1
	}

	dir := "/" + s.Dir
	lines := []string{MutedStyle.Render(truncate(dir, width))}

	start, end := window(len(s.Entries), s.EntryIndex, height-1)
	for i := start; i < end; i++ {
		e := s.Entries[i]
		name := e.Name
		if !e.IsFile() {
			name += "/"
		}
		name = truncate(name, width-2)
		if s.Focus == models.FocusExplorer && i == s.EntryIndex {
			lines = append(lines, SelectedStyle.Render("▸ "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return PaneStyle.Width(width).Render(strings.Join(lines, "\n"))
}
