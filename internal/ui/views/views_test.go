package views

import (
	"testing"

	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/Cyclone1070/wsearch/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/assert"
)

func newState() models.State {
	return models.State{
		Width:         100,
		Height:        40,
		SearchInput:   textinput.New(),
		ReplaceInput:  textinput.New(),
		IncludeInput:  textinput.New(),
		ExcludeInput:  textinput.New(),
		Spinner:       spinner.New(),
		PopupView:     viewport.New(60, 10),
		Cursor:        -1,
		ResultsHeight: 5,
	}
}

func matches(n int) []search.Match {
	out := make([]search.Match, n)
	for i := range out {
		out[i] = search.Match{File: "a.ts", Path: "src/a.ts", Line: i + 1, Column: 3, Text: "foo", Context: "const foo = 1"}
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name           string
		n, cursor, h   int
		wantStart, end int
	}{
		{"fits", 3, 1, 5, 0, 3},
		{"top", 20, 0, 5, 0, 5},
		{"middle", 20, 10, 5, 8, 13},
		{"bottom", 20, 19, 5, 15, 20},
		{"no cursor", 20, -1, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.n, tt.cursor, tt.h)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "", truncate("hello", 1))
}

func TestRenderResults(t *testing.T) {
	s := newState()
	assert.Contains(t, RenderResults(s, 60), "No results")

	s.Searching = true
	assert.Contains(t, RenderResults(s, 60), "Searching...")

	s.Searching = false
	s.Matches = matches(3)
	s.Cursor = 1
	out := RenderResults(s, 60)
	assert.Contains(t, out, "▸ src/a.ts:2:3")
	assert.Contains(t, out, "src/a.ts:1:3")
	assert.Contains(t, out, "const foo = 1")
}

func TestRenderExplorer(t *testing.T) {
	s := newState()
	s.Dir = "src"
	s.Entries = []explorer.Entry{
		{Name: "lib", Type: explorer.EntryDirectory},
		{Name: "a.ts", Type: explorer.EntryFile},
	}
	s.Focus = models.FocusExplorer
	s.EntryIndex = 1

	out := RenderExplorer(s, 30)
	assert.Contains(t, out, "/src")
	assert.Contains(t, out, "lib/")
	assert.Contains(t, out, "▸ a.ts")
}

func TestRenderToggles(t *testing.T) {
	s := newState()
	s.Regex = true
	out := RenderToggles(s)
	assert.Contains(t, out, "Aa")
	assert.Contains(t, out, "ab")
	assert.Contains(t, out, ".*")
}

func TestRenderInputs_ReplaceField(t *testing.T) {
	s := newState()
	s.ReplaceInput.Placeholder = "Replace"
	assert.NotContains(t, RenderInputs(s), "Replace")

	s.ReplaceMode = true
	assert.Contains(t, RenderInputs(s), "Replace")
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*models.State)
		want  []string
	}{
		{
			name:  "ready",
			setup: func(s *models.State) {},
			want:  []string{"Ready"},
		},
		{
			name:  "searching",
			setup: func(s *models.State) { s.Searching = true },
			want:  []string{"Searching"},
		},
		{
			name:  "error wins",
			setup: func(s *models.State) { s.Searching = true; s.Error = "bad pattern" },
			want:  []string{"✘ bad pattern"},
		},
		{
			name: "position",
			setup: func(s *models.State) {
				s.Matches = matches(4)
				s.Cursor = 2
				s.Truncated = true
				s.Stale = true
				s.Workspace = "ws"
				s.StatusMessage = "4 result(s) in 1 file(s)"
			},
			want: []string{"4 result(s) in 1 file(s)", "3/4+", "stale", "ws"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState()
			tt.setup(&s)
			out := RenderStatus(s)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderWorkspacePopup(t *testing.T) {
	s := newState()
	assert.Empty(t, RenderWorkspacePopup(s))

	s.ShowWorkspaces = true
	s.Workspaces = []workspace.Workspace{
		{ID: "ws-1", Name: "one", Root: "/one"},
		{ID: "ws-2", Name: "two", Root: "/two"},
	}
	s.WorkspaceIndex = 1

	out := RenderWorkspacePopup(s)
	assert.Contains(t, out, "Switch Workspace:")
	assert.Contains(t, out, "  one")
	assert.Contains(t, out, "▸ two")
	assert.Contains(t, out, "Esc: Cancel")
}

func TestRenderRoot_PopupOverlays(t *testing.T) {
	s := newState()
	s.Matches = matches(1)
	s.Cursor = 0
	assert.Contains(t, RenderRoot(s), "src/a.ts:1:3")

	s.Popup = "Replaced 1 occurrence(s)"
	s.PopupTitle = "Replace complete"
	s.PopupView.SetContent(s.Popup)
	out := RenderRoot(s)
	assert.Contains(t, out, "Replace complete")
	assert.Contains(t, out, "Replaced 1 occurrence(s)")
	assert.NotContains(t, out, "src/a.ts:1:3")
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme("63")
	ApplyTheme("#ff0000")
	assert.Equal(t, "#ff0000", string(ColorPrimary))
}
