package models

import (
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Focus identifies the widget receiving key presses.
type Focus int

const (
	FocusSearch Focus = iota
	FocusReplace
	FocusInclude
	FocusExclude
	FocusResults
	FocusExplorer
)

// State is everything the views need to render the panel.
type State struct {
	Width  int
	Height int

	SearchInput  textinput.Model
	ReplaceInput textinput.Model
	IncludeInput textinput.Model
	ExcludeInput textinput.Model
	Focus        Focus

	CaseSensitive bool
	WholeWord     bool
	Regex         bool
	ReplaceMode   bool

	Searching bool
	Spinner   spinner.Model

	Matches   []search.Match
	Cursor    int // -1 when there are no matches
	Truncated bool
	Skipped   int
	Stale     bool

	Dir        string // root-relative
	Entries    []explorer.Entry
	EntryIndex int

	Workspace      string
	Workspaces     []workspace.Workspace
	ShowWorkspaces bool
	WorkspaceIndex int

	// Popup holds rendered markdown shown above everything until dismissed.
	Popup      string
	PopupTitle string
	PopupView  viewport.Model

	StatusMessage string
	Error         string
	ResultsHeight int
}

// HasPopup reports whether a blocking popup is open.
func (s State) HasPopup() bool {
	return s.Popup != ""
}
