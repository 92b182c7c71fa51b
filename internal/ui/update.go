package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/command"
	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/ui/models"
	"github.com/Cyclone1070/wsearch/internal/ui/services"
	"github.com/Cyclone1070/wsearch/internal/ui/views"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// commandRunner dispatches slash commands.
type commandRunner interface {
	Execute(ctx context.Context, name string, args map[string]any) (string, error)
	Declarations() []command.Declaration
}

// dirWatcher follows the explorer's current directory.
type dirWatcher interface {
	Watch(dir string) error
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	ctx      context.Context
	app      *app.App
	commands commandRunner
	renderer services.MarkdownRenderer
	watcher  dirWatcher
	keys     keyMap

	// Bus events forwarded into the program
	eventChan <-chan events.Event
}

// Internal messages
type searchDoneMsg struct{ err error }

type replaceDoneMsg struct {
	summary *search.ReplaceSummary
	err     error
}

type commandDoneMsg struct {
	name   string
	output string
	err    error
}

type entriesMsg struct {
	entries []explorer.Entry
	err     error
}

type busEventMsg struct{ event events.Event }

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	ctx context.Context,
	a *app.App,
	commands commandRunner,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	watcher dirWatcher,
	eventChan <-chan events.Event,
) BubbleTeaModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search  (/help for commands)"
	searchInput.Focus()

	replaceInput := textinput.New()
	replaceInput.Placeholder = "Replace"

	includeInput := textinput.New()
	includeInput.Placeholder = "files to include"
	includeInput.SetValue(a.Config.Search.DefaultInclude)

	excludeInput := textinput.New()
	excludeInput.Placeholder = "files to exclude"
	excludeInput.SetValue(a.Config.Search.DefaultExclude)

	m := BubbleTeaModel{
		state: models.State{
			SearchInput:   searchInput,
			ReplaceInput:  replaceInput,
			IncludeInput:  includeInput,
			ExcludeInput:  excludeInput,
			Spinner:       spinnerFactory(),
			PopupView:     viewport.New(60, 15),
			Cursor:        -1,
			ResultsHeight: a.Config.UI.ResultsHeight,
		},
		ctx:       ctx,
		app:       a,
		commands:  commands,
		renderer:  renderer,
		watcher:   watcher,
		keys:      defaultKeyMap(),
		eventChan: eventChan,
	}
	m.sync()
	return m
}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		m.loadEntries(),
		listenForEvents(m.eventChan),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.PopupView.Width = msg.Width * 2 / 3
		m.state.PopupView.Height = msg.Height / 2
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		m.sync()
		switch {
		case msg.err == nil:
			m.state.Error = ""
			m.state.StatusMessage = m.resultSummary()
		case errors.Is(msg.err, search.ErrBlankQuery):
			m.state.Error = ""
		default:
			m.state.Error = msg.err.Error()
		}
		return m, nil

	case replaceDoneMsg:
		m.sync()
		if msg.err != nil {
			m.state.Error = msg.err.Error()
			return m, nil
		}
		m.state.Error = ""
		title := "Replace complete"
		if msg.summary.DryRun {
			title = "Replace preview"
		}
		m.showPopup(title, services.FormatReplaceSummary(msg.summary))
		return m, m.loadEntries()

	case commandDoneMsg:
		m.sync()
		if msg.err != nil {
			m.state.Error = msg.err.Error()
		} else {
			m.state.Error = ""
			m.showPopup("/"+msg.name, services.FormatCommandOutput(msg.name, msg.output))
		}
		m.follow()
		return m, m.loadEntries()

	case entriesMsg:
		if msg.err != nil {
			m.state.Error = msg.err.Error()
			return m, nil
		}
		m.state.Entries = msg.entries
		if m.state.EntryIndex >= len(msg.entries) {
			m.state.EntryIndex = max(len(msg.entries)-1, 0)
		}
		return m, nil

	case busEventMsg:
		return m.handleEvent(msg.event)
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Blocking notification
	if m.state.HasPopup() {
		switch {
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Search):
			m.state.Popup = ""
			m.state.PopupTitle = ""
		default:
			var cmd tea.Cmd
			m.state.PopupView, cmd = m.state.PopupView.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Workspace switcher navigation
	if m.state.ShowWorkspaces {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.state.WorkspaceIndex > 0 {
				m.state.WorkspaceIndex--
			}
		case key.Matches(msg, m.keys.Down):
			if m.state.WorkspaceIndex < len(m.state.Workspaces)-1 {
				m.state.WorkspaceIndex++
			}
		case key.Matches(msg, m.keys.Search):
			m.state.ShowWorkspaces = false
			if m.state.WorkspaceIndex < len(m.state.Workspaces) {
				if err := m.app.Store.Switch(m.state.Workspaces[m.state.WorkspaceIndex].ID); err != nil {
					m.state.Error = err.Error()
					return m, nil
				}
				m.sync()
				m.follow()
				return m, m.loadEntries()
			}
		case key.Matches(msg, m.keys.Cancel):
			m.state.ShowWorkspaces = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Workspaces):
		m.openWorkspaces()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.CaseSensitive):
		m.state.CaseSensitive = !m.state.CaseSensitive
		return m, m.searchIfQuery()

	case key.Matches(msg, m.keys.WholeWord):
		m.state.WholeWord = !m.state.WholeWord
		return m, m.searchIfQuery()

	case key.Matches(msg, m.keys.Regex):
		m.state.Regex = !m.state.Regex
		return m, m.searchIfQuery()

	case key.Matches(msg, m.keys.ReplaceMode):
		m.toggleReplaceMode()
		return m, nil

	case key.Matches(msg, m.keys.ReplaceAll):
		return m.replace(false)

	case key.Matches(msg, m.keys.Preview):
		return m.replace(true)

	case key.Matches(msg, m.keys.Open):
		m.openMatch()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil
	}

	if m.state.Focus == models.FocusExplorer {
		switch {
		case key.Matches(msg, m.keys.Search):
			return m.enterEntry()
		case key.Matches(msg, m.keys.Parent):
			return m.changeDirectory("")
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Search) {
		input := strings.TrimSpace(m.state.SearchInput.Value())
		if strings.HasPrefix(input, "/") {
			return m.handleCommand(input)
		}
		return m, m.search()
	}

	return m.updateFocusedInput(msg)
}

// handleCommand handles slash commands
func (m BubbleTeaModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	name, args := services.ParseCommand(input)
	if name == "" {
		return m, nil
	}
	m.state.SearchInput.SetValue("")

	if name == "help" {
		m.showPopup("Help", services.FormatHelp(m.keys.help(), m.commands.Declarations()))
		return m, nil
	}

	ctx, commands := m.ctx, m.commands
	return m, func() tea.Msg {
		out, err := commands.Execute(ctx, name, args)
		return commandDoneMsg{name: name, output: out, err: err}
	}
}

func (m BubbleTeaModel) handleEvent(ev events.Event) (tea.Model, tea.Cmd) {
	next := listenForEvents(m.eventChan)

	switch ev := ev.(type) {
	case events.DirectoryChanged:
		wc, err := m.app.Current()
		if err != nil || filepath.Clean(ev.Dir) != wc.Explorer.AbsCwd() {
			return m, next
		}
		wc.Session.MarkStale()
		m.sync()
		return m, tea.Batch(next, m.loadEntries())

	case events.WorkspaceChanged:
		m.sync()
		m.follow()
		return m, tea.Batch(next, m.loadEntries())
	}

	return m, next
}

func (m *BubbleTeaModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state.Focus {
	case models.FocusSearch:
		m.state.SearchInput, cmd = m.state.SearchInput.Update(msg)
	case models.FocusReplace:
		m.state.ReplaceInput, cmd = m.state.ReplaceInput.Update(msg)
	case models.FocusInclude:
		m.state.IncludeInput, cmd = m.state.IncludeInput.Update(msg)
	case models.FocusExclude:
		m.state.ExcludeInput, cmd = m.state.ExcludeInput.Update(msg)
	}
	return *m, cmd
}

// query builds the query from the inputs and toggles.
func (m BubbleTeaModel) query() search.Query {
	return search.Query{
		Text:        m.state.SearchInput.Value(),
		Replacement: m.state.ReplaceInput.Value(),
		Options: search.Options{
			CaseSensitive: m.state.CaseSensitive,
			WholeWord:     m.state.WholeWord,
			Regex:         m.state.Regex,
			Include:       m.state.IncludeInput.Value(),
			Exclude:       m.state.ExcludeInput.Value(),
		},
	}
}

func (m *BubbleTeaModel) search() tea.Cmd {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return nil
	}
	m.state.Searching = true
	ctx, q := m.ctx, m.query()
	return func() tea.Msg {
		_, err := wc.Session.Search(ctx, q)
		return searchDoneMsg{err: err}
	}
}

func (m *BubbleTeaModel) searchIfQuery() tea.Cmd {
	text := strings.TrimSpace(m.state.SearchInput.Value())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	return m.search()
}

func (m BubbleTeaModel) replace(dryRun bool) (tea.Model, tea.Cmd) {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return m, nil
	}
	if !dryRun && !wc.Session.ReplaceMode() {
		m.state.Error = search.ErrNotReplaceMode.Error()
		return m, nil
	}

	m.state.Searching = true
	ctx, q := m.ctx, m.query()
	return m, func() tea.Msg {
		if dryRun {
			summary, err := wc.Session.PreviewReplace(ctx, q)
			return replaceDoneMsg{summary: summary, err: err}
		}
		summary, err := wc.Session.ReplaceAll(ctx, q)
		return replaceDoneMsg{summary: summary, err: err}
	}
}

func (m *BubbleTeaModel) toggleReplaceMode() {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return
	}
	wc.Session.SetReplaceMode(!wc.Session.ReplaceMode())
	m.state.ReplaceMode = wc.Session.ReplaceMode()
	if !m.state.ReplaceMode && m.state.Focus == models.FocusReplace {
		m.setFocus(models.FocusSearch)
	}
}

func (m *BubbleTeaModel) move(delta int) {
	if m.state.Focus == models.FocusExplorer {
		i := m.state.EntryIndex + delta
		if i >= 0 && i < len(m.state.Entries) {
			m.state.EntryIndex = i
		}
		return
	}
	wc, err := m.app.Current()
	if err != nil {
		return
	}
	m.state.Cursor = wc.Session.Move(delta)
}

func (m *BubbleTeaModel) openMatch() {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return
	}
	match, err := wc.Session.Open(m.ctx)
	if err != nil {
		m.state.Error = err.Error()
		return
	}
	m.state.Error = ""
	m.state.StatusMessage = fmt.Sprintf("Opened %s:%d:%d", match.Path, match.Line, match.Column)
}

func (m BubbleTeaModel) enterEntry() (tea.Model, tea.Cmd) {
	if m.state.EntryIndex >= len(m.state.Entries) {
		return m, nil
	}
	entry := m.state.Entries[m.state.EntryIndex]
	if !entry.IsFile() {
		return m.changeDirectory(entry.Name)
	}

	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return m, nil
	}
	rel, err := wc.Explorer.Path(entry.Name)
	if err == nil {
		err = m.app.Store.SetCurrentFile(rel)
	}
	if err != nil {
		m.state.Error = err.Error()
		return m, nil
	}
	m.state.Error = ""
	m.state.StatusMessage = "Opened " + entry.Name
	return m, nil
}

// changeDirectory enters name, or the parent directory when name is empty.
func (m BubbleTeaModel) changeDirectory(name string) (tea.Model, tea.Cmd) {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Error = err.Error()
		return m, nil
	}
	if name == "" {
		err = wc.Explorer.Up()
	} else {
		err = wc.Explorer.ChangeDirectory(name)
	}
	if err != nil {
		m.state.Error = err.Error()
		return m, nil
	}
	m.state.Error = ""
	m.state.EntryIndex = 0
	m.sync()
	m.follow()
	return m, m.loadEntries()
}

func (m *BubbleTeaModel) openWorkspaces() {
	m.state.Workspaces = m.app.Store.List()
	m.state.WorkspaceIndex = 0
	if active, ok := m.app.Store.Active(); ok {
		for i, ws := range m.state.Workspaces {
			if ws.ID == active.ID {
				m.state.WorkspaceIndex = i
			}
		}
	}
	m.state.ShowWorkspaces = len(m.state.Workspaces) > 0
}

func (m *BubbleTeaModel) cycleFocus() {
	next := m.state.Focus + 1
	if next == models.FocusReplace && !m.state.ReplaceMode {
		next++
	}
	if next > models.FocusExplorer {
		next = models.FocusSearch
	}
	m.setFocus(next)
}

func (m *BubbleTeaModel) setFocus(f models.Focus) {
	m.state.Focus = f
	inputs := map[models.Focus]*textinput.Model{
		models.FocusSearch:  &m.state.SearchInput,
		models.FocusReplace: &m.state.ReplaceInput,
		models.FocusInclude: &m.state.IncludeInput,
		models.FocusExclude: &m.state.ExcludeInput,
	}
	for focus, input := range inputs {
		if focus == f {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *BubbleTeaModel) showPopup(title, markdown string) {
	rendered, err := services.RenderMarkdown(markdown, m.state.PopupView.Width, m.renderer)
	if err != nil {
		rendered = markdown
	}
	m.state.PopupTitle = title
	m.state.Popup = rendered
	m.state.PopupView.SetContent(rendered)
	m.state.PopupView.GotoTop()
}

// sync copies the active workspace's session and explorer state into the view state.
func (m *BubbleTeaModel) sync() {
	wc, err := m.app.Current()
	if err != nil {
		m.state.Workspace = ""
		m.state.Matches = nil
		m.state.Cursor = -1
		return
	}
	if ws, ok := m.app.Store.Get(wc.ID); ok {
		m.state.Workspace = ws.Name
	}
	m.state.Dir = wc.Explorer.Cwd()

	s := wc.Session
	m.state.Searching = s.Searching()
	m.state.ReplaceMode = s.ReplaceMode()
	m.state.Stale = s.Stale()

	rs := s.Results()
	m.state.Matches = rs.Matches()
	m.state.Cursor = -1
	m.state.Truncated = false
	m.state.Skipped = 0
	if rs != nil {
		m.state.Cursor = rs.Cursor()
		m.state.Truncated = rs.Truncated()
		m.state.Skipped = rs.Skipped()
	}
}

// follow points the directory watcher at the explorer's current directory.
func (m BubbleTeaModel) follow() {
	if m.watcher == nil {
		return
	}
	wc, err := m.app.Current()
	if err != nil {
		return
	}
	_ = m.watcher.Watch(wc.Explorer.AbsCwd())
}

func (m BubbleTeaModel) resultSummary() string {
	n := len(m.state.Matches)
	if n == 0 {
		return "No results"
	}
	files := make(map[string]struct{})
	for _, match := range m.state.Matches {
		files[match.Path] = struct{}{}
	}
	msg := fmt.Sprintf("%d result(s) in %d file(s)", n, len(files))
	if m.state.Skipped > 0 {
		msg += fmt.Sprintf(", %d skipped", m.state.Skipped)
	}
	return msg
}

func (m BubbleTeaModel) loadEntries() tea.Cmd {
	wc, err := m.app.Current()
	if err != nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := wc.Explorer.ListCurrentDirectory(ctx)
		return entriesMsg{entries: entries, err: err}
	}
}

// Helper commands for listening to channels
func listenForEvents(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return busEventMsg{event: ev}
	}
}
