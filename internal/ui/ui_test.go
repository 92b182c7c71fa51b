package ui

import (
	"context"
	"sync"
	"testing"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/command"
	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/service/git"
	"github.com/Cyclone1070/wsearch/internal/testing/mocks"
	"github.com/Cyclone1070/wsearch/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockMarkdownRenderer returns markdown unchanged.
type MockMarkdownRenderer struct{}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	return content, nil
}

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

type fakeGit struct{}

func (fakeGit) Read(context.Context, string) (*git.Status, error) {
	return nil, git.ErrNotRepository
}

type recordingWatcher struct {
	mu   sync.Mutex
	dirs []string
}

func (w *recordingWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs = append(w.dirs, dir)
	return nil
}

func (w *recordingWatcher) last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.dirs) == 0 {
		return ""
	}
	return w.dirs[len(w.dirs)-1]
}

type fixture struct {
	model   BubbleTeaModel
	app     *app.App
	fs      *mocks.MockFileSystem
	watcher *recordingWatcher
	events  chan events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := mocks.NewMockFileSystem()
	fs.CreateFile("/ws/a.ts", []byte("const foo = 1\nfoo()\n"), 0o644)
	fs.CreateFile("/ws/b.ts", []byte("let foo\n"), 0o644)
	fs.CreateFile("/ws/c.md", []byte("nothing here\n"), 0o644)
	fs.CreateFile("/ws/src/d.ts", []byte("foo in src\n"), 0o644)
	fs.CreateFile("/other/e.ts", []byte("foo elsewhere\n"), 0o644)

	a := app.New(config.DefaultConfig(), fs, workspace.NewStore(fakeGit{}, nil), nil, nil)
	_, err := a.Open("ws", "/ws")
	require.NoError(t, err)
	_, err = a.Open("other", "/other")
	require.NoError(t, err)

	registry := command.NewRegistry()
	require.NoError(t, registry.Register(command.Builtins(a)...))

	watcher := &recordingWatcher{}
	eventChan := make(chan events.Event, 4)
	model := newBubbleTeaModel(
		context.Background(),
		a,
		registry,
		&MockMarkdownRenderer{},
		mockSpinnerFactory,
		watcher,
		eventChan,
	)

	return &fixture{model: model, app: a, fs: fs, watcher: watcher, events: eventChan}
}

func TestNewBubbleTeaModel_InitialState(t *testing.T) {
	f := newFixture(t)
	s := f.model.state

	assert.Equal(t, "ws", s.Workspace)
	assert.Equal(t, "", s.Dir)
	assert.Equal(t, -1, s.Cursor)
	assert.Equal(t, config.DefaultInclude, s.IncludeInput.Value())
	assert.Equal(t, config.DefaultExclude, s.ExcludeInput.Value())
	assert.True(t, s.SearchInput.Focused())
}

func TestInit_ReturnsCommands(t *testing.T) {
	f := newFixture(t)
	assert.NotNil(t, f.model.Init())
}

func TestSubscribe_ForwardsPanelTopics(t *testing.T) {
	bus := events.NewAsyncBus(8, nil)
	defer bus.Close()

	scope, ch := subscribe(bus)
	defer scope.Close()
	assert.Equal(t, 2, scope.Len())

	bus.Publish(events.SearchStarted{Query: "ignored"})
	bus.Publish(events.DirectoryChanged{Dir: "/ws", Names: []string{"a.ts"}})

	ev := <-ch
	assert.Equal(t, events.TopicDirectoryChanged, ev.Topic())
}

func TestNewUI_RequiresDependencies(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() {
		NewUI(context.Background(), nil, command.NewRegistry(), &MockMarkdownRenderer{}, mockSpinnerFactory, nil)
	})
	assert.Panics(t, func() {
		NewUI(context.Background(), f.app, command.NewRegistry(), nil, mockSpinnerFactory, nil)
	})
	assert.NotNil(t, NewUI(context.Background(), f.app, command.NewRegistry(), &MockMarkdownRenderer{}, mockSpinnerFactory, nil))
}
