// Package ui is the terminal search panel.
package ui

import (
	"context"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/ui/services"
	"github.com/Cyclone1070/wsearch/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// UI runs the search panel with Bubble Tea
type UI struct {
	program *tea.Program
	scope   *events.Scope
}

// NewUI creates a new Bubble Tea UI over the app's active workspace. watcher may be nil.
func NewUI(
	ctx context.Context,
	a *app.App,
	commands commandRunner,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	watcher dirWatcher,
) *UI {
	if a == nil {
		panic("app is required")
	}
	if commands == nil {
		panic("commands is required")
	}
	if renderer == nil {
		panic("renderer is required")
	}

	views.ApplyTheme(a.Config.UI.ColorPrimary)

	scope, eventChan := subscribe(a.Bus)
	model := newBubbleTeaModel(ctx, a, commands, renderer, spinnerFactory, watcher, eventChan)

	return &UI{
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
		scope:   scope,
	}
}

// subscribe forwards the events the panel reacts to into a channel.
// Events are dropped while the panel is busy rendering.
func subscribe(bus events.Bus) (*events.Scope, <-chan events.Event) {
	ch := make(chan events.Event, 16)
	forward := func(ev events.Event) {
		select {
		case ch <- ev:
		default:
		}
	}

	scope := events.NewScope(bus)
	scope.Subscribe(events.TopicDirectoryChanged, forward)
	scope.Subscribe(events.TopicWorkspaceChanged, forward)
	return scope, ch
}

// Start runs the panel until the user quits or the context is cancelled.
func (u *UI) Start() error {
	defer u.scope.Close()
	_, err := u.program.Run()
	return err
}
