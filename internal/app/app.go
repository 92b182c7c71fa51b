// Package app wires one search session and explorer per open workspace.
package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	fsvc "github.com/Cyclone1070/wsearch/internal/service/fs"
	"github.com/Cyclone1070/wsearch/internal/service/git"
	"github.com/Cyclone1070/wsearch/internal/workspace"
)

// fileSystem is what the explorer and the ignore matcher need from the OS.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	EvalSymlinks(path string) (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	ListDir(path string) ([]os.FileInfo, error)
}

// WorkspaceContext holds the per-workspace components.
type WorkspaceContext struct {
	ID       string
	Root     string // canonical
	Explorer *explorer.Explorer
	Engine   *search.Engine
	Session  *search.Session
}

// App owns the workspace store and a WorkspaceContext for each workspace in it.
type App struct {
	Config *config.Config
	Store  *workspace.Store
	Bus    events.Bus

	fs     fileSystem
	logger *slog.Logger

	mu       sync.RWMutex
	contexts map[string]*WorkspaceContext
}

// New creates an App. bus may be nil.
func New(cfg *config.Config, fs fileSystem, store *workspace.Store, bus events.Bus, logger *slog.Logger) *App {
	if cfg == nil {
		panic("config is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if store == nil {
		panic("store is required")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Config:   cfg,
		Store:    store,
		Bus:      bus,
		fs:       fs,
		logger:   logger,
		contexts: make(map[string]*WorkspaceContext),
	}
}

// Open creates a workspace for an already canonical root and builds its components.
func (a *App) Open(name, root string) (*WorkspaceContext, error) {
	ws, err := a.Store.Create(name, root)
	if err != nil {
		return nil, err
	}

	exp := explorer.New(a.fs, root, a.Config)
	engine := search.NewEngine(exp, fsvc.NewChecksumManager(), a.ignoreMatcher(root), a.Config, a.logger)
	wc := &WorkspaceContext{
		ID:       ws.ID,
		Root:     root,
		Explorer: exp,
		Engine:   engine,
		Session:  search.NewSession(engine, a.Store, a.Bus, a.logger),
	}

	a.mu.Lock()
	a.contexts[ws.ID] = wc
	a.mu.Unlock()

	a.logger.Info("workspace opened", "id", ws.ID, "name", ws.Name, "root", root)
	return wc, nil
}

type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

func (a *App) ignoreMatcher(root string) ignoreMatcher {
	if !a.Config.Search.RespectGitignore {
		return git.NoOpMatcher{}
	}
	m, err := git.NewIgnoreMatcher(root, a.fs)
	if err != nil {
		a.logger.Warn("gitignore disabled", "root", root, "error", err)
		return git.NoOpMatcher{}
	}
	return m
}

// Current returns the context of the active workspace.
func (a *App) Current() (*WorkspaceContext, error) {
	ws, ok := a.Store.Active()
	if !ok {
		return nil, workspace.ErrNoActiveWorkspace
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	wc, ok := a.contexts[ws.ID]
	if !ok {
		return nil, &workspace.NotFoundError{ID: ws.ID}
	}
	return wc, nil
}

// Close closes a workspace and drops its components.
func (a *App) Close(id string) error {
	if err := a.Store.Close(id); err != nil {
		return err
	}
	a.mu.Lock()
	delete(a.contexts, id)
	a.mu.Unlock()
	return nil
}

// RefreshGitStatus refreshes the active workspace's git status, logging instead of
// failing when the root is not a repository.
func (a *App) RefreshGitStatus(ctx context.Context) (*git.Status, error) {
	st, err := a.Store.RefreshGitStatus(ctx)
	if err != nil {
		a.logger.Debug("git status unavailable", "error", err)
	}
	return st, err
}
