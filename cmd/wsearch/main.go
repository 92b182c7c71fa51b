// Package main provides the wsearch command: a terminal search/replace panel
// over one or more workspaces, plus one-shot search, replace and tree commands.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/command"
	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/events"
	fsvc "github.com/Cyclone1070/wsearch/internal/service/fs"
	"github.com/Cyclone1070/wsearch/internal/service/git"
	pathsvc "github.com/Cyclone1070/wsearch/internal/service/path"
	"github.com/Cyclone1070/wsearch/internal/ui"
	"github.com/Cyclone1070/wsearch/internal/ui/services"
	"github.com/Cyclone1070/wsearch/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

// Dependencies holds the components required to run a command.
type Dependencies struct {
	Config   *config.Config
	App      *app.App
	Registry *command.Registry
	Bus      events.Bus
	Logger   *slog.Logger
}

// buildDependencies opens one workspace per root, the first becoming active.
func buildDependencies(cfg *config.Config, roots []string, bus events.Bus, logger *slog.Logger) (*Dependencies, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	osFS := fsvc.NewOSFileSystem()
	store := workspace.NewStore(git.NewStatusReader(), bus)
	a := app.New(cfg, osFS, store, bus, logger)

	for _, root := range roots {
		canonicalRoot, err := pathsvc.CanonicaliseRoot(root)
		if err != nil {
			return nil, fmt.Errorf("failed to canonicalize workspace root: %w", err)
		}
		if _, err := a.Open(filepath.Base(canonicalRoot), canonicalRoot); err != nil {
			return nil, fmt.Errorf("failed to open workspace %s: %w", canonicalRoot, err)
		}
	}

	registry := command.NewRegistry()
	if err := registry.Register(command.Builtins(a)...); err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:   cfg,
		App:      a,
		Registry: registry,
		Bus:      bus,
		Logger:   logger,
	}, nil
}

func loadConfig(stderr io.Writer) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	return cfg
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the panel log, falling back to discarding logs.
func openLogFile(cfg *config.Config, stderr io.Writer) (io.Writer, func()) {
	logPath, err := config.NewLoader().LogPath(cfg)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(logPath), 0o755)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// runPanel runs the terminal panel and, when enabled, the directory watcher
// until the user quits.
func runPanel(ctx context.Context, cfg *config.Config, roots []string, verbose bool, stderr io.Writer) error {
	logOut, closeLog := openLogFile(cfg, stderr)
	defer closeLog()
	logger := newLogger(logOut, verbose)

	bus := events.NewAsyncBus(cfg.Events.BufferSize, logger)
	defer bus.Close()

	deps, err := buildDependencies(cfg, roots, bus, logger)
	if err != nil {
		return err
	}
	if _, err := deps.App.RefreshGitStatus(ctx); err != nil {
		logger.Debug("starting without git status", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	renderer := services.NewGlamourRenderer()
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}

	var panel *ui.UI
	if cfg.UI.WatchDirectory {
		watcher, err := fsvc.NewDirWatcher(watchDebounce, func(c fsvc.DirChange) {
			bus.Publish(events.DirectoryChanged{Dir: c.Dir, Names: c.Names})
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to start directory watcher: %w", err)
		}
		if wc, err := deps.App.Current(); err == nil {
			if err := watcher.Watch(wc.Explorer.AbsCwd()); err != nil {
				logger.Warn("directory watch failed", "error", err)
			}
		}
		g.Go(func() error { return watcher.Run(ctx) })
		panel = ui.NewUI(ctx, deps.App, deps.Registry, renderer, spinnerFactory, watcher)
	} else {
		panel = ui.NewUI(ctx, deps.App, deps.Registry, renderer, spinnerFactory, nil)
	}

	g.Go(func() error {
		defer cancel()
		return panel.Start()
	})

	return g.Wait()
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
