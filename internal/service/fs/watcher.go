package fs

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirChange describes a debounced batch of changes inside the watched directory.
type DirChange struct {
	Dir   string
	Names []string // sorted, de-duplicated base names
}

// DirWatcher watches a single directory (non-recursive) and reports debounced changes.
// The watched directory can be swapped while running, following the explorer's current directory.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(DirChange)
	logger   *slog.Logger

	mu  sync.Mutex
	dir string
}

// NewDirWatcher creates a watcher. onChange is called from the Run goroutine.
func NewDirWatcher(debounce time.Duration, onChange func(DirChange), logger *slog.Logger) (*DirWatcher, error) {
	if onChange == nil {
		panic("onChange is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &DirWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Watch switches the watched directory to dir.
func (w *DirWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return &WatchError{Path: dir, Cause: err}
	}
	if w.dir != "" {
		// Removing may fail if the old directory was deleted; nothing to do then.
		_ = w.watcher.Remove(w.dir)
	}
	w.dir = dir
	return nil
}

// Dir returns the currently watched directory.
func (w *DirWatcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Run processes events until ctx is cancelled. The underlying watcher is closed on return,
// so a DirWatcher cannot be restarted.
func (w *DirWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			pending[filepath.Base(event.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("directory watcher error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			if len(pending) == 0 {
				continue
			}
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)
			w.onChange(DirChange{Dir: w.Dir(), Names: names})
		}
	}
}
