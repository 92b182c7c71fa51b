package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDirWatcher_ReportsDebouncedChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()

	var mu sync.Mutex
	var changes []DirChange
	w, err := NewDirWatcher(50*time.Millisecond, func(c DirChange) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("y"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	var names []string
	for _, c := range changes {
		assert.Equal(t, dir, c.Dir)
		names = append(names, c.Names...)
	}
	assert.Contains(t, names, "a.go")
	assert.Contains(t, names, "b.go")
}

func TestDirWatcher_WatchMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewDirWatcher(time.Millisecond, func(DirChange) {}, nil)
	require.NoError(t, err)

	err = w.Watch(filepath.Join(t.TempDir(), "missing"))
	var watchErr *WatchError
	assert.ErrorAs(t, err, &watchErr)
	assert.Equal(t, "", w.Dir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
}
