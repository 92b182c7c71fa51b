package explorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/service/fs"
	"github.com/Cyclone1070/wsearch/internal/service/path"
)

// Explorer is the file explorer's view of a workspace: a root plus a current directory.
// Names passed to ReadFile/WriteFile are resolved against the current directory and
// may not leave the root.
type Explorer struct {
	fs       fileSystem
	resolver *path.Resolver
	config   *config.Config

	mu  sync.RWMutex
	cwd string // root-relative, "" is the root
}

// New creates an Explorer rooted at root, which must already be canonical.
func New(fs fileSystem, root string, cfg *config.Config) *Explorer {
	if fs == nil {
		panic("fs is required")
	}
	if root == "" {
		panic("root is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &Explorer{
		fs:       fs,
		resolver: path.NewResolver(root),
		config:   cfg,
	}
}

// Root returns the absolute workspace root.
func (e *Explorer) Root() string {
	return e.resolver.Root()
}

// Cwd returns the current directory relative to the root ("" for the root).
func (e *Explorer) Cwd() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cwd
}

// AbsCwd returns the absolute current directory.
func (e *Explorer) AbsCwd() string {
	abs, _ := e.resolver.Abs(filepath.FromSlash(e.Cwd()))
	return abs
}

// Path returns the root-relative path of name in the current directory.
func (e *Explorer) Path(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrNameRequired
	}
	return e.resolver.Join(e.Cwd(), name)
}

// ChangeDirectory moves into name, relative to the current directory. ".." moves up.
func (e *Explorer) ChangeDirectory(name string) error {
	rel, err := e.Path(name)
	if err != nil {
		return err
	}
	abs, err := e.resolver.Abs(filepath.FromSlash(rel))
	if err != nil {
		return err
	}

	info, err := e.fs.Stat(abs)
	if err != nil {
		return &ListError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return ErrNotADirectory
	}

	e.mu.Lock()
	e.cwd = rel
	e.mu.Unlock()
	return nil
}

// Up moves to the parent directory; it is a no-op at the root.
func (e *Explorer) Up() error {
	if e.Cwd() == "" {
		return nil
	}
	return e.ChangeDirectory("..")
}

// ListCurrentDirectory lists the current directory, non-recursively.
// Directories come first, then files, each group in name order.
func (e *Explorer) ListCurrentDirectory(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.list(e.AbsCwd())
}

func (e *Explorer) list(abs string) ([]Entry, error) {
	infos, err := e.fs.ListDir(abs)
	if err != nil {
		return nil, &ListError{Path: abs, Cause: err}
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entry := Entry{Name: info.Name(), Type: EntryFile, Size: info.Size()}
		if info.IsDir() {
			entry.Type = EntryDirectory
			entry.Size = 0
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)
	return entries, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type == EntryDirectory
		}
		return entries[i].Name < entries[j].Name
	})
}

// ReadFile reads name from the current directory as text.
// Binary files and files above search.max_file_size are refused.
func (e *Explorer) ReadFile(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := e.abs(name)
	if err != nil {
		return "", err
	}

	info, err := e.fs.Stat(abs)
	if err != nil {
		return "", &ReadError{Path: abs, Cause: err}
	}
	if info.IsDir() {
		return "", ErrIsDirectory
	}
	if limit := e.config.Search.MaxFileSize; info.Size() > limit {
		return "", &FileTooLargeError{Path: abs, Size: info.Size(), Limit: limit}
	}

	data, err := e.fs.ReadFile(abs)
	if err != nil {
		return "", &ReadError{Path: abs, Cause: err}
	}
	if fs.IsBinaryContent(data) {
		return "", ErrBinaryFile
	}
	return string(data), nil
}

// WriteFile atomically replaces name in the current directory, keeping its permissions.
// New files are created with mode 0644. A symlink is followed and its target written,
// provided the target lies inside the root.
func (e *Explorer) WriteFile(ctx context.Context, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := e.abs(name)
	if err != nil {
		return err
	}
	abs, err = e.linkTarget(abs)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	info, err := e.fs.Stat(abs)
	switch {
	case err == nil:
		if info.IsDir() {
			return ErrIsDirectory
		}
		perm = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return &WriteError{Path: abs, Cause: err}
	}

	if err := e.fs.WriteFileAtomic(abs, []byte(content), perm); err != nil {
		return &WriteError{Path: abs, Cause: err}
	}
	return nil
}

// linkTarget returns the in-root file abs points to, or abs itself when it is not a symlink.
func (e *Explorer) linkTarget(abs string) (string, error) {
	info, err := e.fs.Lstat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return abs, nil
		}
		return "", &WriteError{Path: abs, Cause: err}
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return abs, nil
	}

	resolved, err := e.fs.EvalSymlinks(abs)
	if err != nil {
		return "", &WriteError{Path: abs, Cause: err}
	}
	target, err := e.resolver.Abs(resolved)
	if err != nil {
		if errors.Is(err, path.ErrOutsideRoot) {
			return "", &WriteError{Path: abs, Cause: ErrSymlinkOutsideRoot}
		}
		return "", &WriteError{Path: abs, Cause: err}
	}
	return target, nil
}

func (e *Explorer) abs(name string) (string, error) {
	rel, err := e.Path(name)
	if err != nil {
		return "", err
	}
	return e.resolver.Abs(filepath.FromSlash(rel))
}
