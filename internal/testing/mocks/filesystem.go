// Package mocks provides in-memory fakes of the filesystem collaborator.
package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo
type MockFileInfo struct {
	NameVal  string
	SizeVal  int64
	ModeVal  os.FileMode
	IsDirVal bool
}

func (f *MockFileInfo) Name() string       { return f.NameVal }
func (f *MockFileInfo) Size() int64        { return f.SizeVal }
func (f *MockFileInfo) Mode() os.FileMode  { return f.ModeVal }
func (f *MockFileInfo) ModTime() time.Time { return time.Time{} }
func (f *MockFileInfo) IsDir() bool        { return f.IsDirVal }
func (f *MockFileInfo) Sys() any           { return nil }

// MockFileSystem is an in-memory filesystem keyed by absolute path.
// Parent directories are created implicitly by CreateFile and CreateDir.
type MockFileSystem struct {
	Mu        sync.RWMutex
	Files     map[string][]byte        // path -> content
	FileInfos map[string]*MockFileInfo // path -> metadata
	// ReadErrors fail ReadFile for a path, WriteErrors fail WriteFileAtomic, Errors fail everything.
	Errors      map[string]error
	ReadErrors  map[string]error
	WriteErrors map[string]error
	OpErrors    map[string]error  // operation -> error to return
	Writes      map[string]int    // path -> successful WriteFileAtomic calls
	Symlinks    map[string]string // link path -> absolute target
	HomeDir     string
	HomeDirErr  error
}

// NewMockFileSystem creates an empty mock filesystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		FileInfos:   make(map[string]*MockFileInfo),
		Errors:      make(map[string]error),
		ReadErrors:  make(map[string]error),
		WriteErrors: make(map[string]error),
		OpErrors:    make(map[string]error),
		Writes:      make(map[string]int),
		Symlinks:    make(map[string]string),
		HomeDir:     "/home/user",
	}
}

// SetError makes every operation on path fail with err.
func (f *MockFileSystem) SetError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[path] = err
}

// SetReadError makes ReadFile on path fail with err.
func (f *MockFileSystem) SetReadError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ReadErrors[path] = err
}

// SetWriteError makes WriteFileAtomic on path fail with err.
func (f *MockFileSystem) SetWriteError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.WriteErrors[path] = err
}

// SetOperationError sets an error to return for a specific operation.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile creates a file with content
func (f *MockFileSystem) CreateFile(path string, content []byte, perm os.FileMode) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureDirs(filepath.Dir(path))
	f.Files[path] = content
	f.FileInfos[path] = &MockFileInfo{
		NameVal: filepath.Base(path),
		SizeVal: int64(len(content)),
		ModeVal: perm,
	}
}

// CreateSymlink creates a link at path pointing to the absolute target.
// Stat and ReadFile follow it; Lstat, ListDir and WriteFileAtomic do not.
func (f *MockFileSystem) CreateSymlink(path, target string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureDirs(filepath.Dir(path))
	f.Symlinks[path] = target
	f.FileInfos[path] = &MockFileInfo{
		NameVal: filepath.Base(path),
		ModeVal: os.ModeSymlink | 0o777,
	}
}

// resolve follows symlinks at path. Callers hold the lock.
func (f *MockFileSystem) resolve(path string) string {
	for i := 0; i < 40; i++ {
		target, ok := f.Symlinks[path]
		if !ok {
			return path
		}
		path = target
	}
	return path
}

// CreateDir creates a directory and its parents
func (f *MockFileSystem) CreateDir(path string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureDirs(path)
}

// Content returns the current content of path.
func (f *MockFileSystem) Content(path string) string {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	return string(f.Files[path])
}

// WriteCount returns how many times path was written.
func (f *MockFileSystem) WriteCount(path string) int {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	return f.Writes[path]
}

func (f *MockFileSystem) ensureDirs(path string) {
	cleaned := filepath.Clean(path)
	for cleaned != "" {
		if _, ok := f.FileInfos[cleaned]; ok {
			return
		}
		f.FileInfos[cleaned] = &MockFileInfo{
			NameVal:  filepath.Base(cleaned),
			ModeVal:  os.ModeDir | 0o755,
			IsDirVal: true,
		}
		parent := filepath.Dir(cleaned)
		if parent == cleaned {
			return
		}
		cleaned = parent
	}
}

func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.Errors[path]; ok {
		return nil, err
	}

	if info, ok := f.FileInfos[f.resolve(path)]; ok {
		copied := *info
		copied.NameVal = filepath.Base(path)
		return &copied, nil
	}

	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (f *MockFileSystem) Lstat(path string) (os.FileInfo, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	if info, ok := f.FileInfos[path]; ok {
		copied := *info
		return &copied, nil
	}
	return nil, &os.PathError{Op: "lstat", Path: path, Err: os.ErrNotExist}
}

func (f *MockFileSystem) EvalSymlinks(path string) (string, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["EvalSymlinks"]; ok {
		return "", err
	}
	resolved := f.resolve(path)
	if _, ok := f.FileInfos[resolved]; !ok {
		return "", &os.PathError{Op: "lstat", Path: resolved, Err: os.ErrNotExist}
	}
	return resolved, nil
}

func (f *MockFileSystem) ReadFile(path string) ([]byte, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["ReadFile"]; ok {
		return nil, err
	}
	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	if err, ok := f.ReadErrors[path]; ok {
		return nil, err
	}

	content, ok := f.Files[f.resolve(path)]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	return append([]byte(nil), content...), nil
}

func (f *MockFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["WriteFileAtomic"]; ok {
		return err
	}
	if err, ok := f.Errors[path]; ok {
		return err
	}
	if err, ok := f.WriteErrors[path]; ok {
		return err
	}

	parent, ok := f.FileInfos[filepath.Dir(path)]
	if !ok || !parent.IsDirVal {
		return &os.PathError{Op: "createtemp", Path: filepath.Dir(path), Err: os.ErrNotExist}
	}

	// Like rename(2), writing over a link replaces the link itself.
	delete(f.Symlinks, path)
	f.Files[path] = append([]byte(nil), content...)
	f.FileInfos[path] = &MockFileInfo{
		NameVal: filepath.Base(path),
		SizeVal: int64(len(content)),
		ModeVal: perm,
	}
	f.Writes[path]++
	return nil
}

func (f *MockFileSystem) UserHomeDir() (string, error) {
	return f.HomeDir, f.HomeDirErr
}

func (f *MockFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["ListDir"]; ok {
		return nil, err
	}
	if err, ok := f.Errors[path]; ok {
		return nil, err
	}

	info, ok := f.FileInfos[path]
	if !ok {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	dirPath := filepath.Clean(path)
	var names []string
	for entryPath := range f.FileInfos {
		if entryPath == dirPath {
			continue
		}
		if filepath.Dir(entryPath) == dirPath {
			names = append(names, entryPath)
		}
	}
	sort.Strings(names)

	entries := make([]os.FileInfo, 0, len(names))
	for _, name := range names {
		copied := *f.FileInfos[name]
		entries = append(entries, &copied)
	}
	return entries, nil
}

// Paths returns every file path under dir, sorted.
func (f *MockFileSystem) Paths(dir string) []string {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	prefix := strings.TrimSuffix(filepath.Clean(dir), string(filepath.Separator)) + string(filepath.Separator)
	var paths []string
	for p := range f.Files {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
