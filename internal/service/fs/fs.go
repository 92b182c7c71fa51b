package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem is the real filesystem behind the explorer and the config loader.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following a final symlink.
func (fs *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// EvalSymlinks returns path with every symlink resolved.
func (fs *OSFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// ReadFile reads the whole file.
func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic replaces path with content by writing a sibling temp file and
// renaming it over the target, so readers never see a partially rewritten file.
func (fs *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(filepath.Dir(path), content)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}

	if err := os.Chmod(path, perm); err != nil {
		return &ChmodError{Path: path, Mode: perm, Cause: err}
	}
	return nil
}

// writeTemp writes content to a synced temp file in dir and returns its path.
// The temp file is removed on failure.
func writeTemp(dir string, content []byte) (tmpPath string, err error) {
	f, err := os.CreateTemp(dir, ".wsearch-*")
	if err != nil {
		return "", &TempFileError{Dir: dir, Cause: err}
	}
	tmpPath = f.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(content); err != nil {
		_ = f.Close()
		return "", &TempWriteError{Path: tmpPath, Cause: err}
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return "", &TempSyncError{Path: tmpPath, Cause: err}
	}
	if err = f.Close(); err != nil {
		return "", &TempCloseError{Path: tmpPath, Cause: err}
	}
	return tmpPath, nil
}

// UserHomeDir returns the current user's home directory.
func (fs *OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// ListDir returns the entries of a directory in name order. Entries removed
// while listing are left out.
func (fs *OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		switch {
		case errors.Is(err, iofs.ErrNotExist):
			continue
		case err != nil:
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
