package explorer

import "os"

// fileSystem defines the filesystem operations the explorer needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	EvalSymlinks(path string) (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	ListDir(path string) ([]os.FileInfo, error)
}
