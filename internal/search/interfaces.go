package search

import (
	"context"

	"github.com/Cyclone1070/wsearch/internal/explorer"
)

// directory is the filesystem collaborator: the explorer's current directory.
type directory interface {
	Cwd() string
	ListCurrentDirectory(ctx context.Context) ([]explorer.Entry, error)
	ReadFile(ctx context.Context, name string) (string, error)
	WriteFile(ctx context.Context, name, content string) error
}

// checksumManager remembers the content hash each file had when it was searched.
type checksumManager interface {
	Compute(data []byte) string
	Get(path string) (checksum string, ok bool)
	Update(path string, checksum string)
	Clear()
}

// ignoreMatcher filters root-relative paths, typically from .gitignore.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// editorState is the workspace store seen from the search panel.
type editorState interface {
	SetCurrentFile(path string) error
	SetCursor(line, column int) error
}

// searcher is the engine as seen by the session.
type searcher interface {
	Search(ctx context.Context, q Query) (*ResultSet, error)
	ReplaceAll(ctx context.Context, q Query, rs *ResultSet) (*ReplaceSummary, error)
	PreviewReplace(ctx context.Context, q Query, rs *ResultSet) (*ReplaceSummary, error)
}
