package git

import (
	"context"
	"errors"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// FileStatus is the status of one changed path, using git's short status codes.
type FileStatus struct {
	Path     string `json:"path"`
	Staging  string `json:"staging"`
	Worktree string `json:"worktree"`
}

// Status summarises a repository worktree.
type Status struct {
	Branch string       `json:"branch"`
	Clean  bool         `json:"clean"`
	Files  []FileStatus `json:"files,omitempty"`
}

// StatusReader reads worktree status with go-git.
type StatusReader struct{}

// NewStatusReader creates a StatusReader.
func NewStatusReader() *StatusReader {
	return &StatusReader{}
}

// Read returns the status of the repository containing root.
// Returns ErrNotRepository when root is not inside a git worktree.
func (r *StatusReader) Read(ctx context.Context, root string) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, &StatusError{Root: root, Cause: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return nil, ErrNotRepository
		}
		return nil, &StatusError{Root: root, Cause: err}
	}

	st, err := wt.Status()
	if err != nil {
		return nil, &StatusError{Root: root, Cause: err}
	}

	status := &Status{Clean: st.IsClean()}

	// Unborn HEAD (no commits yet) leaves Branch empty
	if head, err := repo.Head(); err == nil {
		status.Branch = head.Name().Short()
	}

	for path, fs := range st {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		status.Files = append(status.Files, FileStatus{
			Path:     path,
			Staging:  string(rune(fs.Staging)),
			Worktree: string(rune(fs.Worktree)),
		})
	}
	sort.Slice(status.Files, func(i, j int) bool {
		return status.Files[i].Path < status.Files[j].Path
	})

	return status, nil
}
