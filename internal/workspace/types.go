package workspace

import (
	"slices"

	"github.com/Cyclone1070/wsearch/internal/service/git"
)

// Position is a 1-based line and column inside the current file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Workspace is one open project: its root, open files, current file and git status.
type Workspace struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Root        string      `json:"root"`
	OpenFiles   []string    `json:"open_files,omitempty"`
	CurrentFile string      `json:"current_file,omitempty"`
	Cursor      Position    `json:"cursor"`
	Git         *git.Status `json:"git,omitempty"`
}

func (w *Workspace) clone() Workspace {
	out := *w
	out.OpenFiles = slices.Clone(w.OpenFiles)
	if w.Git != nil {
		st := *w.Git
		st.Files = slices.Clone(w.Git.Files)
		out.Git = &st
	}
	return out
}
