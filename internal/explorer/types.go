package explorer

// EntryType distinguishes files from directories.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name string    `json:"name"`
	Type EntryType `json:"type"`
	Size int64     `json:"size,omitempty"`
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool { return e.Type == EntryFile }

// Node is an element of the explorer tree.
type Node struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"` // root-relative, slash separated
	Type     EntryType `json:"type"`
	Children []*Node   `json:"children,omitempty"`
	// Truncated is set on directories whose children were not expanded because of the depth limit.
	Truncated bool `json:"truncated,omitempty"`
}

// FindResult is a quick-open candidate.
type FindResult struct {
	Name  string  `json:"name"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}
