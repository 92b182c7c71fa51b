package search

import (
	"sync"
)

// Options are the per-query switches of the search panel.
type Options struct {
	CaseSensitive bool   `json:"case_sensitive" mapstructure:"case_sensitive"`
	WholeWord     bool   `json:"whole_word" mapstructure:"whole_word"`
	Regex         bool   `json:"regex" mapstructure:"regex"`
	Include       string `json:"include,omitempty" mapstructure:"include"`
	Exclude       string `json:"exclude,omitempty" mapstructure:"exclude"`
}

// Query is one search invocation. It is treated as immutable once passed to the engine.
type Query struct {
	Text        string  `json:"text" mapstructure:"text"`
	Replacement string  `json:"replacement,omitempty" mapstructure:"replacement"`
	Options     Options `json:"options" mapstructure:"options"`
}

// Match is one occurrence of the query.
type Match struct {
	File    string `json:"file"` // name within the searched directory
	Path    string `json:"path"` // root-relative, slash separated
	Line    int    `json:"line"`
	Column  int    `json:"column"` // counted in runes
	Text    string `json:"text"`
	Context string `json:"context"`
}

// ResultSet is the ordered output of one search plus a navigation cursor.
// The matches never change after creation; only the cursor moves.
type ResultSet struct {
	query     Query
	dir       string
	matches   []Match
	searched  int
	skipped   int
	truncated bool

	mu     sync.RWMutex
	cursor int
}

// NewResultSet creates a result set with the cursor on the first match.
func NewResultSet(query Query, dir string, matches []Match) *ResultSet {
	return &ResultSet{query: query, dir: dir, matches: matches}
}

// Query returns the query that produced the results.
func (r *ResultSet) Query() Query { return r.query }

// Dir returns the root-relative directory that was searched.
func (r *ResultSet) Dir() string { return r.dir }

// Len returns the number of matches.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.matches)
}

// Empty reports whether there are no matches.
func (r *ResultSet) Empty() bool { return r.Len() == 0 }

// Matches returns a copy of the matches in order.
func (r *ResultSet) Matches() []Match {
	if r == nil {
		return nil
	}
	out := make([]Match, len(r.matches))
	copy(out, r.matches)
	return out
}

// At returns the i-th match.
func (r *ResultSet) At(i int) (Match, bool) {
	if i < 0 || i >= r.Len() {
		return Match{}, false
	}
	return r.matches[i], true
}

// Searched returns how many candidate files were read.
func (r *ResultSet) Searched() int { return r.searched }

// Skipped returns how many candidate files could not be read.
func (r *ResultSet) Skipped() int { return r.skipped }

// Truncated reports whether collection stopped at search.max_results.
func (r *ResultSet) Truncated() bool { return r.truncated }

// Files returns the distinct file names of the matches in first-appearance order.
func (r *ResultSet) Files() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var files []string
	for _, m := range r.matches {
		if !seen[m.File] {
			seen[m.File] = true
			files = append(files, m.File)
		}
	}
	return files
}

// Cursor returns the current index, or -1 when the set is empty.
func (r *ResultSet) Cursor() int {
	if r.Empty() {
		return -1
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cursor
}

// Current returns the match under the cursor.
func (r *ResultSet) Current() (Match, bool) {
	return r.At(r.Cursor())
}

// Move shifts the cursor by delta, clamped to [0, Len()-1], and returns the new index.
// It is a no-op returning -1 on an empty set.
func (r *ResultSet) Move(delta int) int {
	if r.Empty() {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = min(max(r.cursor+delta, 0), len(r.matches)-1)
	return r.cursor
}

// Next moves to the following match.
func (r *ResultSet) Next() int { return r.Move(1) }

// Prev moves to the preceding match.
func (r *ResultSet) Prev() int { return r.Move(-1) }

// FileChange describes the edit made (or previewed) to one file.
type FileChange struct {
	File         string `json:"file"`
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Diff         string `json:"diff,omitempty"`
}

// FileFailure records a file that could not be read or written during replace.
type FileFailure struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

// ReplaceSummary is the outcome of a replace-all.
type ReplaceSummary struct {
	Replaced int           `json:"replaced"`
	Files    int           `json:"files"`
	Changes  []FileChange  `json:"changes,omitempty"`
	Failed   []FileFailure `json:"failed,omitempty"`
	// Stale lists files whose content changed between the search and the replace.
	Stale  []string `json:"stale,omitempty"`
	DryRun bool     `json:"dry_run,omitempty"`
}
