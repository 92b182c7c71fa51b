package command

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/workspace"
)

// SearchRequest carries a query with its options flattened for key=value input.
// Empty include/exclude fall back to the configured defaults.
type SearchRequest struct {
	Text          string `mapstructure:"text"`
	Replacement   string `mapstructure:"replacement"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
	WholeWord     bool   `mapstructure:"whole_word"`
	Regex         bool   `mapstructure:"regex"`
	Include       string `mapstructure:"include"`
	Exclude       string `mapstructure:"exclude"`
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: text", ErrMissingArgument)
	}
	return nil
}

// Query builds the engine query for r.
func (r SearchRequest) Query(cfg *config.Config) search.Query {
	opts := search.DefaultOptions(cfg)
	opts.CaseSensitive = r.CaseSensitive
	opts.WholeWord = r.WholeWord
	opts.Regex = r.Regex
	if r.Include != "" {
		opts.Include = r.Include
	}
	if r.Exclude != "" {
		opts.Exclude = r.Exclude
	}
	return search.Query{Text: r.Text, Replacement: r.Replacement, Options: opts}
}

type SearchResponse struct {
	Dir       string         `json:"dir"`
	Matches   []search.Match `json:"matches"`
	Cursor    int            `json:"cursor"`
	Files     int            `json:"files"`
	Skipped   int            `json:"skipped,omitempty"`
	Truncated bool           `json:"truncated,omitempty"`
}

func newSearchResponse(rs *search.ResultSet) SearchResponse {
	if rs == nil {
		return SearchResponse{Matches: []search.Match{}, Cursor: -1}
	}
	return SearchResponse{
		Dir:       rs.Dir(),
		Matches:   rs.Matches(),
		Cursor:    rs.Cursor(),
		Files:     len(rs.Files()),
		Skipped:   rs.Skipped(),
		Truncated: rs.Truncated(),
	}
}

// ReplaceRequest is a SearchRequest whose replacement is required.
type ReplaceRequest struct {
	SearchRequest `mapstructure:",squash"`
}

func (r *ReplaceRequest) Validate() error {
	if err := r.SearchRequest.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Replacement) == "" {
		return fmt.Errorf("%w: replacement", ErrMissingArgument)
	}
	return nil
}

type FailureResponse struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type ReplaceResponse struct {
	Replaced int                 `json:"replaced"`
	Files    int                 `json:"files"`
	Changes  []search.FileChange `json:"changes,omitempty"`
	Failed   []FailureResponse   `json:"failed,omitempty"`
	Stale    []string            `json:"stale,omitempty"`
	DryRun   bool                `json:"dry_run,omitempty"`
}

func newReplaceResponse(s *search.ReplaceSummary) ReplaceResponse {
	resp := ReplaceResponse{
		Replaced: s.Replaced,
		Files:    s.Files,
		Changes:  s.Changes,
		Stale:    s.Stale,
		DryRun:   s.DryRun,
	}
	for _, f := range s.Failed {
		resp.Failed = append(resp.Failed, FailureResponse{File: f.File, Error: f.Err.Error()})
	}
	return resp
}

type ReplaceModeRequest struct {
	On bool `mapstructure:"on"`
}

type ReplaceModeResponse struct {
	On bool `json:"on"`
}

type EmptyRequest struct{}

type CursorResponse struct {
	Cursor int           `json:"cursor"`
	Match  *search.Match `json:"match,omitempty"`
}

type OpenResponse struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type ListDirectoryResponse struct {
	Dir     string           `json:"dir"`
	Entries []explorer.Entry `json:"entries"`
}

type ChangeDirectoryRequest struct {
	Name string `mapstructure:"name"`
}

func (r *ChangeDirectoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingArgument)
	}
	return nil
}

type ChangeDirectoryResponse struct {
	Dir string `json:"dir"`
}

type TreeRequest struct {
	Depth int `mapstructure:"depth"`
}

func (r *TreeRequest) Validate() error {
	if r.Depth < 0 {
		return fmt.Errorf("depth must be >= 0, got %d", r.Depth)
	}
	return nil
}

type FindFileRequest struct {
	Query string `mapstructure:"query"`
	Limit int    `mapstructure:"limit"`
}

func (r *FindFileRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: query", ErrMissingArgument)
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", r.Limit)
	}
	return nil
}

type FindFileResponse struct {
	Results []explorer.FindResult `json:"results"`
}

type SwitchWorkspaceRequest struct {
	ID string `mapstructure:"id"`
}

func (r *SwitchWorkspaceRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id", ErrMissingArgument)
	}
	return nil
}

type WorkspacesResponse struct {
	Active     string                `json:"active"`
	Workspaces []workspace.Workspace `json:"workspaces"`
}
