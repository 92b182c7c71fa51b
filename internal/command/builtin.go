package command

import (
	"context"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/service/git"
)

// Builtins returns the built-in commands. Each command acts on the active workspace of a.
func Builtins(a *app.App) []Command {
	if a == nil {
		panic("app is required")
	}
	b := &builtins{app: a}

	queryParams := map[string]*Schema{
		"text":           {Type: TypeString, Description: "Search text or pattern"},
		"case_sensitive": {Type: TypeBoolean, Description: "Match case"},
		"whole_word":     {Type: TypeBoolean, Description: "Match whole words only (literal mode)"},
		"regex":          {Type: TypeBoolean, Description: "Treat text as a regular expression"},
		"include":        {Type: TypeString, Description: "Comma separated file globs to include"},
		"exclude":        {Type: TypeString, Description: "Comma separated file globs to exclude"},
	}
	replaceParams := map[string]*Schema{
		"replacement": {Type: TypeString, Description: "Replacement text; $1 and ${name} expand in regex mode"},
	}
	for k, v := range queryParams {
		replaceParams[k] = v
	}

	return []Command{
		NewAdapter("search", "Search the current directory",
			&Schema{Type: TypeObject, Properties: queryParams, Required: []string{"text"}},
			b.search),
		NewAdapter("replace_all", "Replace every match in the current directory (replace mode only)",
			&Schema{Type: TypeObject, Properties: replaceParams, Required: []string{"text", "replacement"}},
			b.replaceAll),
		NewAdapter("preview_replace", "Show the diff replace_all would produce",
			&Schema{Type: TypeObject, Properties: replaceParams, Required: []string{"text", "replacement"}},
			b.previewReplace),
		NewAdapter("set_replace_mode", "Turn replace mode on or off",
			&Schema{Type: TypeObject, Properties: map[string]*Schema{
				"on": {Type: TypeBoolean, Description: "Replace mode state"},
			}},
			b.setReplaceMode),
		NewAdapter("next_match", "Move to the next match", nil, b.nextMatch),
		NewAdapter("prev_match", "Move to the previous match", nil, b.prevMatch),
		NewAdapter("open_match", "Open the current match in the editor", nil, b.openMatch),
		NewAdapter("list_directory", "List the current directory", nil, b.listDirectory),
		NewAdapter("change_directory", "Change the current directory",
			&Schema{Type: TypeObject, Properties: map[string]*Schema{
				"name": {Type: TypeString, Description: "Directory name relative to the current directory, or .."},
			}, Required: []string{"name"}},
			b.changeDirectory),
		NewAdapter("tree", "Show the directory tree under the current directory",
			&Schema{Type: TypeObject, Properties: map[string]*Schema{
				"depth": {Type: TypeInteger, Description: "Levels to expand (0 uses the configured depth)"},
			}},
			b.tree),
		NewAdapter("find_file", "Fuzzy find a file in the current directory",
			&Schema{Type: TypeObject, Properties: map[string]*Schema{
				"query": {Type: TypeString, Description: "Part of the file name"},
				"limit": {Type: TypeInteger, Description: "Maximum results"},
			}, Required: []string{"query"}},
			b.findFile),
		NewAdapter("switch_workspace", "Make a workspace active",
			&Schema{Type: TypeObject, Properties: map[string]*Schema{
				"id": {Type: TypeString, Description: "Workspace id"},
			}, Required: []string{"id"}},
			b.switchWorkspace),
		NewAdapter("list_workspaces", "List open workspaces", nil, b.listWorkspaces),
		NewAdapter("git_status", "Refresh git status of the active workspace", nil, b.gitStatus),
	}
}

type builtins struct {
	app *app.App
}

func (b *builtins) search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return SearchResponse{}, err
	}
	rs, err := wc.Session.Search(ctx, req.Query(b.app.Config))
	if err != nil {
		return SearchResponse{}, err
	}
	return newSearchResponse(rs), nil
}

// ensureResults searches first when there are no results for this query yet.
func ensureResults(ctx context.Context, s *search.Session, q search.Query) error {
	if rs := s.Results(); rs != nil && rs.Query().Text == q.Text && rs.Query().Options == q.Options {
		return nil
	}
	_, err := s.Search(ctx, q)
	return err
}

func (b *builtins) replaceAll(ctx context.Context, req ReplaceRequest) (ReplaceResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return ReplaceResponse{}, err
	}
	if !wc.Session.ReplaceMode() {
		return ReplaceResponse{}, search.ErrNotReplaceMode
	}
	q := req.Query(b.app.Config)
	if err := ensureResults(ctx, wc.Session, q); err != nil {
		return ReplaceResponse{}, err
	}
	summary, err := wc.Session.ReplaceAll(ctx, q)
	if err != nil {
		return ReplaceResponse{}, err
	}
	return newReplaceResponse(summary), nil
}

func (b *builtins) previewReplace(ctx context.Context, req ReplaceRequest) (ReplaceResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return ReplaceResponse{}, err
	}
	q := req.Query(b.app.Config)
	if err := ensureResults(ctx, wc.Session, q); err != nil {
		return ReplaceResponse{}, err
	}
	summary, err := wc.Session.PreviewReplace(ctx, q)
	if err != nil {
		return ReplaceResponse{}, err
	}
	return newReplaceResponse(summary), nil
}

func (b *builtins) setReplaceMode(_ context.Context, req ReplaceModeRequest) (ReplaceModeResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return ReplaceModeResponse{}, err
	}
	wc.Session.SetReplaceMode(req.On)
	return ReplaceModeResponse{On: req.On}, nil
}

func (b *builtins) move(delta int) (CursorResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return CursorResponse{}, err
	}
	idx := wc.Session.Move(delta)
	resp := CursorResponse{Cursor: idx}
	if m, ok := wc.Session.Results().At(idx); ok {
		resp.Match = &m
	}
	return resp, nil
}

func (b *builtins) nextMatch(context.Context, EmptyRequest) (CursorResponse, error) {
	return b.move(1)
}

func (b *builtins) prevMatch(context.Context, EmptyRequest) (CursorResponse, error) {
	return b.move(-1)
}

func (b *builtins) openMatch(ctx context.Context, _ EmptyRequest) (OpenResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return OpenResponse{}, err
	}
	m, err := wc.Session.Open(ctx)
	if err != nil {
		return OpenResponse{}, err
	}
	return OpenResponse{Path: m.Path, Line: m.Line, Column: m.Column}, nil
}

func (b *builtins) listDirectory(ctx context.Context, _ EmptyRequest) (ListDirectoryResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return ListDirectoryResponse{}, err
	}
	entries, err := wc.Explorer.ListCurrentDirectory(ctx)
	if err != nil {
		return ListDirectoryResponse{}, err
	}
	return ListDirectoryResponse{Dir: wc.Explorer.Cwd(), Entries: entries}, nil
}

func (b *builtins) changeDirectory(_ context.Context, req ChangeDirectoryRequest) (ChangeDirectoryResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return ChangeDirectoryResponse{}, err
	}
	if err := wc.Explorer.ChangeDirectory(req.Name); err != nil {
		return ChangeDirectoryResponse{}, err
	}
	return ChangeDirectoryResponse{Dir: wc.Explorer.Cwd()}, nil
}

func (b *builtins) tree(ctx context.Context, req TreeRequest) (*explorer.Node, error) {
	wc, err := b.app.Current()
	if err != nil {
		return nil, err
	}
	return wc.Explorer.Tree(ctx, req.Depth)
}

func (b *builtins) findFile(ctx context.Context, req FindFileRequest) (FindFileResponse, error) {
	wc, err := b.app.Current()
	if err != nil {
		return FindFileResponse{}, err
	}
	results, err := wc.Explorer.Find(ctx, req.Query, req.Limit)
	if err != nil {
		return FindFileResponse{}, err
	}
	if results == nil {
		results = []explorer.FindResult{}
	}
	return FindFileResponse{Results: results}, nil
}

func (b *builtins) switchWorkspace(_ context.Context, req SwitchWorkspaceRequest) (WorkspacesResponse, error) {
	if err := b.app.Store.Switch(req.ID); err != nil {
		return WorkspacesResponse{}, err
	}
	return b.workspaces(), nil
}

func (b *builtins) listWorkspaces(context.Context, EmptyRequest) (WorkspacesResponse, error) {
	return b.workspaces(), nil
}

func (b *builtins) workspaces() WorkspacesResponse {
	resp := WorkspacesResponse{Workspaces: b.app.Store.List()}
	if ws, ok := b.app.Store.Active(); ok {
		resp.Active = ws.ID
	}
	return resp
}

func (b *builtins) gitStatus(ctx context.Context, _ EmptyRequest) (*git.Status, error) {
	return b.app.RefreshGitStatus(ctx)
}
