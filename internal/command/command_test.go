package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Cyclone1070/wsearch/internal/app"
	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/Cyclone1070/wsearch/internal/service/git"
	"github.com/Cyclone1070/wsearch/internal/testing/mocks"
	"github.com/Cyclone1070/wsearch/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Text  string `mapstructure:"text"`
	Count int    `mapstructure:"count"`
	Loud  bool   `mapstructure:"loud"`
}

func (r *echoRequest) Validate() error {
	if r.Text == "" {
		return ErrMissingArgument
	}
	return nil
}

type echoResponse struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
	Loud  bool   `json:"loud"`
}

func newEcho() Command {
	return NewAdapter("echo", "Echo the arguments", nil,
		func(_ context.Context, req echoRequest) (echoResponse, error) {
			if req.Text == "fail" {
				return echoResponse{}, errors.New("boom")
			}
			return echoResponse(req), nil
		})
}

func TestAdapter(t *testing.T) {
	echo := newEcho()

	t.Run("Decodes Weakly Typed Arguments", func(t *testing.T) {
		out, err := echo.Execute(context.Background(), map[string]any{"text": "hi", "count": "3", "loud": "true"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"hi","count":3,"loud":true}`, out)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		_, err := echo.Execute(context.Background(), map[string]any{"count": 1})
		var argErr *ArgumentsError
		require.ErrorAs(t, err, &argErr)
		assert.ErrorIs(t, err, ErrMissingArgument)
		assert.True(t, argErr.InvalidInput())
	})

	t.Run("Unknown Argument", func(t *testing.T) {
		_, err := echo.Execute(context.Background(), map[string]any{"text": "hi", "colour": "red"})
		var argErr *ArgumentsError
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("Executor Error", func(t *testing.T) {
		_, err := echo.Execute(context.Background(), map[string]any{"text": "fail"})
		assert.EqualError(t, err, "boom")
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newEcho()))
	assert.ErrorIs(t, r.Register(newEcho()), ErrDuplicateCommand)

	out, err := r.Execute(context.Background(), "echo", map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Contains(t, out, `"text":"x"`)

	var unknown *UnknownCommandError
	_, err = r.Execute(context.Background(), "nope", nil)
	assert.ErrorAs(t, err, &unknown)
}

func TestDeclarationUsage(t *testing.T) {
	d := Declaration{
		Name: "find_file",
		Parameters: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"query": {Type: TypeString},
				"limit": {Type: TypeInteger},
			},
			Required: []string{"query"},
		},
	}
	assert.Equal(t, "find_file [limit=<integer>] query=<string>", d.Usage())
	assert.Equal(t, "next_match", Declaration{Name: "next_match"}.Usage())
}

type noGit struct{}

func (noGit) Read(context.Context, string) (*git.Status, error) {
	return &git.Status{Branch: "main", Clean: true}, nil
}

func newBuiltins(t *testing.T) (*Registry, *app.App, *mocks.MockFileSystem) {
	t.Helper()
	fs := mocks.NewMockFileSystem()
	fs.CreateFile("/ws/a.ts", []byte("foo foo\nbar"), 0o644)
	fs.CreateFile("/ws/b.md", []byte("foo"), 0o644)
	fs.CreateFile("/ws/src/c.ts", []byte("foo"), 0o644)

	a := app.New(config.DefaultConfig(), fs, workspace.NewStore(noGit{}, nil), nil, nil)
	_, err := a.Open("ws", "/ws")
	require.NoError(t, err)

	r := NewRegistry()
	require.NoError(t, r.Register(Builtins(a)...))
	return r, a, fs
}

func run[T any](t *testing.T, r *Registry, name string, args map[string]any) T {
	t.Helper()
	out, err := r.Execute(context.Background(), name, args)
	require.NoError(t, err)
	var resp T
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestBuiltins_SearchAndNavigate(t *testing.T) {
	r, _, _ := newBuiltins(t)

	resp := run[SearchResponse](t, r, "search", map[string]any{"text": "foo"})
	assert.Len(t, resp.Matches, 3)
	assert.Equal(t, 2, resp.Files)
	assert.Equal(t, 0, resp.Cursor)

	cur := run[CursorResponse](t, r, "next_match", nil)
	assert.Equal(t, 1, cur.Cursor)
	require.NotNil(t, cur.Match)
	assert.Equal(t, 5, cur.Match.Column)

	cur = run[CursorResponse](t, r, "prev_match", nil)
	assert.Equal(t, 0, cur.Cursor)
	cur = run[CursorResponse](t, r, "prev_match", nil)
	assert.Equal(t, 0, cur.Cursor)

	open := run[OpenResponse](t, r, "open_match", nil)
	assert.Equal(t, OpenResponse{Path: "a.ts", Line: 1, Column: 1}, open)

	_, err := r.Execute(context.Background(), "search", map[string]any{"text": "  "})
	var argErr *ArgumentsError
	assert.ErrorAs(t, err, &argErr)
}

func TestBuiltins_Replace(t *testing.T) {
	r, _, fs := newBuiltins(t)
	args := map[string]any{"text": "foo", "replacement": "qux"}

	_, err := r.Execute(context.Background(), "replace_all", args)
	assert.ErrorIs(t, err, search.ErrNotReplaceMode)

	preview := run[ReplaceResponse](t, r, "preview_replace", args)
	assert.True(t, preview.DryRun)
	assert.Equal(t, 3, preview.Replaced)
	assert.Equal(t, "foo foo\nbar", fs.Content("/ws/a.ts"))

	run[ReplaceModeResponse](t, r, "set_replace_mode", map[string]any{"on": "true"})
	resp := run[ReplaceResponse](t, r, "replace_all", args)
	assert.Equal(t, 3, resp.Replaced)
	assert.Equal(t, 2, resp.Files)
	assert.Equal(t, "qux qux\nbar", fs.Content("/ws/a.ts"))
	assert.Equal(t, "qux", fs.Content("/ws/b.md"))
	assert.Equal(t, "foo", fs.Content("/ws/src/c.ts"))

	_, err = r.Execute(context.Background(), "replace_all", map[string]any{"text": "foo"})
	var argErr *ArgumentsError
	assert.ErrorAs(t, err, &argErr)
}

func TestBuiltins_Explorer(t *testing.T) {
	r, _, _ := newBuiltins(t)

	list := run[ListDirectoryResponse](t, r, "list_directory", nil)
	require.Len(t, list.Entries, 3)
	assert.Equal(t, "src", list.Entries[0].Name)

	cd := run[ChangeDirectoryResponse](t, r, "change_directory", map[string]any{"name": "src"})
	assert.Equal(t, "src", cd.Dir)

	found := run[FindFileResponse](t, r, "find_file", map[string]any{"query": "c", "limit": "5"})
	require.Len(t, found.Results, 1)
	assert.Equal(t, "src/c.ts", found.Results[0].Path)

	cd = run[ChangeDirectoryResponse](t, r, "change_directory", map[string]any{"name": ".."})
	assert.Equal(t, "", cd.Dir)

	_, err := r.Execute(context.Background(), "tree", map[string]any{"depth": 1})
	require.NoError(t, err)
}

func TestBuiltins_Workspaces(t *testing.T) {
	r, a, _ := newBuiltins(t)
	second, err := a.Open("other", "/ws/src")
	require.NoError(t, err)

	list := run[WorkspacesResponse](t, r, "list_workspaces", nil)
	assert.Len(t, list.Workspaces, 2)
	assert.NotEqual(t, second.ID, list.Active)

	switched := run[WorkspacesResponse](t, r, "switch_workspace", map[string]any{"id": second.ID})
	assert.Equal(t, second.ID, switched.Active)

	resp := run[SearchResponse](t, r, "search", map[string]any{"text": "foo"})
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "c.ts", resp.Matches[0].File)

	status := run[git.Status](t, r, "git_status", nil)
	assert.Equal(t, "main", status.Branch)

	var notFound *workspace.NotFoundError
	_, err = r.Execute(context.Background(), "switch_workspace", map[string]any{"id": "ws-9"})
	assert.ErrorAs(t, err, &notFound)
}
