package explorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/wsearch/internal/config"
	fsvc "github.com/Cyclone1070/wsearch/internal/service/fs"
	"github.com/Cyclone1070/wsearch/internal/service/path"
	"github.com/Cyclone1070/wsearch/internal/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/workspace"

func newExplorer(t *testing.T) (*Explorer, *mocks.MockFileSystem) {
	t.Helper()
	fs := mocks.NewMockFileSystem()
	fs.CreateDir(root)
	return New(fs, root, config.DefaultConfig()), fs
}

func TestListCurrentDirectory(t *testing.T) {
	e, fs := newExplorer(t)
	fs.CreateFile("/workspace/b.go", []byte("package b"), 0o644)
	fs.CreateFile("/workspace/a.go", []byte("package a"), 0o644)
	fs.CreateDir("/workspace/src")
	fs.CreateDir("/workspace/docs")
	fs.CreateFile("/workspace/src/nested.go", nil, 0o644)

	entries, err := e.ListCurrentDirectory(context.Background())
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"docs", "src", "a.go", "b.go"}, names)
	assert.Equal(t, EntryDirectory, entries[0].Type)
	assert.Equal(t, int64(9), entries[2].Size)
}

func TestListCurrentDirectory_Error(t *testing.T) {
	e, fs := newExplorer(t)
	fs.SetOperationError("ListDir", os.ErrPermission)

	_, err := e.ListCurrentDirectory(context.Background())

	var listErr *ListError
	require.ErrorAs(t, err, &listErr)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestChangeDirectory(t *testing.T) {
	t.Run("Into Subdirectory And Back", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/src/pkg/x.go", nil, 0o644)

		require.NoError(t, e.ChangeDirectory("src"))
		require.NoError(t, e.ChangeDirectory("pkg"))
		assert.Equal(t, "src/pkg", e.Cwd())
		assert.Equal(t, "/workspace/src/pkg", e.AbsCwd())

		entries, err := e.ListCurrentDirectory(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "x.go", entries[0].Name)

		require.NoError(t, e.Up())
		assert.Equal(t, "src", e.Cwd())
		require.NoError(t, e.Up())
		assert.Equal(t, "", e.Cwd())
	})

	t.Run("Up At Root Is No-op", func(t *testing.T) {
		e, _ := newExplorer(t)
		require.NoError(t, e.Up())
		assert.Equal(t, "", e.Cwd())
	})

	t.Run("Cannot Leave Root", func(t *testing.T) {
		e, _ := newExplorer(t)
		err := e.ChangeDirectory("../etc")
		assert.ErrorIs(t, err, path.ErrOutsideRoot)
		assert.Equal(t, "", e.Cwd())
	})

	t.Run("File Is Not A Directory", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/a.go", nil, 0o644)
		assert.ErrorIs(t, e.ChangeDirectory("a.go"), ErrNotADirectory)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		e, _ := newExplorer(t)
		var listErr *ListError
		assert.ErrorAs(t, e.ChangeDirectory("nope"), &listErr)
	})
}

func TestReadFile(t *testing.T) {
	t.Run("Reads Relative To Cwd", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/src/a.txt", []byte("hello"), 0o644)
		require.NoError(t, e.ChangeDirectory("src"))

		content, err := e.ReadFile(context.Background(), "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", content)
	})

	t.Run("Binary", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/img.png", []byte{0x89, 'P', 0x00, 'G'}, 0o644)

		_, err := e.ReadFile(context.Background(), "img.png")
		assert.ErrorIs(t, err, ErrBinaryFile)
	})

	t.Run("Too Large", func(t *testing.T) {
		e, fs := newExplorer(t)
		e.config.Search.MaxFileSize = 4
		fs.CreateFile("/workspace/big.txt", []byte("12345"), 0o644)

		_, err := e.ReadFile(context.Background(), "big.txt")
		var tooLarge *FileTooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, int64(5), tooLarge.Size)
	})

	t.Run("Directory", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateDir("/workspace/src")
		_, err := e.ReadFile(context.Background(), "src")
		assert.ErrorIs(t, err, ErrIsDirectory)
	})

	t.Run("Read Failure", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/locked.txt", []byte("x"), 0o644)
		fs.SetReadError("/workspace/locked.txt", os.ErrPermission)

		_, err := e.ReadFile(context.Background(), "locked.txt")
		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.True(t, readErr.IOError())
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		e, _ := newExplorer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.ReadFile(ctx, "a.txt")
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("Keeps Permissions", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/run.sh", []byte("echo"), 0o755)

		require.NoError(t, e.WriteFile(context.Background(), "run.sh", "echo hi"))
		assert.Equal(t, "echo hi", fs.Content("/workspace/run.sh"))

		info, err := fs.Stat("/workspace/run.sh")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("New File Gets Default Mode", func(t *testing.T) {
		e, fs := newExplorer(t)
		require.NoError(t, e.WriteFile(context.Background(), "new.txt", "x"))

		info, err := fs.Stat("/workspace/new.txt")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("Write Failure", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/a.txt", []byte("x"), 0o644)
		fs.SetWriteError("/workspace/a.txt", os.ErrPermission)

		var writeErr *WriteError
		assert.ErrorAs(t, e.WriteFile(context.Background(), "a.txt", "y"), &writeErr)
		assert.Equal(t, "x", fs.Content("/workspace/a.txt"))
	})

	t.Run("Symlink Inside Root Writes Target", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/workspace/shared/real.go", []byte("foo"), 0o600)
		fs.CreateSymlink("/workspace/link.go", "/workspace/shared/real.go")

		require.NoError(t, e.WriteFile(context.Background(), "link.go", "bar"))
		assert.Equal(t, "bar", fs.Content("/workspace/shared/real.go"))

		info, err := fs.Lstat("/workspace/link.go")
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink)
		target, err := fs.Stat("/workspace/shared/real.go")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), target.Mode().Perm())
	})

	t.Run("Symlink Outside Root Refused", func(t *testing.T) {
		e, fs := newExplorer(t)
		fs.CreateFile("/elsewhere/real.go", []byte("foo"), 0o644)
		fs.CreateSymlink("/workspace/link.go", "/elsewhere/real.go")

		err := e.WriteFile(context.Background(), "link.go", "bar")
		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.ErrorIs(t, err, ErrSymlinkOutsideRoot)
		assert.Equal(t, "foo", fs.Content("/elsewhere/real.go"))
		assert.Equal(t, 0, fs.WriteCount("/workspace/link.go"))
	})
}

func TestWriteFile_RealSymlinks(t *testing.T) {
	workspace, err := path.CanonicaliseRoot(t.TempDir())
	require.NoError(t, err)
	outside, err := path.CanonicaliseRoot(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "shared"), 0o755))
	inside := filepath.Join(workspace, "shared", "real.go")
	require.NoError(t, os.WriteFile(inside, []byte("foo foo\n"), 0o644))
	require.NoError(t, os.Symlink(inside, filepath.Join(workspace, "link.go")))

	foreign := filepath.Join(outside, "foreign.go")
	require.NoError(t, os.WriteFile(foreign, []byte("foo\n"), 0o644))
	require.NoError(t, os.Symlink(foreign, filepath.Join(workspace, "escape.go")))

	e := New(fsvc.NewOSFileSystem(), workspace, config.DefaultConfig())

	tests := []struct {
		name     string
		link     string
		target   string
		wantErr  error
		wantBody string
	}{
		{name: "inside root", link: "link.go", target: inside, wantBody: "bar bar\n"},
		{name: "outside root", link: "escape.go", target: foreign, wantErr: ErrSymlinkOutsideRoot, wantBody: "foo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.WriteFile(context.Background(), tt.link, "bar bar\n")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			info, err := os.Lstat(filepath.Join(workspace, tt.link))
			require.NoError(t, err)
			assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive the write")

			body, err := os.ReadFile(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestTree(t *testing.T) {
	e, fs := newExplorer(t)
	fs.CreateFile("/workspace/a.go", nil, 0o644)
	fs.CreateFile("/workspace/src/b.go", nil, 0o644)
	fs.CreateFile("/workspace/src/deep/c.go", nil, 0o644)

	tree, err := e.Tree(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "workspace", tree.Name)
	require.Len(t, tree.Children, 2)

	src := tree.Children[0]
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, "src", src.Path)
	require.Len(t, src.Children, 2)

	deep := src.Children[0]
	assert.Equal(t, "src/deep", deep.Path)
	assert.True(t, deep.Truncated)
	assert.Empty(t, deep.Children)

	var visited []string
	tree.Walk(func(n *Node, level int) {
		visited = append(visited, n.Path)
	})
	assert.Equal(t, []string{"", "src", "src/deep", "src/b.go", "a.go"}, visited)
}

func TestFind(t *testing.T) {
	e, fs := newExplorer(t)
	fs.CreateFile("/workspace/main.go", nil, 0o644)
	fs.CreateFile("/workspace/main_test.go", nil, 0o644)
	fs.CreateFile("/workspace/zzz.txt", nil, 0o644)
	fs.CreateDir("/workspace/main")

	t.Run("Prefix Hits Rank First", func(t *testing.T) {
		results, err := e.Find(context.Background(), "main", 0)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "main.go", results[0].Name)
		assert.Equal(t, "main_test.go", results[1].Name)
	})

	t.Run("Tolerates Typos", func(t *testing.T) {
		results, err := e.Find(context.Background(), "mian", 0)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "main.go", results[0].Name)
		for _, r := range results {
			assert.NotEqual(t, "zzz.txt", r.Name)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		results, err := e.Find(context.Background(), "main", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("Blank Query", func(t *testing.T) {
		_, err := e.Find(context.Background(), "  ", 0)
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}
