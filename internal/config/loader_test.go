package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
// NOTE: This is a minimal mock for config loading tests.
// For comprehensive filesystem mocking, see internal/testing/mock.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultInclude, cfg.Search.DefaultInclude)
	assert.Equal(t, DefaultExclude, cfg.Search.DefaultExclude)
	assert.Equal(t, int64(5*1024*1024), cfg.Search.MaxFileSize)
	assert.Equal(t, 3, cfg.Explorer.TreeDepth)
	assert.True(t, cfg.UI.WatchDirectory)
}

func TestLoad_JSONOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"search": {"max_results": 50, "respect_gitignore": true}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.json": []byte(configJSON),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.True(t, cfg.Search.RespectGitignore)
	// Untouched keys keep their defaults
	assert.Equal(t, DefaultInclude, cfg.Search.DefaultInclude)
	assert.Equal(t, 20, cfg.Explorer.FindLimit)
}

func TestLoad_TOMLPreferredOverJSON(t *testing.T) {
	configTOML := `
[search]
default_exclude = "*.lock"
max_line_length = 120

[ui]
watch_directory = false
`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.toml": []byte(configTOML),
			"/home/user/.config/wsearch/config.json": []byte(`{"search": {"max_line_length": 999}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "*.lock", cfg.Search.DefaultExclude)
	assert.Equal(t, 120, cfg.Search.MaxLineLength)
	assert.False(t, cfg.UI.WatchDirectory)
	assert.Equal(t, 10000, cfg.Search.MaxResults)
}

func TestLoad_ExplicitZeroOverridesDefault(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.json": []byte(`{"ui": {"watch_directory": false}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.False(t, cfg.UI.WatchDirectory)
}

// --- ERROR PATH TESTS ---

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MalformedJSON_ReturnsParseError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.json": []byte(`{"search": `),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "/home/user/.config/wsearch/config.json", parseErr.Path)
}

func TestLoad_MalformedTOML_ReturnsParseError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.toml": []byte("[search\nmax_results = "),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoad_PermissionError_Propagates(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	_, err := NewLoaderWithFS(fs).Load()

	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_InvalidValues_FailValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/wsearch/config.json": []byte(`{"search": {"max_results": 0}}`),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.max_results")
}

func TestLogPath(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user"})

	t.Run("Default Under Config Dir", func(t *testing.T) {
		path, err := loader.LogPath(DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, "/home/user/.config/wsearch/wsearch.log", path)
	})

	t.Run("Configured Path Wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UI.LogFile = "/tmp/ws.log"
		path, err := loader.LogPath(cfg)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/ws.log", path)
	})
}
