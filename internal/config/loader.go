package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "wsearch"
	// ConfigFile is the JSON config file name
	ConfigFile = "config.json"
	// ConfigFileTOML is the TOML config file name, preferred when both exist
	ConfigFileTOML = "config.toml"
	// LogFile is the default panel log file name inside ConfigDir
	LogFile = "wsearch.log"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/wsearch/config.toml, falling back to
// ~/.config/wsearch/config.json, and merges it with defaults.
// Returns default config if neither dotfile exists.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: Both formats are decoded directly over the default configuration, so
// explicit zero values in the file override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	dir, err := l.Dir()
	if err != nil {
		return cfg, nil // Use defaults if can't get home dir
	}

	data, err := l.fs.ReadFile(filepath.Join(dir, ConfigFileTOML))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Path: filepath.Join(dir, ConfigFileTOML), Cause: err}
		}
		return validated(cfg)
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	jsonPath := filepath.Join(dir, ConfigFile)
	data, err = l.fs.ReadFile(jsonPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, err // Return error for permission issues
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: jsonPath, Cause: err}
	}

	return validated(cfg)
}

// Dir returns the configuration directory (~/.config/wsearch).
func (l *Loader) Dir() (string, error) {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", ConfigDir), nil
}

// LogPath returns the panel log file path, honouring ui.log_file.
func (l *Loader) LogPath(cfg *Config) (string, error) {
	if cfg.UI.LogFile != "" {
		return cfg.UI.LogFile, nil
	}
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
