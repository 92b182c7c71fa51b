package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Search   SearchConfig   `json:"search" toml:"search"`
	Explorer ExplorerConfig `json:"explorer" toml:"explorer"`
	UI       UIConfig       `json:"ui" toml:"ui"`
	Events   EventsConfig   `json:"events" toml:"events"`
}

type SearchConfig struct {
	// Candidate filtering
	DefaultInclude   string `json:"default_include" toml:"default_include"`     // Default: common source/text extensions
	DefaultExclude   string `json:"default_exclude" toml:"default_exclude"`     // Default: minified, declaration and dependency files
	RespectGitignore bool   `json:"respect_gitignore" toml:"respect_gitignore"` // Default: false

	// Limits
	MaxFileSize   int64 `json:"max_file_size" toml:"max_file_size"`     // Default: 5 * 1024 * 1024 (5MB)
	MaxResults    int   `json:"max_results" toml:"max_results"`         // Default: 10000
	MaxLineLength int   `json:"max_line_length" toml:"max_line_length"` // Default: 500 (display only)
}

type ExplorerConfig struct {
	TreeDepth int `json:"tree_depth" toml:"tree_depth"` // Default: 3
	FindLimit int `json:"find_limit" toml:"find_limit"` // Default: 20
}

type UIConfig struct {
	WatchDirectory bool   `json:"watch_directory" toml:"watch_directory"` // Default: true
	LogFile        string `json:"log_file" toml:"log_file"`               // Default: "" (under config dir)
	ColorPrimary   string `json:"color_primary" toml:"color_primary"`     // Default: "63"
	ResultsHeight  int    `json:"results_height" toml:"results_height"`   // Default: 15
}

type EventsConfig struct {
	BufferSize int `json:"buffer_size" toml:"buffer_size"` // Default: 256
}

const (
	DefaultInclude = "*.{ts,tsx,js,jsx,json,md,css,scss,html,go,py,rs,java,c,cpp,h,txt,yml,yaml,toml}"
	DefaultExclude = "*.min.js,*.d.ts,node_modules/**,dist/**,.git/**"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultInclude:   DefaultInclude,
			DefaultExclude:   DefaultExclude,
			RespectGitignore: false,
			MaxFileSize:      5 * 1024 * 1024,
			MaxResults:       10000,
			MaxLineLength:    500,
		},
		Explorer: ExplorerConfig{
			TreeDepth: 3,
			FindLimit: 20,
		},
		UI: UIConfig{
			WatchDirectory: true,
			ColorPrimary:   "63",
			ResultsHeight:  15,
		},
		Events: EventsConfig{
			BufferSize: 256,
		},
	}
}
