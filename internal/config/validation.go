package config

import "strings"

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Search
	if strings.TrimSpace(c.Search.DefaultInclude) == "" {
		errs = append(errs, "search.default_include must not be empty")
	}
	if c.Search.MaxFileSize < 1 {
		errs = append(errs, "search.max_file_size must be >= 1")
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, "search.max_results must be >= 1")
	}
	if c.Search.MaxLineLength < 1 {
		errs = append(errs, "search.max_line_length must be >= 1")
	}

	// Explorer
	if c.Explorer.TreeDepth < 1 {
		errs = append(errs, "explorer.tree_depth must be >= 1")
	}
	if c.Explorer.FindLimit < 1 {
		errs = append(errs, "explorer.find_limit must be >= 1")
	}

	// UI
	if c.UI.ResultsHeight < 1 {
		errs = append(errs, "ui.results_height must be >= 1")
	}

	// Events
	if c.Events.BufferSize < 1 {
		errs = append(errs, "events.buffer_size must be >= 1")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}
