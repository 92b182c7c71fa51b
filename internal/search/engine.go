package search

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/pmezard/go-difflib/difflib"
)

// Engine scans the explorer's current directory for a query and rewrites matches.
// Files are processed one at a time in listing order.
type Engine struct {
	dir       directory
	checksums checksumManager
	ignore    ignoreMatcher
	config    *config.Config
	logger    *slog.Logger
}

// NewEngine creates an Engine. ignore may be nil to disable ignore-file filtering.
func NewEngine(
	dir directory,
	checksums checksumManager,
	ignore ignoreMatcher,
	cfg *config.Config,
	logger *slog.Logger,
) *Engine {
	if dir == nil {
		panic("dir is required")
	}
	if checksums == nil {
		panic("checksums is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		dir:       dir,
		checksums: checksums,
		ignore:    ignore,
		config:    cfg,
		logger:    logger,
	}
}

// DefaultOptions returns Options carrying the configured default globs.
func DefaultOptions(cfg *config.Config) Options {
	return Options{
		Include: cfg.Search.DefaultInclude,
		Exclude: cfg.Search.DefaultExclude,
	}
}

// Search enumerates the current directory, filters candidates by the include and
// exclude globs and scans every readable candidate line by line.
// Unreadable files are skipped. A blank query returns ErrBlankQuery and a pattern
// that does not compile returns *PatternError.
func (e *Engine) Search(ctx context.Context, q Query) (*ResultSet, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrBlankQuery
	}

	re, err := compilePattern(q.Text, q.Options, false)
	if err != nil {
		return nil, err
	}
	include, exclude, err := e.globs(q.Options)
	if err != nil {
		return nil, err
	}

	entries, err := e.dir.ListCurrentDirectory(ctx)
	if err != nil {
		return nil, err
	}
	wholeWord := !q.Options.Regex && q.Options.WholeWord

	cwd := e.dir.Cwd()
	rs := NewResultSet(q, cwd, nil)
	e.checksums.Clear()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsFile() {
			continue
		}
		rel := path.Join(cwd, entry.Name)
		if !include.empty() && !include.match(entry.Name, rel) {
			continue
		}
		if exclude.match(entry.Name, rel) {
			continue
		}
		if e.ignore != nil && e.ignore.ShouldIgnore(rel, false) {
			continue
		}

		content, err := e.dir.ReadFile(ctx, entry.Name)
		if err != nil {
			e.logger.Debug("skipping unreadable file", "file", rel, "error", err)
			rs.skipped++
			continue
		}
		rs.searched++
		e.checksums.Update(rel, e.checksums.Compute([]byte(content)))

		if e.scan(rs, re, wholeWord, entry.Name, rel, content) {
			rs.truncated = true
			break
		}
	}

	e.logger.Debug("search finished",
		"query", q.Text,
		"dir", cwd,
		"matches", rs.Len(),
		"searched", rs.searched,
		"skipped", rs.skipped,
	)
	return rs, nil
}

// scan appends the matches of one file and reports whether max_results was reached.
func (e *Engine) scan(rs *ResultSet, re *regexp.Regexp, wholeWord bool, name, rel, content string) bool {
	limit := e.config.Search.MaxResults
	for i, line := range strings.Split(content, "\n") {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			// Zero-width matches have nothing to show or replace.
			if loc[0] == loc[1] {
				continue
			}
			if wholeWord && !wordBounded(line, loc[0], loc[1]) {
				continue
			}
			rs.matches = append(rs.matches, Match{
				File:    name,
				Path:    rel,
				Line:    i + 1,
				Column:  utf8.RuneCountInString(line[:loc[0]]) + 1,
				Text:    line[loc[0]:loc[1]],
				Context: e.clip(strings.TrimSpace(line)),
			})
			if limit > 0 && len(rs.matches) >= limit {
				return true
			}
		}
	}
	return false
}

func (e *Engine) clip(line string) string {
	limit := e.config.Search.MaxLineLength
	if limit <= 0 || utf8.RuneCountInString(line) <= limit {
		return line
	}
	runes := []rune(line)
	return string(runes[:limit]) + "…"
}

func (e *Engine) globs(opts Options) (globSet, globSet, error) {
	includeExpr := opts.Include
	if strings.TrimSpace(includeExpr) == "" {
		includeExpr = e.config.Search.DefaultInclude
	}
	include, err := compileGlob(includeExpr)
	if err != nil {
		return globSet{}, globSet{}, err
	}
	exclude, err := compileGlob(opts.Exclude)
	if err != nil {
		return globSet{}, globSet{}, err
	}
	return include, exclude, nil
}

// ReplaceAll rewrites every occurrence of q in the files referenced by rs.
// Files are re-read, replaced with the whole-content pattern and written back one
// at a time; a file that cannot be read or written is recorded in Failed and the
// rest are still processed. Nothing is rolled back.
func (e *Engine) ReplaceAll(ctx context.Context, q Query, rs *ResultSet) (*ReplaceSummary, error) {
	return e.replace(ctx, q, rs, false)
}

// PreviewReplace computes what ReplaceAll would do without writing anything.
func (e *Engine) PreviewReplace(ctx context.Context, q Query, rs *ResultSet) (*ReplaceSummary, error) {
	return e.replace(ctx, q, rs, true)
}

func (e *Engine) replace(ctx context.Context, q Query, rs *ResultSet, dryRun bool) (*ReplaceSummary, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrBlankQuery
	}
	if strings.TrimSpace(q.Replacement) == "" {
		return nil, ErrReplacementRequired
	}
	if rs.Empty() {
		return nil, ErrNoResults
	}
	if rs.Dir() != e.dir.Cwd() {
		return nil, ErrDirectoryChanged
	}

	re, err := compilePattern(q.Text, q.Options, true)
	if err != nil {
		return nil, err
	}

	summary := &ReplaceSummary{DryRun: dryRun}
	for _, name := range rs.Files() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		rel := path.Join(rs.Dir(), name)

		content, err := e.dir.ReadFile(ctx, name)
		if err != nil {
			e.logger.Warn("replace: read failed", "file", rel, "error", err)
			summary.Failed = append(summary.Failed, FileFailure{File: name, Err: err})
			continue
		}

		checksum := e.checksums.Compute([]byte(content))
		if prev, ok := e.checksums.Get(rel); ok && prev != checksum {
			summary.Stale = append(summary.Stale, name)
		}

		updated, count := substitute(re, content, q.Replacement, q.Options.Regex, !q.Options.Regex && q.Options.WholeWord)
		// A file whose replacements all equal the matched text is not rewritten or counted.
		if count == 0 || updated == content {
			continue
		}

		if !dryRun {
			if err := e.dir.WriteFile(ctx, name, updated); err != nil {
				e.logger.Warn("replace: write failed", "file", rel, "error", err)
				summary.Failed = append(summary.Failed, FileFailure{File: name, Err: err})
				continue
			}
			e.checksums.Update(rel, e.checksums.Compute([]byte(updated)))
		}

		summary.Replaced += count
		summary.Files++
		summary.Changes = append(summary.Changes, FileChange{
			File:         name,
			Path:         rel,
			Replacements: count,
			Diff:         unifiedDiff(rel, content, updated),
		})
	}

	e.logger.Info("replace finished",
		"query", q.Text,
		"replaced", summary.Replaced,
		"files", summary.Files,
		"failed", len(summary.Failed),
		"dry_run", dryRun,
	)
	return summary, nil
}

func unifiedDiff(filename, oldContent, newContent string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	diff, _ := difflib.GetUnifiedDiffString(ud)
	return diff
}
