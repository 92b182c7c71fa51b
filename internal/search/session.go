package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Cyclone1070/wsearch/internal/events"
)

// Session is the state behind the search panel: the last result set, the
// replace-mode switch and the searching flag. The last search to finish wins.
type Session struct {
	engine searcher
	editor editorState
	bus    events.Bus
	logger *slog.Logger

	mu          sync.RWMutex
	results     *ResultSet
	replaceMode bool
	inFlight    int
	stale       bool
}

// NewSession creates a Session. bus may be nil.
func NewSession(engine searcher, editor editorState, bus events.Bus, logger *slog.Logger) *Session {
	if engine == nil {
		panic("engine is required")
	}
	if editor == nil {
		panic("editor is required")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		engine: engine,
		editor: editor,
		bus:    bus,
		logger: logger,
	}
}

// Results returns the current result set, nil before the first search.
func (s *Session) Results() *ResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// Query returns the query behind the current results. ok is false before the first search.
func (s *Session) Query() (q Query, ok bool) {
	rs := s.Results()
	if rs == nil {
		return Query{}, false
	}
	return rs.Query(), true
}

// Searching reports whether a search is running.
func (s *Session) Searching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// ReplaceMode reports whether replace mode is on.
func (s *Session) ReplaceMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.replaceMode
}

// SetReplaceMode turns replace mode on or off.
func (s *Session) SetReplaceMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceMode = on
}

// Stale reports whether the directory changed since the results were produced.
func (s *Session) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// MarkStale flags the current results as out of date.
func (s *Session) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results != nil {
		s.stale = true
	}
}

// Search runs q and replaces the result set. A blank query is a no-op returning
// the previous results. On failure the previous results are kept.
func (s *Session) Search(ctx context.Context, q Query) (*ResultSet, error) {
	if strings.TrimSpace(q.Text) == "" {
		return s.Results(), nil
	}

	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	s.bus.Publish(events.SearchStarted{Query: q.Text})

	rs, err := s.engine.Search(ctx, q)

	s.mu.Lock()
	s.inFlight--
	if err == nil {
		s.results = rs
		s.stale = false
	}
	prev := s.results
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrBlankQuery) {
			return prev, nil
		}
		s.logger.Error("search failed", "query", q.Text, "error", err)
		s.bus.Publish(events.SearchFailed{Query: q.Text, Err: err})
		return prev, err
	}

	s.bus.Publish(events.SearchCompleted{
		Query:     q.Text,
		Matches:   rs.Len(),
		Files:     len(rs.Files()),
		Truncated: rs.Truncated(),
	})
	return rs, nil
}

// ReplaceAll replaces every match of the current results using q and then
// searches again with q so the results reflect the rewritten files.
func (s *Session) ReplaceAll(ctx context.Context, q Query) (*ReplaceSummary, error) {
	if !s.ReplaceMode() {
		return nil, ErrNotReplaceMode
	}

	summary, err := s.engine.ReplaceAll(ctx, q, s.Results())
	if err != nil && summary == nil {
		return nil, err
	}

	s.bus.Publish(events.ReplaceCompleted{
		Query:    q.Text,
		Replaced: summary.Replaced,
		Files:    summary.Files,
		Failed:   len(summary.Failed),
	})

	if _, searchErr := s.Search(ctx, q); searchErr != nil && err == nil {
		err = searchErr
	}
	return summary, err
}

// PreviewReplace reports what ReplaceAll would change without writing.
func (s *Session) PreviewReplace(ctx context.Context, q Query) (*ReplaceSummary, error) {
	return s.engine.PreviewReplace(ctx, q, s.Results())
}

// Next moves the cursor to the following match.
func (s *Session) Next() int { return s.Move(1) }

// Prev moves the cursor to the preceding match.
func (s *Session) Prev() int { return s.Move(-1) }

// Move shifts the cursor by delta, clamped to the result set.
func (s *Session) Move(delta int) int {
	return s.Results().Move(delta)
}

// Open hands the current match to the editor: its file becomes the current file
// and the cursor is placed on the match.
func (s *Session) Open(ctx context.Context) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	m, ok := s.Results().Current()
	if !ok {
		return Match{}, ErrNoCurrentMatch
	}
	if err := s.editor.SetCurrentFile(m.Path); err != nil {
		return Match{}, err
	}
	if err := s.editor.SetCursor(m.Line, m.Column); err != nil {
		return Match{}, err
	}
	return m, nil
}
