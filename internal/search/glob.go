package search

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globSet is a comma separated list of alternatives. A candidate matches the set
// when it matches any alternative.
type globSet struct {
	patterns []string
}

// compileGlob splits expr on top-level commas (commas inside braces belong to the
// brace expression) and validates each alternative.
func compileGlob(expr string) (globSet, error) {
	var set globSet
	for _, alt := range splitAlternatives(expr) {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		if hasMeta(alt) && !doublestar.ValidatePattern(alt) {
			return globSet{}, &GlobError{Glob: alt, Cause: doublestar.ErrBadPattern}
		}
		set.patterns = append(set.patterns, alt)
	}
	return set, nil
}

func (g globSet) empty() bool { return len(g.patterns) == 0 }

// match tests the file's base name and its root-relative path. An alternative with
// glob metacharacters must match one of them whole; one without is a plain substring test.
func (g globSet) match(name, relPath string) bool {
	for _, p := range g.patterns {
		if !hasMeta(p) {
			if strings.Contains(name, p) {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

func splitAlternatives(expr string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range expr {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, expr[start:])
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
