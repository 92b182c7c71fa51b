package explorer

import (
	"context"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// minFindScore is the Jaro-Winkler similarity below which names are not offered.
const minFindScore = 0.7

// Find ranks the files of the current directory against query for quick-open.
// Substring hits always qualify; other names need a Jaro-Winkler similarity of at least 0.7.
// limit <= 0 uses explorer.find_limit from the config.
func (e *Explorer) Find(ctx context.Context, query string, limit int) ([]FindResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrNameRequired
	}
	if limit <= 0 {
		limit = e.config.Explorer.FindLimit
	}

	entries, err := e.ListCurrentDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var results []FindResult
	for _, entry := range entries {
		if !entry.IsFile() {
			continue
		}
		score := similarity(query, strings.ToLower(entry.Name))
		if score < minFindScore {
			continue
		}
		p, err := e.Path(entry.Name)
		if err != nil {
			continue
		}
		results = append(results, FindResult{Name: entry.Name, Path: p, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// similarity scores name against query in [0, 1]. Substring matches score at least 0.9,
// prefix matches higher still.
func similarity(query, name string) float64 {
	if query == name {
		return 1
	}

	var score float64
	if s, err := edlib.StringsSimilarity(query, name, edlib.JaroWinkler); err == nil {
		score = float64(s)
	}

	if idx := strings.Index(name, query); idx >= 0 {
		boost := 0.9
		if idx == 0 {
			boost = 0.95
		}
		score = max(score, boost)
	}
	return score
}
