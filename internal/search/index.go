package search

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"marquee/internal/domain"
)

// Index is a local title index over browse and search results. It backs the
// in-app filter and the offline fallback when server search is unavailable.
// Lowercase titles are pre-computed at index time so matching allocates
// nothing per query.
type Index struct {
	logger *slog.Logger

	mu          sync.RWMutex
	items       []domain.Media
	lowerTitles []string
	indexed     map[int]bool
}

// Result is a filter match with character positions for highlighting
type Result struct {
	Media          domain.Media
	MatchedIndexes []int
	Score          int
}

// NewIndex creates an empty index
func NewIndex(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		logger:  logger,
		indexed: make(map[int]bool),
	}
}

// Add indexes items, deduplicating by ID. Items seen before are skipped so
// the same page can be indexed again after a refresh.
func (idx *Index) Add(items ...domain.Media) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added := 0
	for _, item := range items {
		if idx.indexed[item.ID] {
			continue
		}
		idx.indexed[item.ID] = true
		idx.items = append(idx.items, item)
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(item.Title))
		added++
	}

	idx.logger.Debug("indexed items", "added", added, "skipped", len(items)-added, "total", len(idx.items))
}

// Clear removes all indexed items
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items = nil
	idx.lowerTitles = nil
	idx.indexed = make(map[int]bool)
}

// Count returns the number of indexed items
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.items)
}

// titleSource adapts a title snapshot to fuzzy.Source
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

// Filter performs subsequence matching against indexed titles and returns
// results best-first with match positions for highlighting.
func (idx *Index) Filter(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := fuzzy.FindFrom(query, titleSource(idx.lowerTitles))

	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{
			Media:          idx.items[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}

	return results
}
