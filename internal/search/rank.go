package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rank orders indexed items by edit distance to the query, so near-complete
// queries surface the closest title first. It serves as the offline search
// fallback rather than the keystroke filter.
func (idx *Index) Rank(query string) []Result {
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ranks := fuzzy.RankFindNormalizedFold(query, idx.lowerTitles)

	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	results := make([]Result, len(ranks))
	for i, r := range ranks {
		results[i] = Result{
			Media: idx.items[r.OriginalIndex],
			Score: r.Distance,
		}
	}

	return results
}
