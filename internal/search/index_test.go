package search

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/domain"
)

func testIndex() *Index {
	idx := NewIndex(slog.New(slog.NewTextHandler(io.Discard, nil)))
	idx.Add(
		domain.Media{ID: 1, Title: "The Dark Knight"},
		domain.Media{ID: 2, Title: "Dark Waters"},
		domain.Media{ID: 3, Title: "Heat"},
		domain.Media{ID: 4, Title: "Interstellar"},
	)
	return idx
}

func TestAddDeduplicatesByID(t *testing.T) {
	idx := testIndex()
	assert.Equal(t, 4, idx.Count())

	idx.Add(domain.Media{ID: 1, Title: "The Dark Knight"})
	assert.Equal(t, 4, idx.Count())

	idx.Add(domain.Media{ID: 5, Title: "Ronin"})
	assert.Equal(t, 5, idx.Count())
}

func TestFilterMatchesSubsequence(t *testing.T) {
	idx := testIndex()

	results := idx.Filter("dark kni")
	require.NotEmpty(t, results)
	assert.Equal(t, "The Dark Knight", results[0].Media.Title)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	idx := testIndex()

	results := idx.Filter("HEAT")
	require.NotEmpty(t, results)
	assert.Equal(t, 3, results[0].Media.ID)
}

func TestFilterEmptyQuery(t *testing.T) {
	idx := testIndex()

	assert.Nil(t, idx.Filter(""))
	assert.Nil(t, idx.Filter("   "))
}

func TestFilterNoMatch(t *testing.T) {
	idx := testIndex()

	assert.Empty(t, idx.Filter("zzzz"))
}

func TestRankOrdersByDistance(t *testing.T) {
	idx := testIndex()

	results := idx.Rank("dark")
	require.Len(t, results, 2)
	assert.Equal(t, "Dark Waters", results[0].Media.Title)
	assert.Equal(t, "The Dark Knight", results[1].Media.Title)
}

func TestClear(t *testing.T) {
	idx := testIndex()
	idx.Clear()

	assert.Equal(t, 0, idx.Count())
	assert.Empty(t, idx.Filter("dark"))

	// IDs are forgotten too, so items can be re-indexed
	idx.Add(domain.Media{ID: 3, Title: "Heat"})
	assert.Equal(t, 1, idx.Count())
}
