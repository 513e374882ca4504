package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/domain"
)

func record(id int, title string, viewedAt time.Time) domain.WatchRecord {
	return domain.WatchRecord{
		ID:        id,
		Title:     title,
		MediaType: "movie",
		ViewedAt:  viewedAt,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	now := time.Now()
	require.NoError(t, s.RecordView(record(1, "Heat", now.Add(-2*time.Hour))))
	require.NoError(t, s.RecordView(record(2, "Ronin", now.Add(-1*time.Hour))))
	require.NoError(t, s.RecordView(record(3, "Thief", now)))

	recs, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Thief", "Ronin", "Heat"},
		[]string{recs[0].Title, recs[1].Title, recs[2].Title})
}

func TestStoreRecentLimit(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	now := time.Now()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.RecordView(record(i, "m", now.Add(time.Duration(i)*time.Minute))))
	}

	recs, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, 5, recs[0].ID)
	assert.Equal(t, 4, recs[1].ID)
}

func TestStoreRewatchUpserts(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	first := time.Now().Add(-time.Hour)
	require.NoError(t, s.RecordView(record(1, "Heat", first)))
	later := time.Now()
	require.NoError(t, s.RecordView(record(1, "Heat", later)))

	recs, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.WithinDuration(t, later, recs[0].ViewedAt, time.Second)
}

func TestStoreStampsMissingViewedAt(t *testing.T) {
	s, err := NewStore("")
	require.NoError(t, err)

	require.NoError(t, s.RecordView(domain.WatchRecord{ID: 1, Title: "Heat", MediaType: "movie"}))

	recs, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].ViewedAt.IsZero())
}

func TestStoreRemoveAndClear(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	now := time.Now()
	require.NoError(t, s.RecordView(record(1, "Heat", now)))
	require.NoError(t, s.RecordView(record(2, "Ronin", now)))

	require.NoError(t, s.Remove(1))
	recs, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].ID)

	require.NoError(t, s.Remove(999)) // absent id is a no-op

	require.NoError(t, s.Clear())
	recs, err = s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStoreMemoryOnlyMode(t *testing.T) {
	s, err := NewStore("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordView(record(1, "Heat", time.Now())))
	recs, err := s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	require.NoError(t, s.Clear())
	recs, err = s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.RecordView(record(1, "Heat", time.Now())))
	require.NoError(t, s.Close())

	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	recs, err := s2.Recent(0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Heat", recs[0].Title)
}
