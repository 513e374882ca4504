package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/domain"
)

type stubMovieRepo struct {
	mu         sync.Mutex
	listCalls  int
	genreCalls int
	err        error
}

func (r *stubMovieRepo) ListMovies(_ context.Context, category domain.Category, page int) ([]domain.Media, error) {
	r.mu.Lock()
	r.listCalls++
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return []domain.Media{{ID: page, Title: category.String()}}, nil
}

func (r *stubMovieRepo) DiscoverByGenre(_ context.Context, genreID, page int) ([]domain.Media, error) {
	return []domain.Media{{ID: genreID*100 + page, Title: "genre"}}, nil
}

func (r *stubMovieRepo) GenreList(context.Context) ([]domain.Genre, error) {
	r.mu.Lock()
	r.genreCalls++
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return []domain.Genre{{ID: 28, Name: "Action"}}, nil
}

func (r *stubMovieRepo) SearchMovies(_ context.Context, query string) ([]domain.Media, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []domain.Media{{ID: 1, Title: query}}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListCachesPerCategoryAndPage(t *testing.T) {
	repo := &stubMovieRepo{}
	s := NewService(repo, testLogger())

	_, err := s.List(context.Background(), domain.CategoryPopular, 1)
	require.NoError(t, err)
	_, err = s.List(context.Background(), domain.CategoryPopular, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	_, err = s.List(context.Background(), domain.CategoryPopular, 2)
	require.NoError(t, err)
	_, err = s.List(context.Background(), domain.CategoryTrending, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.listCalls)
}

func TestListCacheExpires(t *testing.T) {
	repo := &stubMovieRepo{}
	s := NewService(repo, testLogger())
	s.ttl = -1 // every entry is already stale

	_, err := s.List(context.Background(), domain.CategoryPopular, 1)
	require.NoError(t, err)
	_, err = s.List(context.Background(), domain.CategoryPopular, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListErrorNotCached(t *testing.T) {
	repo := &stubMovieRepo{err: errors.New("offline")}
	s := NewService(repo, testLogger())

	_, err := s.List(context.Background(), domain.CategoryPopular, 1)
	require.Error(t, err)

	repo.err = nil
	items, err := s.List(context.Background(), domain.CategoryPopular, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGenresPrependsAll(t *testing.T) {
	repo := &stubMovieRepo{}
	s := NewService(repo, testLogger())

	genres, err := s.Genres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, domain.Genre{ID: domain.GenreAll, Name: "All"}, genres[0])
	assert.Equal(t, "Action", genres[1].Name)

	_, err = s.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.genreCalls)
}

func TestByGenreAllRoutesToPopular(t *testing.T) {
	repo := &stubMovieRepo{}
	s := NewService(repo, testLogger())

	items, err := s.ByGenre(context.Background(), domain.GenreAll, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.CategoryPopular.String(), items[0].Title)
	assert.Equal(t, 1, repo.listCalls)
}

func TestByGenreFiltered(t *testing.T) {
	repo := &stubMovieRepo{}
	s := NewService(repo, testLogger())

	items, err := s.ByGenre(context.Background(), 28, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2802, items[0].ID)
}
