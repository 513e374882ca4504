package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"marquee/internal/domain"
)

const defaultCacheTTL = 5 * time.Minute

// cachedResult stores cached data with its fetch timestamp
type cachedResult struct {
	items     any
	fetchedAt time.Time
}

// Service handles browse listings with a small in-memory cache. Listings are
// time-invalidated; there is no server timestamp to compare against.
type Service struct {
	repo   domain.MovieRepository
	logger *slog.Logger
	ttl    time.Duration

	cacheMu sync.RWMutex
	cache   map[string]cachedResult
}

// NewService creates a new catalog service
func NewService(repo domain.MovieRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		ttl:    defaultCacheTTL,
		cache:  make(map[string]cachedResult),
	}
}

// List returns one page of a browse category.
func (s *Service) List(ctx context.Context, category domain.Category, page int) ([]domain.Media, error) {
	key := fmt.Sprintf("list:%s:%d", category, page)
	if cached, ok := s.fromCache(key); ok {
		s.logger.Debug("cache hit", "key", key)
		return cached.([]domain.Media), nil
	}

	items, err := s.repo.ListMovies(ctx, category, page)
	if err != nil {
		s.logger.Error("failed to list movies", "category", category.String(), "error", err)
		return nil, err
	}

	s.setCache(key, items)
	s.logger.Info("loaded listing", "category", category.String(), "page", page, "count", len(items))
	return items, nil
}

// ByGenre returns one page of titles in a genre. The synthetic All genre maps
// to the unfiltered popular listing.
func (s *Service) ByGenre(ctx context.Context, genreID, page int) ([]domain.Media, error) {
	if genreID == domain.GenreAll {
		return s.List(ctx, domain.CategoryPopular, page)
	}

	key := fmt.Sprintf("genre:%d:%d", genreID, page)
	if cached, ok := s.fromCache(key); ok {
		s.logger.Debug("cache hit", "key", key)
		return cached.([]domain.Media), nil
	}

	items, err := s.repo.DiscoverByGenre(ctx, genreID, page)
	if err != nil {
		s.logger.Error("failed to discover by genre", "genreID", genreID, "error", err)
		return nil, err
	}

	s.setCache(key, items)
	return items, nil
}

// Genres returns all browse genres with the synthetic All entry prepended.
func (s *Service) Genres(ctx context.Context) ([]domain.Genre, error) {
	if cached, ok := s.fromCache("genres"); ok {
		return cached.([]domain.Genre), nil
	}

	genres, err := s.repo.GenreList(ctx)
	if err != nil {
		s.logger.Error("failed to load genres", "error", err)
		return nil, err
	}

	all := make([]domain.Genre, 0, len(genres)+1)
	all = append(all, domain.Genre{ID: domain.GenreAll, Name: "All"})
	all = append(all, genres...)

	s.setCache("genres", all)
	return all, nil
}

// Search performs a server-side title search. Results are not cached.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Media, error) {
	items, err := s.repo.SearchMovies(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return nil, err
	}
	return items, nil
}

func (s *Service) fromCache(key string) (any, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	cached, ok := s.cache[key]
	if !ok || time.Since(cached.fetchedAt) > s.ttl {
		return nil, false
	}
	return cached.items, true
}

func (s *Service) setCache(key string, items any) {
	s.cacheMu.Lock()
	s.cache[key] = cachedResult{items: items, fetchedAt: time.Now()}
	s.cacheMu.Unlock()
}
