package domain

import (
	"context"
)

// DetailRepository provides the per-title data sources the detail page
// aggregates, plus the rating write. Each fetch is independent: callers are
// expected to issue them concurrently and tolerate individual failures.
type DetailRepository interface {
	// FetchDetails returns core metadata for a title
	FetchDetails(ctx context.Context, movieID int) (*MovieDetails, error)

	// FetchCast returns the ordered cast list for a title
	FetchCast(ctx context.Context, movieID int) ([]Actor, error)

	// FetchSimilar returns titles similar to the given one
	FetchSimilar(ctx context.Context, movieID int) ([]Media, error)

	// FetchReviews returns user reviews for a title
	FetchReviews(ctx context.Context, movieID int) ([]Review, error)

	// FetchRatingStatus returns the current session identifier and the set of
	// titles the user has rated
	FetchRatingStatus(ctx context.Context) (*RatingStatus, error)

	// SubmitRating records a rating for a title under the given session
	SubmitRating(ctx context.Context, movieID int, value float64, sessionID string) (RatingReceipt, error)
}

// MovieRepository provides the browse listings and genre metadata.
type MovieRepository interface {
	// ListMovies returns one page of a browse category
	ListMovies(ctx context.Context, category Category, page int) ([]Media, error)

	// DiscoverByGenre returns one page of titles in a genre
	DiscoverByGenre(ctx context.Context, genreID, page int) ([]Media, error)

	// GenreList returns all browse genres
	GenreList(ctx context.Context) ([]Genre, error)

	// SearchMovies performs a server-side title search
	SearchMovies(ctx context.Context, query string) ([]Media, error)
}

// HistoryStore handles the local watch-history cache.
type HistoryStore interface {
	// RecordView upserts a watch-history entry for a viewed title
	RecordView(rec WatchRecord) error

	// Recent returns up to limit entries, newest first
	Recent(limit int) ([]WatchRecord, error)

	// Remove deletes the entry for a title
	Remove(movieID int) error

	// Clear deletes all entries
	Clear() error

	Close() error
}
