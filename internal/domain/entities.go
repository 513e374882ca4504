package domain

import (
	"fmt"
	"time"
)

// MovieDetails is the core metadata for a single title's detail page.
type MovieDetails struct {
	ID          int           // TMDB identifier
	Title       string        // Display title
	PosterURL   string        // Poster image URL
	ReleaseDate string        // "2006-01-02" as reported by the API
	Genres      []string      // Genre names
	Runtime     time.Duration // Total runtime
	Overview    string        // Plot synopsis
	VoteAverage float64       // Community rating (0-10 scale)
	ReviewCount int           // Number of user reviews
	MediaType   string        // "movie" (reserved for future TV support)
}

// Year returns the release year, or 0 if the release date is unknown.
func (m MovieDetails) Year() int {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// FormattedRuntime returns the runtime in a human-readable format.
func (m MovieDetails) FormattedRuntime() string {
	h := int(m.Runtime.Hours())
	mins := int(m.Runtime.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Actor is a single cast member.
type Actor struct {
	ID         int    // TMDB person identifier
	Name       string // Display name
	ProfileURL string // Headshot image URL
}

// Media is a listed title: a similar-titles entry or a row in any of the
// browse categories.
type Media struct {
	ID          int     // TMDB identifier
	Title       string  // Display title
	PosterURL   string  // Poster image URL
	ReleaseDate string  // "2006-01-02"
	VoteAverage float64 // Community rating (0-10 scale)
	MediaType   string  // "movie" or "tv"
}

// Year returns the release year, or 0 if the release date is unknown.
func (m Media) Year() int {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// Review is a single user review.
type Review struct {
	Author    string // Reviewer display name
	Content   string // Review body
	CreatedAt string // Creation timestamp as reported by the API
}

// RatedMovie is one entry in the user's rated-titles collection.
type RatedMovie struct {
	ID          int     // TMDB identifier
	Title       string  // Display title
	PosterURL   string  // Poster image URL
	Rating      float64 // The user's rating (0.5-10 scale)
	ReleaseDate string  // "2006-01-02"
	MediaType   string  // "movie" or "tv"
}

// RatingStatus is the session identifier plus the set of titles the user has
// rated. The session may rotate after every rating submission, so consumers
// must always use the SessionID from the most recent fetch.
type RatingStatus struct {
	SessionID string
	Rated     []RatedMovie
}

// RatingFor returns the user's rating for the given title, if present.
func (s RatingStatus) RatingFor(movieID int) (float64, bool) {
	for _, r := range s.Rated {
		if r.ID == movieID {
			return r.Rating, true
		}
	}
	return 0, false
}

// Rating submission status codes defined by the API.
const (
	RatingCreated = 1  // New rating recorded
	RatingUpdated = 12 // Existing rating replaced
)

// RatingReceipt is the outcome of a rating submission.
type RatingReceipt struct {
	StatusCode    int
	StatusMessage string
}

// Accepted reports whether the submission was recorded by the server.
func (r RatingReceipt) Accepted() bool {
	return r.StatusCode == RatingCreated || r.StatusCode == RatingUpdated
}

// WatchRecord is one entry in the local watch-history cache.
type WatchRecord struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	PosterURL   string        `json:"posterUrl,omitempty"`
	Runtime     time.Duration `json:"runtime,omitempty"`
	VoteAverage float64       `json:"voteAverage,omitempty"`
	ReleaseDate string        `json:"releaseDate,omitempty"`
	MediaType   string        `json:"mediaType"`
	ViewedAt    time.Time     `json:"viewedAt"`
}

// Genre is a single browse genre.
type Genre struct {
	ID   int
	Name string
}

// GenreAll is the synthetic genre prepended to every genre list so the UI can
// offer an unfiltered tab.
const GenreAll = 0

// Category identifies a browse listing.
type Category int

const (
	CategoryPopular Category = iota
	CategoryUpcoming
	CategoryTopRated
	CategoryNowPlaying
	CategoryTrending
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryPopular:
		return "Popular"
	case CategoryUpcoming:
		return "Upcoming"
	case CategoryTopRated:
		return "Top Rated"
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryTrending:
		return "Trending"
	default:
		return "Unknown"
	}
}
