package tui

import (
	"marquee/internal/details"
	"marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// MoviesLoadedMsg signals that a browse listing has been loaded
type MoviesLoadedMsg struct {
	Items    []domain.Media
	Category domain.Category
	Page     int
}

// GenresLoadedMsg signals that the genre list has been loaded
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// GenreMoviesLoadedMsg signals that a genre listing has been loaded
type GenreMoviesLoadedMsg struct {
	Items   []domain.Media
	GenreID int
	Page    int
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Results []domain.Media
	Query   string
	Local   bool // served from the local index fallback
}

// DetailOpenedMsg signals that a detail page started loading
type DetailOpenedMsg struct {
	Page *details.Page
}

// DetailStateMsg carries a fresh detail snapshot
type DetailStateMsg struct {
	Page  *details.Page
	State details.State
}

// RateDoneMsg signals that a rating submission finished
type RateDoneMsg struct {
	Page *details.Page
}

// HistoryLoadedMsg signals that watch history has been loaded
type HistoryLoadedMsg struct {
	Records []domain.WatchRecord
}

// HistoryRemovedMsg signals that one history entry was removed
type HistoryRemovedMsg struct {
	MovieID int
}

// HistoryClearedMsg signals that the watch history was cleared
type HistoryClearedMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
