package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"marquee/internal/catalog"
	"marquee/internal/details"
	"marquee/internal/domain"
	"marquee/internal/history"
	"marquee/internal/search"
)

// Command factories for async operations

// LoadMoviesCmd loads one page of a browse category
func LoadMoviesCmd(svc *catalog.Service, category domain.Category, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := svc.List(ctx, category, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading " + category.String()}
		}
		return MoviesLoadedMsg{Items: items, Category: category, Page: page}
	}
}

// LoadGenresCmd loads the genre list
func LoadGenresCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := svc.Genres(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genres"}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadGenreMoviesCmd loads one page of a genre listing
func LoadGenreMoviesCmd(svc *catalog.Service, genreID, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := svc.ByGenre(ctx, genreID, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genre"}
		}
		return GenreMoviesLoadedMsg{Items: items, GenreID: genreID, Page: page}
	}
}

// SearchCmd performs a server-side search, falling back to the local index
// when the server is unreachable.
func SearchCmd(svc *catalog.Service, index *search.Index, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		results, err := svc.Search(ctx, query)
		if err != nil {
			local := index.Rank(query)
			if len(local) == 0 {
				return ErrMsg{Err: err, Context: "searching"}
			}
			items := make([]domain.Media, len(local))
			for i, r := range local {
				items[i] = r.Media
			}
			return SearchResultsMsg{Results: items, Query: query, Local: true}
		}
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// OpenDetailCmd starts loading a detail page
func OpenDetailCmd(page *details.Page) tea.Cmd {
	return func() tea.Msg {
		page.Load(context.Background())
		return DetailOpenedMsg{Page: page}
	}
}

// WaitForDetailUpdateCmd waits for the next detail snapshot. Re-issued after
// every DetailStateMsg so the subscription stays alive for the page's
// lifetime.
func WaitForDetailUpdateCmd(page *details.Page) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-page.Updates()
		if !ok {
			return nil
		}
		return DetailStateMsg{Page: page, State: state}
	}
}

// RateCmd submits a rating for the page's title
func RateCmd(page *details.Page, value float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		page.Rate(ctx, value)
		return RateDoneMsg{Page: page}
	}
}

// LoadHistoryCmd loads the most recent watch history entries
func LoadHistoryCmd(store *history.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		records, err := store.Recent(limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading history"}
		}
		return HistoryLoadedMsg{Records: records}
	}
}

// RemoveHistoryCmd removes one watch history entry
func RemoveHistoryCmd(store *history.Store, movieID int) tea.Cmd {
	return func() tea.Msg {
		if err := store.Remove(movieID); err != nil {
			return ErrMsg{Err: err, Context: "removing history entry"}
		}
		return HistoryRemovedMsg{MovieID: movieID}
	}
}

// ClearHistoryCmd clears the watch history
func ClearHistoryCmd(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			return ErrMsg{Err: err, Context: "clearing history"}
		}
		return HistoryClearedMsg{}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
