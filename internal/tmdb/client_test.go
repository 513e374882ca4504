package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", testLogger())
}

func TestFetchDetailsMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":           42,
			"title":        "Arrival",
			"overview":     "A linguist is recruited by the military.",
			"release_date": "2016-11-11",
			"runtime":      116,
			"genres":       []map[string]any{{"id": 878, "name": "Science Fiction"}, {"id": 18, "name": "Drama"}},
			"vote_average": 7.6,
			"vote_count":   18000,
			"poster_path":  "/poster.jpg",
		})
	})
	c := newTestClient(t, mux)

	d, err := c.FetchDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, d.ID)
	assert.Equal(t, "Arrival", d.Title)
	assert.Equal(t, []string{"Science Fiction", "Drama"}, d.Genres)
	assert.Equal(t, 116*time.Minute, d.Runtime)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", d.PosterURL)
	assert.Equal(t, 2016, d.Year())
	assert.Equal(t, "movie", d.MediaType)
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := c.FetchDetails(context.Background(), 1)
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestFetchCastMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/42/credits", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 42,
			"cast": []map[string]any{
				{"id": 1, "name": "Amy Adams", "profile_path": "/amy.jpg", "order": 0},
				{"id": 2, "name": "Jeremy Renner", "order": 1},
			},
		})
	})
	c := newTestClient(t, mux)

	cast, err := c.FetchCast(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, cast, 2)
	assert.Equal(t, "Amy Adams", cast[0].Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/amy.jpg", cast[0].ProfileURL)
	assert.Empty(t, cast[1].ProfileURL)
}

func TestFetchRatingStatusCreatesSessionOnce(t *testing.T) {
	var sessionCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/authentication/guest_session/new", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&sessionCalls, 1)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "guest_session_id": "guest-1"})
	})
	mux.HandleFunc("/guest_session/guest-1/rated/movies", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"page": 1,
			"results": []map[string]any{
				{"id": 42, "title": "Arrival", "rating": 8.0, "release_date": "2016-11-11"},
			},
		})
	})
	c := newTestClient(t, mux)

	status, err := c.FetchRatingStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "guest-1", status.SessionID)
	require.Len(t, status.Rated, 1)
	assert.Equal(t, 8.0, status.Rated[0].Rating)

	_, err = c.FetchRatingStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sessionCalls))
}

func TestFetchRatingStatusEmptyWhenNothingRated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/authentication/guest_session/new", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "guest_session_id": "guest-1"})
	})
	// TMDB answers 404 for a guest session with no rated titles yet.
	mux.HandleFunc("/guest_session/guest-1/rated/movies", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c := newTestClient(t, mux)

	status, err := c.FetchRatingStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "guest-1", status.SessionID)
	assert.Empty(t, status.Rated)
}

func TestSubmitRating(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/42/rating", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "guest-1", r.URL.Query().Get("guest_session_id"))

		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 8.5, body["value"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"status_code": 1, "status_message": "Success."})
	})
	c := newTestClient(t, mux)

	receipt, err := c.SubmitRating(context.Background(), 42, 8.5, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.StatusCode)
	assert.True(t, receipt.Accepted())
}

func TestListMoviesPaths(t *testing.T) {
	tests := []struct {
		category domain.Category
		path     string
	}{
		{domain.CategoryPopular, "/movie/popular"},
		{domain.CategoryUpcoming, "/movie/upcoming"},
		{domain.CategoryTopRated, "/movie/top_rated"},
		{domain.CategoryNowPlaying, "/movie/now_playing"},
		{domain.CategoryTrending, "/trending/movie/day"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			var gotPath string
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				json.NewEncoder(w).Encode(map[string]any{
					"page":    2,
					"results": []map[string]any{{"id": 1, "title": "Heat"}},
				})
			}))

			items, err := c.ListMovies(context.Background(), tt.category, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.path, gotPath)
			require.Len(t, items, 1)
			assert.Equal(t, "Heat", items[0].Title)
			assert.Equal(t, "movie", items[0].MediaType)
		})
	}
}

func TestGenreList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 18, "name": "Drama"}},
		})
	})
	c := newTestClient(t, mux)

	genres, err := c.GenreList(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, domain.Genre{ID: 28, Name: "Action"}, genres[0])
}

func TestSearchMovies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "heat", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": 949, "title": "Heat", "release_date": "1995-12-15"}},
		})
	})
	c := newTestClient(t, mux)

	items, err := c.SearchMovies(context.Background(), "heat")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 949, items[0].ID)
	assert.Equal(t, 1995, items[0].Year())
}
