package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"marquee/internal/domain"
)

const (
	// DefaultBaseURL is the production TMDB API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Client implements domain.DetailRepository and domain.MovieRepository
// against the TMDB HTTP API. Ratings are written under a guest session that
// the client creates lazily and caches.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.Mutex
	sessionID string // guest session, created on first rating-status fetch
}

// NewClient creates a new TMDB API client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload, result any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	c.logger.Debug("tmdb request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, result)
}

// statusError maps TMDB HTTP statuses onto the domain sentinels.
func statusError(code int) error {
	switch code {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return fmt.Errorf("tmdb returned status %d", code)
	}
}

// === DetailRepository ===

func (c *Client) FetchDetails(ctx context.Context, movieID int) (*domain.MovieDetails, error) {
	var dto movieDetailsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &dto); err != nil {
		return nil, err
	}
	d := mapMovieDetails(dto)
	return &d, nil
}

func (c *Client) FetchCast(ctx context.Context, movieID int) ([]domain.Actor, error) {
	var dto creditsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &dto); err != nil {
		return nil, err
	}
	return mapCast(dto.Cast), nil
}

func (c *Client) FetchSimilar(ctx context.Context, movieID int) ([]domain.Media, error) {
	var dto pagedMoviesDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/similar", movieID), nil, &dto); err != nil {
		return nil, err
	}
	return mapMediaList(dto.Results), nil
}

func (c *Client) FetchReviews(ctx context.Context, movieID int) ([]domain.Review, error) {
	var dto reviewsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/reviews", movieID), nil, &dto); err != nil {
		return nil, err
	}
	return mapReviews(dto.Results), nil
}

// FetchRatingStatus returns the guest session plus the titles rated under it.
// TMDB answers 404 for a session that has not rated anything yet; that is an
// empty status, not a failure.
func (c *Client) FetchRatingStatus(ctx context.Context) (*domain.RatingStatus, error) {
	session, err := c.guestSession(ctx)
	if err != nil {
		return nil, err
	}

	var dto ratedMoviesDTO
	err = c.get(ctx, fmt.Sprintf("/guest_session/%s/rated/movies", session), nil, &dto)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return &domain.RatingStatus{
		SessionID: session,
		Rated:     mapRated(dto.Results),
	}, nil
}

func (c *Client) SubmitRating(ctx context.Context, movieID int, value float64, sessionID string) (domain.RatingReceipt, error) {
	query := url.Values{}
	query.Set("guest_session_id", sessionID)

	var dto statusDTO
	payload := map[string]float64{"value": value}
	err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/movie/%d/rating", movieID), query, payload, &dto)
	if err != nil {
		return domain.RatingReceipt{}, err
	}
	return domain.RatingReceipt{StatusCode: dto.StatusCode, StatusMessage: dto.StatusMessage}, nil
}

// guestSession returns the cached guest session, creating one on first use.
func (c *Client) guestSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID != "" {
		return c.sessionID, nil
	}

	var dto guestSessionDTO
	if err := c.get(ctx, "/authentication/guest_session/new", nil, &dto); err != nil {
		return "", err
	}
	if !dto.Success || dto.GuestSessionID == "" {
		return "", domain.ErrUnauthorized
	}

	c.logger.Info("created tmdb guest session")
	c.sessionID = dto.GuestSessionID
	return c.sessionID, nil
}

// === MovieRepository ===

func (c *Client) ListMovies(ctx context.Context, category domain.Category, page int) ([]domain.Media, error) {
	var path string
	switch category {
	case domain.CategoryPopular:
		path = "/movie/popular"
	case domain.CategoryUpcoming:
		path = "/movie/upcoming"
	case domain.CategoryTopRated:
		path = "/movie/top_rated"
	case domain.CategoryNowPlaying:
		path = "/movie/now_playing"
	case domain.CategoryTrending:
		path = "/trending/movie/day"
	default:
		return nil, fmt.Errorf("unknown category %d", category)
	}

	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var dto pagedMoviesDTO
	if err := c.get(ctx, path, query, &dto); err != nil {
		return nil, err
	}
	return mapMediaList(dto.Results), nil
}

func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) ([]domain.Media, error) {
	query := url.Values{}
	query.Set("with_genres", strconv.Itoa(genreID))
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var dto pagedMoviesDTO
	if err := c.get(ctx, "/discover/movie", query, &dto); err != nil {
		return nil, err
	}
	return mapMediaList(dto.Results), nil
}

func (c *Client) GenreList(ctx context.Context) ([]domain.Genre, error) {
	var dto genreListDTO
	if err := c.get(ctx, "/genre/movie/list", nil, &dto); err != nil {
		return nil, err
	}
	return mapGenres(dto.Genres), nil
}

func (c *Client) SearchMovies(ctx context.Context, q string) ([]domain.Media, error) {
	query := url.Values{}
	query.Set("query", q)

	var dto pagedMoviesDTO
	if err := c.get(ctx, "/search/movie", query, &dto); err != nil {
		return nil, err
	}
	return mapMediaList(dto.Results), nil
}
