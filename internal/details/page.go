package details

import (
	"context"
	"log/slog"
	"sync"

	"marquee/internal/domain"
)

// Events are the one-shot UI signals a detail page emits. Each is consumed at
// most once, so a signal never replays when the view re-attaches.
type Events struct {
	Back          Event[bool]
	ActorSelected Event[int]
	MovieSelected Event[int]
	PlayTrailer   Event[bool]
	ViewReviews   Event[bool]
	Save          Event[bool]
	RatingSaved   Event[bool]
}

// Page owns the detail-page state for a single title. One Page is created per
// detail-page visit and discarded on teardown; nothing is shared across pages.
//
// Load issues the five detail fetches concurrently. Each source merges its
// result (or its failure) into the snapshot independently, so one source
// failing can never prevent or delay another's merge. Section order is
// resolution order, a direct consequence of the concurrent dispatch.
type Page struct {
	movieID int
	repo    domain.DetailRepository
	logger  *slog.Logger

	mu            sync.Mutex
	state         State
	closed        bool
	lastSubmitted *float64 // submission guard: last rating the server accepted
	cancels       []context.CancelFunc

	// detailsHooks run asynchronously after a successful details merge.
	// Hook failures are logged and swallowed; they never surface to state.
	detailsHooks []func(domain.MovieDetails)

	fetches sync.WaitGroup
	updates chan State

	Events Events
}

// NewPage creates a detail page for the given title. history may be nil, in
// which case no watch-history entry is recorded.
func NewPage(movieID int, repo domain.DetailRepository, history domain.HistoryStore, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Page{
		movieID: movieID,
		repo:    repo,
		logger:  logger,
		updates: make(chan State, 32),
	}
	if history != nil {
		p.detailsHooks = append(p.detailsHooks, func(d domain.MovieDetails) {
			rec := domain.WatchRecord{
				ID:          d.ID,
				Title:       d.Title,
				PosterURL:   d.PosterURL,
				Runtime:     d.Runtime,
				VoteAverage: d.VoteAverage,
				ReleaseDate: d.ReleaseDate,
				MediaType:   d.MediaType,
			}
			if err := history.RecordView(rec); err != nil {
				logger.Warn("failed to record watch history", "movieID", d.ID, "error", err)
			}
		})
	}
	return p
}

// MovieID returns the title this page was created for.
func (p *Page) MovieID() int { return p.movieID }

// Load issues the five detail fetches concurrently and returns immediately.
// Calling Load again re-issues all five; calls are not deduplicated.
func (p *Page) Load(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		cancel()
		return
	}
	p.cancels = append(p.cancels, cancel)
	p.mu.Unlock()

	p.apply(func(s State) State {
		s.Loading = true
		return s
	})

	p.fetch(ctx, SourceDetails, p.loadDetails)
	p.fetch(ctx, SourceCast, p.loadCast)
	p.fetch(ctx, SourceSimilar, p.loadSimilar)
	p.fetch(ctx, SourceRatingStatus, p.loadRatingStatus)
	p.fetch(ctx, SourceReviews, p.loadReviews)
}

// fetch wraps one source so its failure becomes a state merge instead of an
// escaped goroutine error.
func (p *Page) fetch(ctx context.Context, src Source, fn func(context.Context) error) {
	p.fetches.Add(1)
	go func() {
		defer p.fetches.Done()
		if err := fn(ctx); err != nil {
			p.logger.Error("detail fetch failed", "source", src.String(), "movieID", p.movieID, "error", err)
			p.apply(func(s State) State { return mergeFailure(s, src, err) })
		}
	}()
}

func (p *Page) loadDetails(ctx context.Context) error {
	d, err := p.repo.FetchDetails(ctx, p.movieID)
	if err != nil {
		return err
	}
	if p.apply(func(s State) State { return mergeDetails(s, d) }) {
		for _, hook := range p.detailsHooks {
			go hook(*d)
		}
	}
	return nil
}

func (p *Page) loadCast(ctx context.Context) error {
	cast, err := p.repo.FetchCast(ctx, p.movieID)
	if err != nil {
		return err
	}
	p.apply(func(s State) State { return mergeCast(s, cast) })
	return nil
}

func (p *Page) loadSimilar(ctx context.Context) error {
	similar, err := p.repo.FetchSimilar(ctx, p.movieID)
	if err != nil {
		return err
	}
	p.apply(func(s State) State { return mergeSimilar(s, similar) })
	return nil
}

func (p *Page) loadReviews(ctx context.Context) error {
	reviews, err := p.repo.FetchReviews(ctx, p.movieID)
	if err != nil {
		return err
	}
	p.apply(func(s State) State { return mergeReviews(s, reviews) })
	return nil
}

// loadRatingStatus reconciles the current rating and the submission guard
// under the same lock as the status merge, so the Rating section only appears
// once the rating value (possibly absent) is known.
func (p *Page) loadRatingStatus(ctx context.Context) error {
	status, err := p.repo.FetchRatingStatus(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	current := p.state.CurrentRating
	if r, ok := status.RatingFor(p.movieID); ok && (current == nil || *current != r) {
		v := r
		current = &v
		p.lastSubmitted = &v
	}
	p.state = mergeRatingStatus(p.state, status, current)
	p.publishLocked()
	return nil
}

// apply replaces the snapshot under the lock and publishes the result.
// Returns false when the page has been closed; late merges are dropped.
func (p *Page) apply(f func(State) State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.state = f(p.state)
	p.publishLocked()
	return true
}

// publishLocked is a best-effort notification. When nobody is draining the
// channel the send is dropped; State() always holds the latest snapshot. The
// caller holds p.mu, and Close closes the channel under the same lock, so a
// send can never race the close.
func (p *Page) publishLocked() {
	select {
	case p.updates <- p.state:
	default:
	}
}

// State returns the current snapshot.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Updates returns the snapshot notification channel. The channel is closed by
// Close, so a receiver blocked on it does not outlive the page.
func (p *Page) Updates() <-chan State { return p.updates }

// Close cancels in-flight fetches, closes the updates channel and discards any
// merges that arrive after teardown.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.updates)
	cancels := p.cancels
	p.cancels = nil
	p.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Click forwarding from the view layer.

func (p *Page) ClickBack()             { p.Events.Back.Emit(true) }
func (p *Page) ClickActor(actorID int) { p.Events.ActorSelected.Emit(actorID) }
func (p *Page) ClickMovie(movieID int) { p.Events.MovieSelected.Emit(movieID) }
func (p *Page) ClickPlayTrailer()      { p.Events.PlayTrailer.Emit(true) }
func (p *Page) ClickViewReviews()      { p.Events.ViewReviews.Emit(true) }
func (p *Page) ClickSave()             { p.Events.Save.Emit(true) }
