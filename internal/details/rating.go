package details

import (
	"context"
)

// Rate submits a rating for the page's title.
//
// A value equal to the last server-accepted rating is a no-op: no write is
// issued and no event fires. Any actual attempt, successful or not, ends with
// one RatingSaved emission so the view can show its transient feedback. A
// failed attempt leaves the submission guard untouched, which keeps a retry
// with the same value eligible.
func (p *Page) Rate(ctx context.Context, value float64) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if p.lastSubmitted != nil && *p.lastSubmitted == value {
		p.mu.Unlock()
		return
	}
	session := ""
	if p.state.RatingStatus != nil {
		session = p.state.RatingStatus.SessionID
	}
	p.mu.Unlock()

	defer p.Events.RatingSaved.Emit(true)

	receipt, err := p.repo.SubmitRating(ctx, p.movieID, value, session)
	if err != nil {
		p.logger.Error("rating submission failed", "movieID", p.movieID, "value", value, "error", err)
		p.apply(func(s State) State { return mergeFailure(s, SourceSubmit, err) })
		return
	}

	// The session may rotate after every write, so it is refreshed after each
	// submission. A failed refresh is recorded but does not undo the receipt.
	status, err := p.repo.FetchRatingStatus(ctx)
	if err != nil {
		p.logger.Warn("session refresh after rating failed", "movieID", p.movieID, "error", err)
		p.apply(func(s State) State { return mergeFailure(s, SourceRatingStatus, err) })
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if status != nil {
		p.state = mergeSessionRefresh(p.state, status)
	}
	p.state = mergeSubmission(p.state, receipt)
	if receipt.Accepted() {
		v := value
		p.lastSubmitted = &v
		p.state.CurrentRating = &v
	}
	p.publishLocked()
}
