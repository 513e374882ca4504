package details

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/domain"
)

func consumed(e *Event[bool]) bool {
	_, ok := e.Consume()
	return ok
}

func TestReconcileAdoptsFetchedRating(t *testing.T) {
	repo := &stubRepo{
		statusFn: func(context.Context) (*domain.RatingStatus, error) {
			return &domain.RatingStatus{
				SessionID: "sess-1",
				Rated:     []domain.RatedMovie{{ID: testMovieID, Rating: 7}},
			}, nil
		},
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	st := p.State()
	require.NotNil(t, st.CurrentRating)
	assert.Equal(t, 7.0, *st.CurrentRating)

	// The reconciled value seeds the submission guard: re-submitting it is a
	// no-op with no network write and no confirmation.
	p.Rate(context.Background(), 7)
	assert.Zero(t, repo.submitCount())
	assert.False(t, consumed(&p.Events.RatingSaved))
}

func TestReconcileLeavesUnratedTitleUnset(t *testing.T) {
	repo := &stubRepo{
		statusFn: func(context.Context) (*domain.RatingStatus, error) {
			return &domain.RatingStatus{
				SessionID: "sess-1",
				Rated:     []domain.RatedMovie{{ID: 7777, Rating: 9}},
			}, nil
		},
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	assert.Nil(t, p.State().CurrentRating)
}

func TestRateSubmitsOnceForSameValue(t *testing.T) {
	var gotSession string
	repo := &stubRepo{
		submitFn: func(_ context.Context, _ int, _ float64, session string) (domain.RatingReceipt, error) {
			gotSession = session
			return domain.RatingReceipt{StatusCode: domain.RatingCreated, StatusMessage: "Success."}, nil
		},
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	p.Rate(context.Background(), 8)
	assert.Equal(t, 1, repo.submitCount())
	assert.Equal(t, "sess-1", gotSession)
	assert.True(t, consumed(&p.Events.RatingSaved))

	st := p.State()
	require.NotNil(t, st.Submission)
	assert.True(t, st.Submission.Accepted())
	require.NotNil(t, st.CurrentRating)
	assert.Equal(t, 8.0, *st.CurrentRating)

	// Second submission of the unchanged value is suppressed.
	p.Rate(context.Background(), 8)
	assert.Equal(t, 1, repo.submitCount())
	assert.False(t, consumed(&p.Events.RatingSaved))
}

func TestRateDifferentValueSubmitsAgain(t *testing.T) {
	repo := &stubRepo{}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	p.Rate(context.Background(), 8)
	p.Rate(context.Background(), 9)
	assert.Equal(t, 2, repo.submitCount())
}

func TestFailedSubmitStaysRetryEligible(t *testing.T) {
	submitErr := errors.New("write failed")
	repo := &stubRepo{
		submitFn: func(context.Context, int, float64, string) (domain.RatingReceipt, error) {
			return domain.RatingReceipt{}, submitErr
		},
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	p.Rate(context.Background(), 6)
	st := p.State()
	require.Len(t, st.Errors, 1)
	assert.Equal(t, SourceSubmit, st.Errors[0].Source)
	assert.Nil(t, st.Submission)
	// Feedback fires on failure too; the view renders it generically.
	assert.True(t, consumed(&p.Events.RatingSaved))

	// The guard did not advance, so the same value is attempted again rather
	// than treated as redundant.
	p.Rate(context.Background(), 6)
	assert.Equal(t, 2, repo.submitCount())
	assert.True(t, consumed(&p.Events.RatingSaved))
}

func TestRateRefreshesSessionAfterSubmit(t *testing.T) {
	sessions := []string{"sess-1", "sess-2"}
	repo := &stubRepo{}
	repo.statusFn = func(context.Context) (*domain.RatingStatus, error) {
		s := sessions[0]
		if len(sessions) > 1 {
			sessions = sessions[1:]
		}
		return &domain.RatingStatus{SessionID: s}, nil
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)
	require.Equal(t, 1, repo.statusFetchCount())

	p.Rate(context.Background(), 8)

	assert.Equal(t, 2, repo.statusFetchCount())
	st := p.State()
	require.NotNil(t, st.RatingStatus)
	assert.Equal(t, "sess-2", st.RatingStatus.SessionID)
}

func TestRejectedReceiptDoesNotAdvanceGuard(t *testing.T) {
	repo := &stubRepo{
		submitFn: func(context.Context, int, float64, string) (domain.RatingReceipt, error) {
			return domain.RatingReceipt{StatusCode: 34, StatusMessage: "The resource you requested could not be found."}, nil
		},
	}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)

	p.Rate(context.Background(), 5)
	st := p.State()
	require.NotNil(t, st.Submission)
	assert.False(t, st.Submission.Accepted())
	assert.Nil(t, st.CurrentRating)
	assert.True(t, consumed(&p.Events.RatingSaved))

	p.Rate(context.Background(), 5)
	assert.Equal(t, 2, repo.submitCount())
}

func TestRateOnClosedPageIsIgnored(t *testing.T) {
	repo := &stubRepo{}
	p := NewPage(testMovieID, repo, nil, testLogger())
	loadAndSettle(t, p)
	p.Close()

	p.Rate(context.Background(), 8)
	assert.Zero(t, repo.submitCount())
	assert.False(t, consumed(&p.Events.RatingSaved))
}

func TestClickEventsForwarded(t *testing.T) {
	p := NewPage(testMovieID, &stubRepo{}, nil, testLogger())

	p.ClickActor(12)
	id, ok := p.Events.ActorSelected.Consume()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	p.ClickBack()
	assert.True(t, consumed(&p.Events.Back))
	p.ClickPlayTrailer()
	assert.True(t, consumed(&p.Events.PlayTrailer))
	p.ClickViewReviews()
	assert.True(t, consumed(&p.Events.ViewReviews))
	p.ClickSave()
	assert.True(t, consumed(&p.Events.Save))

	p.ClickMovie(99)
	mid, ok := p.Events.MovieSelected.Consume()
	assert.True(t, ok)
	assert.Equal(t, 99, mid)
}
