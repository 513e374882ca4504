package details

import (
	"marquee/internal/domain"
)

// SectionKind identifies one presentation unit in the detail page's render
// list.
type SectionKind int

const (
	SectionHeader SectionKind = iota
	SectionCast
	SectionSimilar
	SectionRating
	SectionComment
	SectionReviewText
	SectionSeeAllReviews
)

// String returns a human-readable representation of the section kind.
func (k SectionKind) String() string {
	switch k {
	case SectionHeader:
		return "header"
	case SectionCast:
		return "cast"
	case SectionSimilar:
		return "similar"
	case SectionRating:
		return "rating"
	case SectionComment:
		return "comment"
	case SectionReviewText:
		return "review-text"
	case SectionSeeAllReviews:
		return "see-all-reviews"
	default:
		return "unknown"
	}
}

// Section is one render unit. Comment is set only for SectionComment; every
// other kind renders from the snapshot fields directly.
type Section struct {
	Kind    SectionKind
	Comment *domain.Review
}

// Source identifies one of the detail page's data sources.
type Source int

const (
	SourceDetails Source = iota
	SourceCast
	SourceSimilar
	SourceReviews
	SourceRatingStatus
	SourceSubmit // the rating write, not one of the five fetches
)

// String returns a human-readable representation of the source.
func (s Source) String() string {
	switch s {
	case SourceDetails:
		return "details"
	case SourceCast:
		return "cast"
	case SourceSimilar:
		return "similar"
	case SourceReviews:
		return "reviews"
	case SourceRatingStatus:
		return "rating-status"
	case SourceSubmit:
		return "submit-rating"
	default:
		return "unknown"
	}
}

// SourceError records one failed source. Failures accumulate here instead of
// aborting sibling fetches.
type SourceError struct {
	Source Source
	Err    error
}

// State is the detail page snapshot. It is replaced wholesale on every merge
// and never mutated in place, so an observer holding a snapshot can never see
// a torn update. Slices in a published snapshot are treated as immutable.
type State struct {
	Loading       bool
	Details       *domain.MovieDetails
	Cast          []domain.Actor
	Similar       []domain.Media
	Reviews       []domain.Review
	RatingStatus  *domain.RatingStatus
	CurrentRating *float64
	Submission    *domain.RatingReceipt
	Sections      []Section
	Errors        []SourceError
}

// maxInlineComments is how many reviews render inline before the
// see-all-reviews button takes over.
const maxInlineComments = 3

// appendSections copies the section list before appending so previously
// published snapshots never alias the new one.
func appendSections(s State, secs ...Section) State {
	out := make([]Section, 0, len(s.Sections)+len(secs))
	out = append(out, s.Sections...)
	out = append(out, secs...)
	s.Sections = out
	return s
}

func mergeDetails(s State, d *domain.MovieDetails) State {
	s.Details = d
	s.Loading = false
	return appendSections(s, Section{Kind: SectionHeader})
}

func mergeCast(s State, cast []domain.Actor) State {
	s.Cast = cast
	s.Loading = false
	return appendSections(s, Section{Kind: SectionCast})
}

func mergeSimilar(s State, similar []domain.Media) State {
	s.Similar = similar
	s.Loading = false
	return appendSections(s, Section{Kind: SectionSimilar})
}

// mergeReviews appends up to three inline comments, the review-text marker
// when any reviews exist, and the see-all button when more than three do.
func mergeReviews(s State, reviews []domain.Review) State {
	s.Reviews = reviews
	s.Loading = false
	if len(reviews) == 0 {
		return s
	}
	inline := min(len(reviews), maxInlineComments)
	secs := make([]Section, 0, inline+2)
	for i := 0; i < inline; i++ {
		r := reviews[i]
		secs = append(secs, Section{Kind: SectionComment, Comment: &r})
	}
	secs = append(secs, Section{Kind: SectionReviewText})
	if len(reviews) > maxInlineComments {
		secs = append(secs, Section{Kind: SectionSeeAllReviews})
	}
	return appendSections(s, secs...)
}

// mergeRatingStatus sets the fetched status and the reconciled current rating
// in the same snapshot, so no observer can see one without the other.
func mergeRatingStatus(s State, status *domain.RatingStatus, current *float64) State {
	s.RatingStatus = status
	s.CurrentRating = current
	s.Loading = false
	return appendSections(s, Section{Kind: SectionRating})
}

// mergeSessionRefresh replaces the rating status after a submission without
// touching the reconciled rating or appending a section.
func mergeSessionRefresh(s State, status *domain.RatingStatus) State {
	s.RatingStatus = status
	return s
}

func mergeSubmission(s State, receipt domain.RatingReceipt) State {
	r := receipt
	s.Submission = &r
	return s
}

// mergeFailure records a failed source. The section for that source is never
// appended; the page keeps rendering whatever did resolve.
func mergeFailure(s State, src Source, err error) State {
	errs := make([]SourceError, 0, len(s.Errors)+1)
	errs = append(errs, s.Errors...)
	errs = append(errs, SourceError{Source: src, Err: err})
	s.Errors = errs
	s.Loading = false
	return s
}
