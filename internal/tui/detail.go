package tui

import (
	"fmt"
	"strings"

	"marquee/internal/details"
	"marquee/internal/tui/styles"
)

// viewDetail renders the detail page by walking its section list in order, so
// the screen grows section by section as fetches settle.
func (m Model) viewDetail() string {
	var b strings.Builder

	if m.Detail.Loading {
		b.WriteString(m.Spinner.View() + " loading...")
		b.WriteString("\n")
	}

	for _, section := range m.Detail.Sections {
		switch section.Kind {
		case details.SectionHeader:
			b.WriteString(m.viewDetailHeader())
		case details.SectionCast:
			b.WriteString(m.viewDetailCast())
		case details.SectionSimilar:
			b.WriteString(m.viewDetailSimilar())
		case details.SectionRating:
			b.WriteString(m.viewDetailRating())
		case details.SectionComment:
			b.WriteString(m.viewDetailComment(section))
		case details.SectionReviewText:
			b.WriteString(styles.SectionTitleStyle.Render("Reviews"))
			b.WriteString("\n")
		case details.SectionSeeAllReviews:
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("v · all %d reviews", len(m.Detail.Reviews))))
			b.WriteString("\n")
		}
	}

	if len(m.Detail.Errors) > 0 {
		b.WriteString("\n")
		for _, se := range m.Detail.Errors {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("%s: %v", se.Source, se.Err)))
			b.WriteString("\n")
		}
	}

	if m.Rating {
		b.WriteString("\n")
		b.WriteString(m.RatingInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDetailHeader() string {
	d := m.Detail.Details
	if d == nil {
		return ""
	}

	var b strings.Builder
	title := d.Title
	if year := d.Year(); year > 0 {
		title += fmt.Sprintf(" (%d)", year)
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	var meta []string
	if d.Runtime > 0 {
		meta = append(meta, d.FormattedRuntime())
	}
	if len(d.Genres) > 0 {
		meta = append(meta, strings.Join(d.Genres, ", "))
	}
	meta = append(meta, styles.RenderVote(d.VoteAverage))
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	if d.Overview != "" {
		b.WriteString(wrapText(d.Overview, m.Width-4))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDetailCast() string {
	if len(m.Detail.Cast) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Cast"))
	b.WriteString("\n")

	names := make([]string, 0, len(m.Detail.Cast))
	for i, actor := range m.Detail.Cast {
		if i >= 8 {
			names = append(names, styles.DimStyle.Render(fmt.Sprintf("+%d more", len(m.Detail.Cast)-i)))
			break
		}
		names = append(names, actor.Name)
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(names, " · ")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewDetailSimilar() string {
	if len(m.Detail.Similar) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Similar"))
	b.WriteString("\n")

	for i, item := range m.Detail.Similar {
		if i >= 10 {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  +%d more", len(m.Detail.Similar)-i)))
			b.WriteString("\n")
			break
		}
		line := item.Title
		if year := item.Year(); year > 0 {
			line += fmt.Sprintf(" (%d)", year)
		}
		if i == m.SimilarCursor {
			b.WriteString(styles.AccentStyle.Render("> " + line))
		} else {
			b.WriteString(styles.SubtitleStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDetailRating() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Your Rating"))
	b.WriteString("\n")

	if m.Detail.CurrentRating != nil {
		b.WriteString(styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", *m.Detail.CurrentRating)))
		b.WriteString(styles.DimStyle.Render("  r to change"))
	} else {
		b.WriteString(styles.DimStyle.Render("not rated · r to rate"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewDetailComment(section details.Section) string {
	if section.Comment == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(section.Comment.Author))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(section.Comment.Content, (m.Width-4)*2)))
	b.WriteString("\n")
	return b.String()
}
