package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"marquee/internal/domain"
	"marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "loading..."
	}

	var body string
	switch m.State {
	case StateBrowsing:
		body = m.viewBrowse()
	case StateGenres:
		body = m.viewGenres()
	case StateSearching:
		body = m.viewSearch()
	case StateDetail:
		body = m.viewDetail()
	case StateReviews:
		body = m.viewReviews()
	case StateHistory:
		body = m.viewHistory()
	case StateHelp:
		body = m.viewHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatusBar())
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(m.viewCategoryTabs())
	b.WriteString("\n\n")

	if m.Filtering {
		b.WriteString(m.FilterInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.viewFilterResults())
		return b.String()
	}

	if m.Loading {
		b.WriteString(m.Spinner.View() + " loading...")
		return b.String()
	}

	if len(m.Items) == 0 {
		b.WriteString(styles.DimStyle.Render("nothing here"))
		return b.String()
	}

	b.WriteString(m.viewMediaList(m.Items, m.Cursor))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("page %d", m.Page)))
	return b.String()
}

func (m Model) viewCategoryTabs() string {
	if m.Genre != nil {
		return styles.BadgeStyle.Render(m.Genre.Name) +
			styles.DimStyle.Render("  esc to leave genre")
	}

	var tabs []string
	for _, c := range browseCategories {
		if c == m.Category {
			tabs = append(tabs, styles.BadgeStyle.Render(c.String()))
		} else {
			tabs = append(tabs, styles.DimBadgeStyle.Render(c.String()))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) viewMediaList(items []domain.Media, cursor int) string {
	var b strings.Builder
	width := m.Width - 4

	for i, item := range items {
		line := item.Title
		if year := item.Year(); year > 0 {
			line += styles.DimStyle.Render(fmt.Sprintf(" (%d)", year))
		}
		row := styles.Truncate(line, width-8) + "  " + styles.RenderVote(item.VoteAverage)
		if i == cursor {
			b.WriteString(styles.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewFilterResults() string {
	if len(m.Filtered) == 0 {
		return styles.DimStyle.Render("no matches")
	}

	var b strings.Builder
	for i, r := range m.Filtered {
		if i == m.Cursor {
			b.WriteString(styles.AccentStyle.Render("> "))
			b.WriteString(styles.HighlightMatches(r.Media.Title, r.MatchedIndexes))
		} else {
			b.WriteString("  ")
			b.WriteString(styles.SubtitleStyle.Render(r.Media.Title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewGenres() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Genres"))
	b.WriteString("\n\n")

	for i, g := range m.Genres {
		if i == m.GenreCursor {
			b.WriteString(styles.SelectedItemStyle.Render(g.Name))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(g.Name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n\n")

	if m.Loading {
		b.WriteString(m.Spinner.View() + " searching...")
		return b.String()
	}

	if m.SearchQuery != "" {
		header := fmt.Sprintf("%d results for %q", len(m.SearchResults), m.SearchQuery)
		if m.SearchLocal {
			header += " (local)"
		}
		b.WriteString(styles.SubtitleStyle.Render(header))
		b.WriteString("\n\n")
		b.WriteString(m.viewMediaList(m.SearchResults, m.SearchCursor))
	}
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Watch History"))
	b.WriteString("\n\n")

	if len(m.Records) == 0 {
		b.WriteString(styles.DimStyle.Render("no watch history"))
		return b.String()
	}

	for i, rec := range m.Records {
		line := rec.Title + styles.DimStyle.Render("  "+rec.ViewedAt.Format("Jan 2 15:04"))
		if i == m.HistoryCursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("x remove · X clear all"))
	return b.String()
}

func (m Model) viewReviews() string {
	var b strings.Builder
	title := "Reviews"
	if m.Detail.Details != nil {
		title = "Reviews · " + m.Detail.Details.Title
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.Detail.Reviews) == 0 {
		b.WriteString(styles.DimStyle.Render("no reviews"))
		return b.String()
	}

	width := m.Width - 6
	for _, review := range m.Detail.Reviews {
		b.WriteString(styles.AccentStyle.Render(review.Author))
		b.WriteString("\n")
		b.WriteString(wrapText(review.Content, width))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewHelp() string {
	rows := [][2]string{
		{"j/k", "move"},
		{"h/l", "previous/next category, similar titles"},
		{"enter", "open selection"},
		{"n/p", "next/previous page"},
		{"/", "filter loaded titles"},
		{"s", "search"},
		{"c", "genres"},
		{"H", "watch history"},
		{"r", "rate title (detail view)"},
		{"v", "reviews (detail view)"},
		{"R", "refresh"},
		{"esc", "back"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Help"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(row[0], 8)))
		b.WriteString(styles.HelpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatusBar() string {
	if m.Status != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.Status)
		}
		return styles.SuccessStyle.Render(m.Status)
	}
	return styles.DimStyle.Render("? help · q quit")
}

// wrapText wraps text at word boundaries to the given width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+len(word)+1 > width {
			b.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
