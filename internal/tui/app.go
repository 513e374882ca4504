package tui

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"marquee/internal/catalog"
	"marquee/internal/details"
	"marquee/internal/domain"
	"marquee/internal/history"
	"marquee/internal/search"
	"marquee/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateGenres
	StateSearching
	StateDetail
	StateReviews
	StateHistory
	StateHelp
)

// browseCategories is the left/right cycle order in the browse view
var browseCategories = []domain.Category{
	domain.CategoryPopular,
	domain.CategoryTrending,
	domain.CategoryUpcoming,
	domain.CategoryTopRated,
	domain.CategoryNowPlaying,
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State     ApplicationState
	prevState ApplicationState
	Ready     bool

	// Services
	Catalog *catalog.Service
	Repo    domain.DetailRepository
	History *history.Store
	Index   *search.Index
	Logger  *slog.Logger

	HistoryLimit  int
	RecordHistory bool

	// Browse state
	Category domain.Category
	Genre    *domain.Genre // non-nil when browsing a genre listing
	Page     int
	Items    []domain.Media
	Cursor   int

	// Global filter over everything indexed so far
	Filtering   bool
	FilterInput textinput.Model
	Filtered    []search.Result

	// Genre list
	Genres      []domain.Genre
	GenreCursor int

	// Search
	SearchInput   textinput.Model
	SearchResults []domain.Media
	SearchCursor  int
	SearchLocal   bool
	SearchQuery   string

	// Detail pages form a stack so similar-title navigation can go back
	pages         []*details.Page
	Detail        details.State
	SimilarCursor int
	Rating        bool
	RatingInput   textinput.Model

	// Watch history view
	Records       []domain.WatchRecord
	HistoryCursor int

	// UI state
	Width       int
	Height      int
	Spinner     spinner.Model
	Loading     bool
	Status      string
	StatusIsErr bool
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *catalog.Service,
	repo domain.DetailRepository,
	historyStore *history.Store,
	index *search.Index,
	historyLimit int,
	recordHistory bool,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	filterInput := textinput.New()
	filterInput.Prompt = "/ "
	filterInput.PromptStyle = styles.FilterPromptStyle
	filterInput.Placeholder = "filter titles"

	searchInput := textinput.New()
	searchInput.Prompt = "search: "
	searchInput.PromptStyle = styles.FilterPromptStyle
	searchInput.Placeholder = "title"

	ratingInput := textinput.New()
	ratingInput.Prompt = "rate (0.5-10): "
	ratingInput.PromptStyle = styles.FilterPromptStyle
	ratingInput.CharLimit = 4

	return Model{
		State:         StateBrowsing,
		Catalog:       catalogSvc,
		Repo:          repo,
		History:       historyStore,
		Index:         index,
		Logger:        logger,
		HistoryLimit:  historyLimit,
		RecordHistory: recordHistory,
		Category:      domain.CategoryPopular,
		Page:          1,
		FilterInput:   filterInput,
		SearchInput:   searchInput,
		RatingInput:   ratingInput,
		Spinner:       sp,
		Loading:       true,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		LoadMoviesCmd(m.Catalog, m.Category, m.Page),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ErrMsg:
		m.Loading = false
		m.Status = msg.Error()
		m.StatusIsErr = true
		m.Logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, ClearStatusCmd(4 * time.Second)

	case MoviesLoadedMsg:
		m.Loading = false
		m.Items = msg.Items
		m.Cursor = 0
		m.Index.Add(msg.Items...)
		return m, nil

	case GenresLoadedMsg:
		m.Loading = false
		m.Genres = msg.Genres
		m.GenreCursor = 0
		m.State = StateGenres
		return m, nil

	case GenreMoviesLoadedMsg:
		m.Loading = false
		m.Items = msg.Items
		m.Cursor = 0
		m.State = StateBrowsing
		m.Index.Add(msg.Items...)
		return m, nil

	case SearchResultsMsg:
		m.Loading = false
		m.SearchResults = msg.Results
		m.SearchCursor = 0
		m.SearchLocal = msg.Local
		m.SearchQuery = msg.Query
		m.Index.Add(msg.Results...)
		if msg.Local {
			m.Status = "server unreachable, showing local results"
			m.StatusIsErr = false
			return m, ClearStatusCmd(4 * time.Second)
		}
		return m, nil

	case DetailOpenedMsg:
		if msg.Page != m.currentPage() {
			return m, nil
		}
		m.Detail = msg.Page.State()
		return m, WaitForDetailUpdateCmd(msg.Page)

	case DetailStateMsg:
		if msg.Page != m.currentPage() {
			return m, nil
		}
		m.Detail = msg.State
		if m.SimilarCursor >= len(m.Detail.Similar) {
			m.SimilarCursor = 0
		}
		return m, WaitForDetailUpdateCmd(msg.Page)

	case RateDoneMsg:
		if msg.Page != m.currentPage() {
			return m, nil
		}
		if _, ok := msg.Page.Events.RatingSaved.Consume(); ok {
			m.Status = "rating submitted"
			m.StatusIsErr = false
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, nil

	case HistoryLoadedMsg:
		m.Loading = false
		m.Records = msg.Records
		if m.HistoryCursor >= len(m.Records) {
			m.HistoryCursor = 0
		}
		m.State = StateHistory
		return m, nil

	case HistoryRemovedMsg:
		return m, LoadHistoryCmd(m.History, m.HistoryLimit)

	case HistoryClearedMsg:
		m.Records = nil
		m.HistoryCursor = 0
		return m, nil

	case StatusMsg:
		m.Status = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(4 * time.Second)

	case ClearStatusMsg:
		m.Status = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes capture everything except escape and enter
	if m.Filtering {
		return m.handleFilterKey(msg)
	}
	if m.State == StateSearching && m.SearchInput.Focused() {
		return m.handleSearchInputKey(msg)
	}
	if m.State == StateDetail && m.Rating {
		return m.handleRatingKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.closePages()
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		if m.State == StateHelp {
			m.State = m.prevState
		} else {
			m.prevState = m.State
			m.State = StateHelp
		}
		return m, nil
	}

	switch m.State {
	case StateBrowsing:
		return m.handleBrowseKey(msg)
	case StateGenres:
		return m.handleGenresKey(msg)
	case StateSearching:
		return m.handleSearchResultsKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	case StateReviews:
		if key.Matches(msg, Keys.Escape) || key.Matches(msg, Keys.Back) {
			m.State = StateDetail
		}
		return m, nil
	case StateHistory:
		return m.handleHistoryKey(msg)
	case StateHelp:
		m.State = m.prevState
		return m, nil
	}

	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case key.Matches(msg, Keys.Home):
		m.Cursor = 0
	case key.Matches(msg, Keys.End):
		if len(m.Items) > 0 {
			m.Cursor = len(m.Items) - 1
		}
	case key.Matches(msg, Keys.Left):
		if m.Genre == nil {
			m.Category = cycleCategory(m.Category, -1)
			return m.reloadListing()
		}
	case key.Matches(msg, Keys.Right):
		if m.Genre == nil {
			m.Category = cycleCategory(m.Category, 1)
			return m.reloadListing()
		}
	case key.Matches(msg, Keys.NextPage):
		m.Page++
		return m.reloadListing()
	case key.Matches(msg, Keys.PrevPage):
		if m.Page > 1 {
			m.Page--
			return m.reloadListing()
		}
	case key.Matches(msg, Keys.Refresh):
		return m.reloadListing()
	case key.Matches(msg, Keys.Enter):
		if m.Cursor < len(m.Items) {
			return m.openDetail(m.Items[m.Cursor].ID)
		}
	case key.Matches(msg, Keys.Filter):
		m.Filtering = true
		m.FilterInput.SetValue("")
		m.Filtered = nil
		m.FilterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		m.SearchInput.SetValue("")
		m.SearchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Genres):
		m.Loading = true
		return m, LoadGenresCmd(m.Catalog)
	case key.Matches(msg, Keys.History):
		if m.History != nil {
			m.Loading = true
			return m, LoadHistoryCmd(m.History, m.HistoryLimit)
		}
	case key.Matches(msg, Keys.Escape):
		if m.Genre != nil {
			m.Genre = nil
			m.Page = 1
			return m.reloadListing()
		}
	}
	return m, nil
}

func (m Model) handleGenresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		if m.GenreCursor > 0 {
			m.GenreCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.GenreCursor < len(m.Genres)-1 {
			m.GenreCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.GenreCursor < len(m.Genres) {
			g := m.Genres[m.GenreCursor]
			m.Genre = &g
			m.Page = 1
			m.Loading = true
			return m, LoadGenreMoviesCmd(m.Catalog, g.ID, m.Page)
		}
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		m.State = StateBrowsing
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Filtering = false
		m.FilterInput.Blur()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if m.Cursor < len(m.Filtered) {
			id := m.Filtered[m.Cursor].Media.ID
			m.Filtering = false
			m.FilterInput.Blur()
			return m.openDetail(id)
		}
		return m, nil
	case key.Matches(msg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(msg, Keys.Down):
		if m.Cursor < len(m.Filtered)-1 {
			m.Cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.Filtered = m.Index.Filter(m.FilterInput.Value())
	m.Cursor = 0
	return m, cmd
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.SearchInput.Blur()
		m.State = StateBrowsing
		return m, nil
	case key.Matches(msg, Keys.Enter):
		query := m.SearchInput.Value()
		if query == "" {
			return m, nil
		}
		m.SearchInput.Blur()
		m.Loading = true
		return m, SearchCmd(m.Catalog, m.Index, query)
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		if m.SearchCursor > 0 {
			m.SearchCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.SearchCursor < len(m.SearchResults)-1 {
			m.SearchCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.SearchCursor < len(m.SearchResults) {
			return m.openDetail(m.SearchResults[m.SearchCursor].ID)
		}
	case key.Matches(msg, Keys.Search):
		m.SearchInput.SetValue("")
		m.SearchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		m.State = StateBrowsing
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.currentPage()
	if page == nil {
		m.State = StateBrowsing
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		page.ClickBack()
		if _, ok := page.Events.Back.Consume(); ok {
			return m.popDetail()
		}
	case key.Matches(msg, Keys.Left):
		if m.SimilarCursor > 0 {
			m.SimilarCursor--
		}
	case key.Matches(msg, Keys.Right):
		if m.SimilarCursor < len(m.Detail.Similar)-1 {
			m.SimilarCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.SimilarCursor < len(m.Detail.Similar) {
			page.ClickMovie(m.Detail.Similar[m.SimilarCursor].ID)
			if id, ok := page.Events.MovieSelected.Consume(); ok {
				return m.openDetail(id)
			}
		}
	case key.Matches(msg, Keys.Rate):
		m.Rating = true
		m.RatingInput.SetValue("")
		m.RatingInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Reviews):
		page.ClickViewReviews()
		if _, ok := page.Events.ViewReviews.Consume(); ok {
			m.State = StateReviews
		}
	case key.Matches(msg, Keys.Trailer):
		page.ClickPlayTrailer()
		if _, ok := page.Events.PlayTrailer.Consume(); ok {
			m.Status = "no trailer available"
			m.StatusIsErr = false
			return m, ClearStatusCmd(3 * time.Second)
		}
	case key.Matches(msg, Keys.Refresh):
		return m, OpenDetailCmd(page)
	}
	return m, nil
}

func (m Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Rating = false
		m.RatingInput.Blur()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		value, err := strconv.ParseFloat(m.RatingInput.Value(), 64)
		if err != nil || value < 0.5 || value > 10 {
			m.Status = "rating must be between 0.5 and 10"
			m.StatusIsErr = true
			return m, ClearStatusCmd(3 * time.Second)
		}
		m.Rating = false
		m.RatingInput.Blur()
		return m, RateCmd(m.currentPage(), value)
	}

	var cmd tea.Cmd
	m.RatingInput, cmd = m.RatingInput.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		if m.HistoryCursor > 0 {
			m.HistoryCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.HistoryCursor < len(m.Records)-1 {
			m.HistoryCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.HistoryCursor < len(m.Records) {
			return m.openDetail(m.Records[m.HistoryCursor].ID)
		}
	case key.Matches(msg, Keys.Delete):
		if m.HistoryCursor < len(m.Records) {
			return m, RemoveHistoryCmd(m.History, m.Records[m.HistoryCursor].ID)
		}
	case key.Matches(msg, Keys.ClearAll):
		return m, ClearHistoryCmd(m.History)
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		m.State = StateBrowsing
	}
	return m, nil
}

// openDetail pushes a new detail page onto the stack and starts its fetches
func (m Model) openDetail(movieID int) (tea.Model, tea.Cmd) {
	var store domain.HistoryStore
	if m.History != nil && m.RecordHistory {
		store = m.History
	}

	page := details.NewPage(movieID, m.Repo, store, m.Logger)
	m.pages = append(m.pages, page)
	if m.State != StateDetail {
		m.prevState = m.State
	}
	m.State = StateDetail
	m.Detail = details.State{Loading: true}
	m.SimilarCursor = 0
	return m, OpenDetailCmd(page)
}

// popDetail closes the top detail page and returns to the one beneath it, or
// to the view the first page was opened from.
func (m Model) popDetail() (tea.Model, tea.Cmd) {
	if page := m.currentPage(); page != nil {
		page.Close()
		m.pages = m.pages[:len(m.pages)-1]
	}

	if page := m.currentPage(); page != nil {
		m.Detail = page.State()
		m.SimilarCursor = 0
		return m, WaitForDetailUpdateCmd(page)
	}

	m.State = m.prevState
	m.Detail = details.State{}
	return m, nil
}

func (m Model) currentPage() *details.Page {
	if len(m.pages) == 0 {
		return nil
	}
	return m.pages[len(m.pages)-1]
}

func (m *Model) closePages() {
	for _, page := range m.pages {
		page.Close()
	}
	m.pages = nil
}

func (m Model) reloadListing() (tea.Model, tea.Cmd) {
	m.Loading = true
	if m.Genre != nil {
		return m, LoadGenreMoviesCmd(m.Catalog, m.Genre.ID, m.Page)
	}
	return m, LoadMoviesCmd(m.Catalog, m.Category, m.Page)
}

func cycleCategory(current domain.Category, delta int) domain.Category {
	for i, c := range browseCategories {
		if c == current {
			next := (i + delta + len(browseCategories)) % len(browseCategories)
			return browseCategories[next]
		}
	}
	return browseCategories[0]
}
