package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
	"github.com/lmarchen/commentdeck/tui/common"
)

// Model holds the state for the feed view. It owns the current posts as
// observable state and hands sort work to the injected background sorter.
type Model struct {
	services
	feedState
	uiState
	boardInput boardInputState
}

// New creates a feed model with injected dependencies.
func New(feed app.FeedService, sorter app.PostSorter, board string, limit int, order app.SortOrder) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A97F"))

	board = strings.TrimSpace(strings.TrimPrefix(board, "r/"))
	if board == "" {
		board = "golang"
	}
	if limit <= 0 {
		limit = 25
	}

	return Model{
		services: services{
			feed:   feed,
			sorter: sorter,
		},
		feedState: feedState{
			board:   board,
			limit:   limit,
			order:   order,
			loading: true,
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.feedReqSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Posts returns the current posts for external access.
func (m Model) Posts() []domain.Post {
	return m.posts
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Sorting reports whether a sort request is in flight.
func (m Model) Sorting() bool {
	return m.sorting
}

// Board returns the currently displayed board.
func (m Model) Board() string {
	return m.board
}

// InBoardInput reports whether the board input prompt is active.
func (m Model) InBoardInput() bool {
	return m.boardInput.active
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.posts) == 0 || m.cursor < 0 || m.cursor >= len(m.posts) {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}
