package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/infra/config"
	"github.com/lmarchen/commentdeck/tui/common"
	"github.com/lmarchen/commentdeck/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed      app.FeedService
	Sorter    app.PostSorter
	Board     string
	Limit     int
	Order     app.SortOrder
	StatePath string
	Log       *zap.Logger
}

// App is the root Bubble Tea model. The feed is the only view; the root
// handles global keys and preference persistence around it.
type App struct {
	deps Deps
	feed feed.Model
	keys common.KeyMap
	log  *zap.Logger
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		deps: deps,
		feed: feed.New(deps.Feed, deps.Sorter, deps.Board, deps.Limit, deps.Order),
		keys: common.DefaultKeyMap(),
		log:  log,
	}
}

// Init delegates to the feed model.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global messages and routes the rest to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit, unless the user is typing a board name.
		if key.Matches(msg, a.keys.Quit) && !a.feed.InBoardInput() {
			return a, tea.Quit
		}

	case feed.PrefsChangedMsg:
		return a, a.savePrefs(msg)

	case feed.PrefsSavedMsg:
		if msg.Err != nil {
			a.log.Warn("saving ui state failed", zap.Error(msg.Err))
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) savePrefs(msg feed.PrefsChangedMsg) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := config.SaveUIState(path, config.UIState{
			Board:     msg.Board,
			SortOrder: msg.SortOrder,
		})
		return feed.PrefsSavedMsg{Err: err}
	}
}

// View renders the feed.
func (a App) View() string {
	return a.feed.View()
}
