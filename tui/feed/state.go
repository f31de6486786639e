package feed

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
	"github.com/lmarchen/commentdeck/tui/common"
)

// --- Messages ---

// PostsLoadedMsg is sent when a board fetch completes successfully.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	Board  string
	ReqSeq int
}

// PostsErrorMsg is sent when a board fetch fails.
type PostsErrorMsg struct {
	Err    error
	Board  string
	ReqSeq int
}

// SortedMsg is the reply for one offloaded sort request.
type SortedMsg struct {
	ID     string // Worker-side correlation ID
	Posts  []domain.Post
	Order  app.SortOrder
	ReqSeq int
	Err    error
}

// PrefsChangedMsg tells the root model the persisted preferences changed.
type PrefsChangedMsg struct {
	Board     string
	SortOrder string
}

// PrefsSavedMsg is sent after the root model persisted preferences.
type PrefsSavedMsg struct {
	Err error
}

// --- Model state ---

type services struct {
	feed   app.FeedService
	sorter app.PostSorter
}

type feedState struct {
	board      string
	limit      int
	posts      []domain.Post
	fetched    []domain.Post // fetch-order copy, for restoring
	order      app.SortOrder
	sorted     bool // whether posts are currently worker-ordered
	loading    bool
	sorting    bool // one in-flight sort request at most
	feedReqSeq int
	sortReqSeq int
	err        error
	notice     string
}

type uiState struct {
	keys       common.KeyMap
	spinner    spinner.Model
	cursor     int
	startIndex int // First visible item in the list (for scrolling)
	width      int
	height     int
}

type boardInputState struct {
	active bool
	buffer string
}
