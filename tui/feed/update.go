package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		// Drop stale replies from an older fetch or a different board.
		if msg.ReqSeq != m.feedReqSeq || msg.Board != m.board {
			return m, nil
		}
		m.posts = msg.Posts
		m.fetched = append([]domain.Post(nil), msg.Posts...)
		m.loading = false
		m.sorted = false
		m.err = nil
		m.notice = ""
		m.cursor = 0
		m.startIndex = 0
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.feedReqSeq || msg.Board != m.board {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SortedMsg:
		if msg.ReqSeq != m.sortReqSeq {
			return m, nil
		}
		m.sorting = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.posts = msg.Posts
		m.order = msg.Order
		m.sorted = true
		m.err = nil
		m.cursor = 0
		m.startIndex = 0
		return m, m.emitPrefsChanged()

	case tea.KeyMsg:
		if m.boardInput.active {
			return m.handleBoardInputKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			break
		}
		m.loading = true
		m.err = nil
		m.feedReqSeq++
		return m, m.fetchPosts(m.feedReqSeq)

	case key.Matches(msg, m.keys.SortAsc):
		return m.triggerSort(app.SortCommentsAsc)

	case key.Matches(msg, m.keys.SortDesc):
		return m.triggerSort(app.SortCommentsDesc)

	case key.Matches(msg, m.keys.ResetOrder):
		// Local state restore, no worker round trip needed.
		if m.sorting || len(m.fetched) == 0 {
			break
		}
		m.posts = append([]domain.Post(nil), m.fetched...)
		m.sorted = false
		m.notice = "Fetch order restored."
		m.cursor = 0
		m.startIndex = 0

	case key.Matches(msg, m.keys.Board):
		m.boardInput.active = true
		m.boardInput.buffer = m.board

	case key.Matches(msg, m.keys.Open):
		if post, ok := m.SelectedPost(); ok {
			return m, openURL(post.URL)
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.posts)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
	}

	return m, nil
}

// triggerSort is the single entry point for the sort trigger. An empty
// feed performs no request at all, and at most one request may be in
// flight at a time.
func (m Model) triggerSort(order app.SortOrder) (Model, tea.Cmd) {
	if len(m.posts) == 0 || m.sorting || m.loading {
		return m, nil
	}
	m.sorting = true
	m.notice = ""
	m.sortReqSeq++
	return m, m.requestSort(order, m.sortReqSeq)
}

func (m Model) handleBoardInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.boardInput.active = false
		m.boardInput.buffer = ""
		return m, nil

	case tea.KeyEnter:
		board := strings.TrimSpace(strings.TrimPrefix(m.boardInput.buffer, "r/"))
		m.boardInput.active = false
		m.boardInput.buffer = ""
		if board == "" || board == m.board {
			return m, nil
		}
		m.board = board
		m.posts = nil
		m.fetched = nil
		m.sorted = false
		m.loading = true
		m.err = nil
		m.cursor = 0
		m.startIndex = 0
		m.feedReqSeq++
		return m, tea.Batch(m.fetchPosts(m.feedReqSeq), m.emitPrefsChanged())

	case tea.KeyBackspace:
		if len(m.boardInput.buffer) > 0 {
			m.boardInput.buffer = m.boardInput.buffer[:len(m.boardInput.buffer)-1]
		}
		return m, nil

	case tea.KeyRunes:
		m.boardInput.buffer += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

func (m *Model) ensureCursorVisible() {
	slots := m.visibleSlots()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+slots {
		m.startIndex = m.cursor - slots + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
