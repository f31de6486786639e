package feed

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

func (m Model) fetchPosts(reqSeq int) tea.Cmd {
	feed := m.feed
	board := m.board
	limit := m.limit
	return func() tea.Msg {
		posts, err := feed.FetchBoard(context.Background(), board, limit)
		if err != nil {
			return PostsErrorMsg{Err: err, Board: board, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: posts, Board: board, ReqSeq: reqSeq}
	}
}

// requestSort submits the current posts to the background sorter and
// waits for its single reply. Waiting happens inside the command, never
// on the UI loop; a teardown mid-request unblocks via Released.
func (m Model) requestSort(order app.SortOrder, reqSeq int) tea.Cmd {
	sorter := m.sorter
	posts := append([]domain.Post(nil), m.posts...)
	return func() tea.Msg {
		ticket, err := sorter.Submit(context.Background(), posts, order)
		if err != nil {
			return SortedMsg{Order: order, ReqSeq: reqSeq, Err: err}
		}
		select {
		case reply := <-ticket.Reply:
			return SortedMsg{ID: reply.ID, Posts: reply.Posts, Order: order, ReqSeq: reqSeq, Err: reply.Err}
		case <-sorter.Released():
			return SortedMsg{ID: ticket.ID, Order: order, ReqSeq: reqSeq, Err: domain.ErrSorterReleased}
		}
	}
}

func (m Model) emitPrefsChanged() tea.Cmd {
	board := m.board
	order := m.order.String()
	return func() tea.Msg {
		return PrefsChangedMsg{Board: board, SortOrder: order}
	}
}

func openURL(rawURL string) tea.Cmd {
	if !isSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		if _, err := exec.LookPath("xdg-open"); err == nil {
			_ = exec.Command("xdg-open", rawURL).Start()
			return nil
		}
		_ = exec.Command("open", rawURL).Start()
		return nil
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
