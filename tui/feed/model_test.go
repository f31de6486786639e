package feed

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

type stubFeed struct {
	posts []domain.Post
	err   error
}

func (s stubFeed) FetchBoard(context.Context, string, int) ([]domain.Post, error) {
	return s.posts, s.err
}

// stubSorter answers synchronously with a buffered reply, so commands
// built on it never block in tests.
type stubSorter struct {
	submitted int
	fail      error
	released  chan struct{}
}

func newStubSorter() *stubSorter {
	return &stubSorter{released: make(chan struct{})}
}

func (s *stubSorter) Submit(_ context.Context, posts []domain.Post, order app.SortOrder) (app.SortTicket, error) {
	s.submitted++
	if s.fail != nil {
		return app.SortTicket{}, s.fail
	}
	cp := append([]domain.Post(nil), posts...)
	sort.SliceStable(cp, func(i, j int) bool {
		if order == app.SortCommentsDesc {
			return cp[i].Comments > cp[j].Comments
		}
		return cp[i].Comments < cp[j].Comments
	})
	reply := make(chan app.SortReply, 1)
	reply <- app.SortReply{ID: "stub-req", Posts: cp}
	return app.SortTicket{ID: "stub-req", Reply: reply}, nil
}

func (s *stubSorter) Released() <-chan struct{} {
	return s.released
}

func makePost(id string, comments int) domain.Post {
	return domain.Post{
		ID:        id,
		Title:     "Post " + id,
		Author:    "author-" + id,
		Board:     "golang",
		Comments:  comments,
		CreatedAt: time.Now(),
	}
}

func loadedModel(sorter app.PostSorter, comments ...int) Model {
	m := New(stubFeed{}, sorter, "golang", 25, app.SortCommentsAsc)
	m.loading = false
	for i, c := range comments {
		m.posts = append(m.posts, makePost(string(rune('a'+i)), c))
	}
	m.fetched = append([]domain.Post(nil), m.posts...)
	return m
}

func commentsOf(posts []domain.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Comments)
	}
	return out
}

func TestSortTrigger_EmptyFeedPerformsNoRequest(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd != nil {
		t.Fatalf("empty feed must not schedule a sort request")
	}
	if sorter.submitted != 0 {
		t.Fatalf("worker must not see a request for an empty feed, got %d", sorter.submitted)
	}
	if updated.sorting {
		t.Fatalf("sorting flag must stay false on empty feed")
	}
}

func TestSortTrigger_RoundTripReplacesPosts(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 5, 1, 3)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatalf("expected a sort command")
	}
	if !updated.sorting {
		t.Fatalf("expected sorting=true while request is in flight")
	}

	msg := cmd()
	sortedMsg, ok := msg.(SortedMsg)
	if !ok {
		t.Fatalf("expected SortedMsg, got %T", msg)
	}

	final, _ := updated.Update(sortedMsg)
	if final.sorting {
		t.Fatalf("sorting flag must clear after reply")
	}
	got := commentsOf(final.posts)
	want := []int{1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("posts not ordered by comments: got %v want %v", got, want)
		}
	}
	if !final.sorted {
		t.Fatalf("model must record worker-ordered state")
	}
}

func TestSortTrigger_SecondTriggerIgnoredWhileInFlight(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 2, 1)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatalf("expected first sort command")
	}

	again, cmd2 := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	if cmd2 != nil {
		t.Fatalf("second trigger must be ignored while a request is in flight")
	}
	if again.sortReqSeq != updated.sortReqSeq {
		t.Fatalf("ignored trigger must not advance the sequence")
	}
}

func TestSortedMsg_StaleSequenceDropped(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 4, 2)
	m.sortReqSeq = 3
	m.sorting = true

	stale := SortedMsg{Posts: []domain.Post{makePost("x", 99)}, ReqSeq: 2}
	updated, _ := m.Update(stale)

	if len(updated.posts) != 2 || updated.posts[0].Comments != 4 {
		t.Fatalf("stale reply must not replace posts: %v", commentsOf(updated.posts))
	}
	if !updated.sorting {
		t.Fatalf("stale reply must not clear the in-flight flag")
	}
}

func TestSortedMsg_ErrorClearsInFlight(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 4, 2)
	m.sortReqSeq = 1
	m.sorting = true

	updated, _ := m.Update(SortedMsg{ReqSeq: 1, Err: domain.ErrSorterReleased})
	if updated.sorting {
		t.Fatalf("error reply must clear the in-flight flag")
	}
	if !errors.Is(updated.err, domain.ErrSorterReleased) {
		t.Fatalf("expected recorded error, got %v", updated.err)
	}
	if len(updated.posts) != 2 {
		t.Fatalf("error reply must keep previous posts")
	}
}

func TestRequestSort_ReleasedSorterYieldsError(t *testing.T) {
	sorter := newStubSorter()
	sorter.fail = domain.ErrSorterReleased
	m := loadedModel(sorter, 3, 1)

	cmd := m.requestSort(app.SortCommentsAsc, 1)
	msg := cmd()
	sortedMsg, ok := msg.(SortedMsg)
	if !ok {
		t.Fatalf("expected SortedMsg, got %T", msg)
	}
	if !errors.Is(sortedMsg.Err, domain.ErrSorterReleased) {
		t.Fatalf("expected ErrSorterReleased, got %v", sortedMsg.Err)
	}
}

func TestPostsLoaded_StaleOrForeignBoardDropped(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 1)
	m.feedReqSeq = 2

	stale, _ := m.Update(PostsLoadedMsg{Posts: []domain.Post{makePost("x", 9)}, Board: "golang", ReqSeq: 1})
	if len(stale.posts) != 1 || stale.posts[0].Comments != 1 {
		t.Fatalf("stale fetch reply must be dropped")
	}

	foreign, _ := m.Update(PostsLoadedMsg{Posts: []domain.Post{makePost("x", 9)}, Board: "rust", ReqSeq: 2})
	if len(foreign.posts) != 1 || foreign.posts[0].Comments != 1 {
		t.Fatalf("foreign board reply must be dropped")
	}
}

func TestPostsLoaded_ResetsSortState(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 3, 1)
	m.sorted = true

	fresh := []domain.Post{makePost("n1", 8), makePost("n2", 2)}
	updated, _ := m.Update(PostsLoadedMsg{Posts: fresh, Board: "golang", ReqSeq: 0})

	if updated.sorted {
		t.Fatalf("fresh fetch must reset worker-ordered state")
	}
	if len(updated.fetched) != 2 || updated.fetched[0].ID != "n1" {
		t.Fatalf("fetch-order copy must track the new posts")
	}
}

func TestResetOrder_RestoresFetchOrderWithoutRequest(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 5, 1, 3)

	sortedPosts := append([]domain.Post(nil), m.posts...)
	sort.SliceStable(sortedPosts, func(i, j int) bool { return sortedPosts[i].Comments < sortedPosts[j].Comments })
	m.posts = sortedPosts
	m.sorted = true

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	if cmd != nil {
		t.Fatalf("restore must not schedule any command")
	}
	if sorter.submitted != 0 {
		t.Fatalf("restore must not touch the worker")
	}
	got := commentsOf(updated.posts)
	want := []int{5, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fetch order not restored: got %v want %v", got, want)
		}
	}
	if updated.sorted {
		t.Fatalf("restore must clear worker-ordered state")
	}
}

func TestBoardInput_SwitchAndCancel(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 1)

	entered, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !entered.boardInput.active {
		t.Fatalf("expected board input mode")
	}

	cancelled, _ := entered.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cancelled.boardInput.active || cancelled.board != "golang" {
		t.Fatalf("esc must cancel board input without switching")
	}

	typed := entered
	typed.boardInput.buffer = ""
	for _, r := range "rust" {
		typed, _ = typed.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	switched, cmd := typed.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if switched.board != "rust" {
		t.Fatalf("expected board switch to rust, got %q", switched.board)
	}
	if cmd == nil {
		t.Fatalf("board switch must schedule a fetch")
	}
	if !switched.loading || len(switched.posts) != 0 {
		t.Fatalf("board switch must reset posts and load")
	}
	if switched.feedReqSeq != m.feedReqSeq+1 {
		t.Fatalf("board switch must advance the fetch sequence")
	}
}

func TestRefresh_IgnoredWhileLoading(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 1)
	m.loading = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Fatalf("refresh must be ignored while a fetch is in flight")
	}
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	sorter := newStubSorter()
	m := loadedModel(sorter, 1, 2, 3)
	m.height = 40

	up, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if up.cursor != 0 {
		t.Fatalf("cursor must not move above the first post")
	}

	down := m
	for i := 0; i < 10; i++ {
		down, _ = down.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	if down.cursor != 2 {
		t.Fatalf("cursor must stop at the last post, got %d", down.cursor)
	}
}
