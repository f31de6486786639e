package app

import (
	"context"

	"github.com/lmarchen/commentdeck/domain"
)

// SortOrder selects how the background sorter orders posts.
type SortOrder int

const (
	// SortCommentsAsc orders posts by comment count, fewest first.
	SortCommentsAsc SortOrder = iota
	// SortCommentsDesc orders posts by comment count, most first.
	SortCommentsDesc
)

// String returns the persisted/displayed label for the order.
func (o SortOrder) String() string {
	switch o {
	case SortCommentsDesc:
		return "comments-desc"
	default:
		return "comments-asc"
	}
}

// ParseSortOrder maps a persisted label back to a SortOrder.
// Unknown labels fall back to ascending.
func ParseSortOrder(s string) SortOrder {
	if s == "comments-desc" {
		return SortCommentsDesc
	}
	return SortCommentsAsc
}

// SortReply is the single reply message for one sort request.
type SortReply struct {
	ID    string // Matches the ticket's request ID
	Posts []domain.Post
	Err   error
}

// SortTicket identifies one accepted sort request. Exactly one reply is
// delivered on Reply unless the sorter is released first.
type SortTicket struct {
	ID    string
	Reply <-chan SortReply
}

// PostSorter offloads comment-count ordering to a background unit.
// Concrete implementations own a long-lived execution context that the
// owner must release with Close when done.
type PostSorter interface {
	// Submit hands one request (a copy of posts) to the background unit.
	// It returns ErrSorterReleased after Close.
	Submit(ctx context.Context, posts []domain.Post, order SortOrder) (SortTicket, error)

	// Released is closed once the background unit has shut down. Callers
	// waiting on a ticket should select on it so a teardown mid-request
	// does not strand them.
	Released() <-chan struct{}
}
