package app

import (
	"context"

	"github.com/lmarchen/commentdeck/domain"
)

// FeedService fetches posts from a discussion board.
type FeedService interface {
	// FetchBoard returns up to limit posts for a board, in the order the
	// backend lists them.
	FetchBoard(ctx context.Context, board string, limit int) ([]domain.Post, error)
}
