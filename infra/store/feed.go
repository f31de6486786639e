package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

// CachedFeed wraps a FeedService with the sqlite cache: successful
// fetches refresh the cache, failed ones fall back to it.
type CachedFeed struct {
	src   app.FeedService
	store *Store
	log   *zap.Logger
}

// NewCachedFeed wires a feed source to the cache.
func NewCachedFeed(src app.FeedService, store *Store, log *zap.Logger) *CachedFeed {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedFeed{src: src, store: store, log: log}
}

// FetchBoard fetches from the source and refreshes the cache. When the
// source fails, cached posts are served instead; the original fetch
// error is returned only if the cache is empty too.
func (c *CachedFeed) FetchBoard(ctx context.Context, board string, limit int) ([]domain.Post, error) {
	posts, err := c.src.FetchBoard(ctx, board, limit)
	if err == nil {
		if serr := c.store.SavePosts(ctx, board, posts); serr != nil {
			c.log.Warn("feed cache refresh failed", zap.String("board", board), zap.Error(serr))
		}
		return posts, nil
	}

	cached, cerr := c.store.PostsByBoard(ctx, board, limit)
	if cerr != nil {
		return nil, err
	}
	c.log.Info("serving cached feed",
		zap.String("board", board),
		zap.Int("posts", len(cached)),
		zap.Error(err))
	return cached, nil
}
