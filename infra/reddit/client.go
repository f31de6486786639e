// Package reddit fetches board listings from Reddit's public JSON API.
// No authentication; the public endpoint is rate limited client-side.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lmarchen/commentdeck/domain"
)

const (
	defaultBaseURL = "https://www.reddit.com"
	fetchTimeout   = 10 * time.Second
)

// Client implements app.FeedService against the public listing endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	log       *zap.Logger
}

// NewClient creates a feed client. The public JSON endpoint tolerates
// roughly one request every two seconds, so the limiter is fixed there.
func NewClient(userAgent string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: fetchTimeout},
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		log:       log,
	}
}

// listingResponse is the subset of Reddit's listing payload we care about.
type listingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Author      string  `json:"author"`
				Subreddit   string  `json:"subreddit"`
				Permalink   string  `json:"permalink"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchBoard returns up to limit posts from a board's hot listing.
func (c *Client) FetchBoard(ctx context.Context, board string, limit int) ([]domain.Post, error) {
	board = strings.TrimSpace(strings.TrimPrefix(board, "r/"))
	if board == "" {
		return nil, domain.ErrEmptyBoard
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.baseURL, board, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", board, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("r/%s returned status %d", board, resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parsing r/%s listing: %w", board, err)
	}

	posts := make([]domain.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			ID:        d.ID,
			Title:     d.Title,
			Author:    d.Author,
			Board:     d.Subreddit,
			URL:       c.baseURL + d.Permalink,
			Score:     d.Score,
			Comments:  d.NumComments,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}

	c.log.Info("board fetched",
		zap.String("board", board),
		zap.Int("posts", len(posts)))
	return posts, nil
}
