package domain

import "time"

// Post represents a single discussion-board post from the feed.
type Post struct {
	ID        string
	Title     string
	Author    string
	Board     string // Board the post was fetched from, without the 'r/' prefix
	URL       string // Original post URL
	Score     int
	Comments  int // Comment count; the sort key
	CreatedAt time.Time
}
