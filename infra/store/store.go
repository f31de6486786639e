// Package store caches the last fetched feed per board in sqlite so the
// app has content at startup and when the backend is unreachable.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"

	"github.com/lmarchen/commentdeck/domain"
)

//go:embed schema.sql
var schemaSQL string

// Store is a sqlite-backed feed cache.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePosts replaces the cached feed for a board, preserving fetch order.
func (s *Store) SavePosts(ctx context.Context, board string, posts []domain.Post) error {
	board = normalizeBoard(board)
	if board == "" {
		return domain.ErrEmptyBoard
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE board = ?", board); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing cached board: %w", err)
	}

	now := time.Now().Unix()
	for i, p := range posts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO posts(board, position, id, title, author, url, score, comments, created_at, fetched_at)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			board, i, p.ID, p.Title, p.Author, p.URL, p.Score, p.Comments, p.CreatedAt.Unix(), now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("caching post %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// PostsByBoard returns the cached feed for a board in fetch order.
// It returns domain.ErrNotCached when the board has never been cached.
func (s *Store) PostsByBoard(ctx context.Context, board string, limit int) ([]domain.Post, error) {
	board = normalizeBoard(board)
	if board == "" {
		return nil, domain.ErrEmptyBoard
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, url, score, comments, created_at
		 FROM posts WHERE board = ? ORDER BY position LIMIT ?`,
		board, limit)
	if err != nil {
		return nil, fmt.Errorf("querying cached board: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Score, &p.Comments, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning cached post: %w", err)
		}
		p.Board = board
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cached posts: %w", err)
	}

	if len(posts) == 0 {
		return nil, domain.ErrNotCached
	}
	return posts, nil
}

func normalizeBoard(board string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(board, "r/")))
}
