package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds application-level configuration.
type Config struct {
	Board       string // Board to show at startup, without the 'r/' prefix
	Limit       int    // Posts per fetch
	UserAgent   string // User agent sent to the feed backend
	CachePath   string // Path to the sqlite feed cache
	LogPath     string // Path to the log file (the TUI owns the terminal)
	UIStatePath string // Path to persisted UI state
}

// Load reads configuration from environment variables.
//
//	COMMENTDECK_BOARD       — Board to open at startup (default: "golang")
//	COMMENTDECK_LIMIT       — Posts per fetch, 1..100 (default: 25)
//	COMMENTDECK_USER_AGENT  — User agent string (default: "commentdeck/1.0")
//	COMMENTDECK_CACHE       — Path to feed cache db (default: ~/.config/commentdeck/feed.db)
//	COMMENTDECK_LOG         — Path to log file (default: ~/.config/commentdeck/commentdeck.log)
//	COMMENTDECK_STATE       — Path to UI state file (default: ~/.config/commentdeck/ui_state.json)
func Load() (Config, error) {
	board := strings.TrimSpace(strings.TrimPrefix(os.Getenv("COMMENTDECK_BOARD"), "r/"))
	if board == "" {
		board = "golang"
	}

	limit := 25
	if raw := os.Getenv("COMMENTDECK_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COMMENTDECK_LIMIT: %q is not a number", raw)
		}
		if n < 1 || n > 100 {
			return Config{}, fmt.Errorf("invalid COMMENTDECK_LIMIT: %d is outside 1..100", n)
		}
		limit = n
	}

	userAgent := os.Getenv("COMMENTDECK_USER_AGENT")
	if userAgent == "" {
		userAgent = "commentdeck/1.0"
	}

	configDir := ""
	resolve := func(env, name string) (string, error) {
		if p := os.Getenv(env); p != "" {
			return p, nil
		}
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config", "commentdeck")
		}
		return filepath.Join(configDir, name), nil
	}

	cachePath, err := resolve("COMMENTDECK_CACHE", "feed.db")
	if err != nil {
		return Config{}, err
	}
	logPath, err := resolve("COMMENTDECK_LOG", "commentdeck.log")
	if err != nil {
		return Config{}, err
	}
	statePath, err := resolve("COMMENTDECK_STATE", "ui_state.json")
	if err != nil {
		return Config{}, err
	}

	return Config{
		Board:       board,
		Limit:       limit,
		UserAgent:   userAgent,
		CachePath:   cachePath,
		LogPath:     logPath,
		UIStatePath: statePath,
	}, nil
}
