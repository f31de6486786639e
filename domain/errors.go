package domain

import "errors"

var (
	// ErrSorterReleased indicates the background sorter was torn down
	// before or while a request was in flight.
	ErrSorterReleased = errors.New("sorter released")

	// ErrEmptyBoard indicates a board name was empty or blank.
	ErrEmptyBoard = errors.New("board name cannot be empty")

	// ErrNotCached indicates no cached posts exist for the requested board.
	ErrNotCached = errors.New("no cached posts for board")
)
