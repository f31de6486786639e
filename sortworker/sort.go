package sortworker

import (
	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

// sortByComments orders posts in place by comment count using a plain
// exchange sort: repeated adjacent swaps, quadratic worst case, no
// allocation. Relative order of equal-key posts is not guaranteed.
func sortByComments(posts []domain.Post, order app.SortOrder) {
	n := len(posts)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			if outOfOrder(posts[j], posts[j+1], order) {
				posts[j], posts[j+1] = posts[j+1], posts[j]
				swapped = true
			}
		}
		// A full pass without swaps means the slice is ordered.
		if !swapped {
			return
		}
	}
}

func outOfOrder(a, b domain.Post, order app.SortOrder) bool {
	if order == app.SortCommentsDesc {
		return a.Comments < b.Comments
	}
	return a.Comments > b.Comments
}
