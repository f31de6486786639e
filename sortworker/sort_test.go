package sortworker

import (
	"testing"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

func postsWithComments(counts ...int) []domain.Post {
	out := make([]domain.Post, 0, len(counts))
	for i, c := range counts {
		out = append(out, domain.Post{ID: string(rune('a' + i)), Comments: c})
	}
	return out
}

func comments(posts []domain.Post) []int {
	out := make([]int, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Comments)
	}
	return out
}

func TestSortByComments_OrdersAscending(t *testing.T) {
	posts := postsWithComments(5, 1, 3)
	sortByComments(posts, app.SortCommentsAsc)

	want := []int{1, 3, 5}
	got := comments(posts)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
}

func TestSortByComments_OrdersDescending(t *testing.T) {
	posts := postsWithComments(2, 9, 4, 9, 0)
	sortByComments(posts, app.SortCommentsDesc)

	got := comments(posts)
	for i := 0; i < len(got)-1; i++ {
		if got[i] < got[i+1] {
			t.Fatalf("not non-increasing: %v", got)
		}
	}
}

func TestSortByComments_AlreadySortedUnchanged(t *testing.T) {
	posts := postsWithComments(1, 3, 5)
	before := append([]domain.Post(nil), posts...)
	sortByComments(posts, app.SortCommentsAsc)

	for i := range before {
		if posts[i] != before[i] {
			t.Fatalf("sorted input changed at %d: got %+v want %+v", i, posts[i], before[i])
		}
	}
}

func TestSortByComments_EmptyAndSingle(t *testing.T) {
	sortByComments(nil, app.SortCommentsAsc)

	one := postsWithComments(7)
	sortByComments(one, app.SortCommentsAsc)
	if len(one) != 1 || one[0].Comments != 7 {
		t.Fatalf("single element changed: %+v", one)
	}
}

func TestSortByComments_IsPermutation(t *testing.T) {
	posts := postsWithComments(4, 4, 1, 8, 0, 4)
	seen := make(map[string]int, len(posts))
	for _, p := range posts {
		seen[p.ID]++
	}

	sortByComments(posts, app.SortCommentsAsc)

	for _, p := range posts {
		seen[p.ID]--
	}
	for id, n := range seen {
		if n != 0 {
			t.Fatalf("post %q count off by %d after sort", id, n)
		}
	}
	got := comments(posts)
	for i := 0; i < len(got)-1; i++ {
		if got[i] > got[i+1] {
			t.Fatalf("not non-decreasing: %v", got)
		}
	}
}
