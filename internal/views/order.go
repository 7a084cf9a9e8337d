package views

import (
	"slices"
	"strings"

	"github.com/naveenspark/gitone/pkg/domain"
)

// SortByRecency returns a copy ordered by PushedAt, newest first.
// Equal timestamps keep their relative order.
func SortByRecency(repos []domain.Repository) []domain.Repository {
	out := slices.Clone(repos)
	slices.SortStableFunc(out, func(a, b domain.Repository) int {
		return b.PushedAt.Compare(a.PushedAt)
	})
	return out
}

// SortByStars returns a copy ordered by StarCount, highest first.
// Equal counts keep their relative order.
func SortByStars(repos []domain.Repository) []domain.Repository {
	out := slices.Clone(repos)
	slices.SortStableFunc(out, func(a, b domain.Repository) int {
		return b.StarCount - a.StarCount
	})
	return out
}

// Sort dispatches on mode.
func Sort(repos []domain.Repository, mode domain.SortMode) []domain.Repository {
	if mode == domain.SortByStars {
		return SortByStars(repos)
	}
	return SortByRecency(repos)
}

// FilterByName keeps repositories whose name contains query, ignoring case.
// Callers restore the cached list instead of filtering on an empty query;
// an empty query here returns a copy of repos.
func FilterByName(repos []domain.Repository, query string) []domain.Repository {
	q := strings.ToLower(query)
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// Private keeps private repositories.
func Private(repos []domain.Repository) []domain.Repository {
	return keep(repos, func(r domain.Repository) bool { return r.IsPrivate })
}

// Archived keeps archived repositories.
func Archived(repos []domain.Repository) []domain.Repository {
	return keep(repos, func(r domain.Repository) bool { return r.IsArchived })
}

// Recent returns at most n repositories from the head of repos.
func Recent(repos []domain.Repository, n int) []domain.Repository {
	if n < 0 {
		n = 0
	}
	return slices.Clone(repos[:min(n, len(repos))])
}

func keep(repos []domain.Repository, pred func(domain.Repository) bool) []domain.Repository {
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
