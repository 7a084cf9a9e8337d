package views

import "github.com/naveenspark/gitone/pkg/domain"

// PageSize is the number of repositories per dashboard page.
const PageSize = 6

// Page is one slice of a paginated list.
type Page struct {
	Items      []domain.Repository
	Number     int // 1-based, after clamping
	TotalPages int
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	return max(1, (n+size-1)/size)
}

// ClampPage forces page into [1, TotalPages(n, size)].
func ClampPage(page, n, size int) int {
	return min(max(page, 1), TotalPages(n, size))
}

// Paginate returns the requested page, clamped into range first.
func Paginate(repos []domain.Repository, size, page int) Page {
	if size < 1 {
		size = 1
	}
	total := TotalPages(len(repos), size)
	page = ClampPage(page, len(repos), size)
	start := min((page-1)*size, len(repos))
	end := min(page*size, len(repos))
	items := make([]domain.Repository, end-start)
	copy(items, repos[start:end])
	return Page{Items: items, Number: page, TotalPages: total}
}
