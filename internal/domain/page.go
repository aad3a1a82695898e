package domain

// DefaultPageSize is the number of rows returned per page by list endpoints.
const DefaultPageSize = 100

// PageRequest identifies a 1-based page of a listing.
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest builds a PageRequest for the given page number using the
// default page size. Page numbers below 1 are clamped to 1.
func NewPageRequest(page int) PageRequest {
	if page < 1 {
		page = 1
	}
	return PageRequest{Page: page, PerPage: DefaultPageSize}
}

// Offset returns the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the page size, falling back to DefaultPageSize.
func (p PageRequest) Limit() int {
	if p.PerPage <= 0 {
		return DefaultPageSize
	}
	return p.PerPage
}

// Page is one page of a listing together with the total row count.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	Total       int64
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return &Page[U]{
		Items:       items,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
}
