package ports

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit well inside int32 so Skip never overflows.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults, caps the limit at MaxLimit and the page at MaxPage.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip is the number of rows before the first row of the page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// PageResult is a single page of T together with the total match count.
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages is ceil(Total / Limit).
func (r PageResult[T]) Pages() int {
	if r.Limit <= 0 {
		return 0
	}
	return int((r.Total + int64(r.Limit) - 1) / int64(r.Limit))
}
