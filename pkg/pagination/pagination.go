package pagination

import (
	"gorm.io/gorm"
)

const (
	// PerPage is the fixed page size of every listing endpoint.
	PerPage = 15
	// MaxPage bounds page numbers so offsets cannot overflow.
	MaxPage = 1_000_000
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the page into [1, MaxPage] and applies the default page size.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PerPage <= 0 || p.PerPage > PerPage {
		p.PerPage = PerPage
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Page is the listing envelope rendered by list endpoints.
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	Data        []T   `json:"data"`
	From        *int  `json:"from"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	To          *int  `json:"to"`
	Total       int64 `json:"total"`
}

// NewPage builds the envelope for one page of items out of total rows.
// From and To are 1-based row positions and stay null on an empty page.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	p := params.Normalize()
	if items == nil {
		items = []T{}
	}

	lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	page := Page[T]{
		CurrentPage: p.Page,
		Data:        items,
		LastPage:    lastPage,
		PerPage:     p.PerPage,
		Total:       total,
	}
	if len(items) > 0 {
		from := p.Offset() + 1
		to := from + len(items) - 1
		page.From = &from
		page.To = &to
	}
	return page
}

// Map converts the items of a page while keeping its counters.
func Map[T, U any](page Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(page.Data))
	for _, item := range page.Data {
		out = append(out, fn(item))
	}
	return Page[U]{
		CurrentPage: page.CurrentPage,
		Data:        out,
		From:        page.From,
		LastPage:    page.LastPage,
		PerPage:     page.PerPage,
		To:          page.To,
		Total:       page.Total,
	}
}

// Scope applies LIMIT/OFFSET for the page to a GORM query.
func Scope(params Params) func(*gorm.DB) *gorm.DB {
	p := params.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}
