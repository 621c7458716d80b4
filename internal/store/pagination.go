package store

import "math"

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects one page of a list query. A zero Page means
// "no pagination": the whole table is returned.
type PaginationParams struct {
	Page     int
	PageSize int
	Search   string // Matched against name/email or title
}

// PaginationResult describes the returned page.
type PaginationResult struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	HasPrev     bool  `json:"hasPrev"`
	HasNext     bool  `json:"hasNext"`
}

// NewPaginationParams clamps page and pageSize into range.
func NewPaginationParams(page, pageSize int, search string) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize, Search: search}
}

// Paged reports whether a LIMIT/OFFSET should be applied.
func (p PaginationParams) Paged() bool {
	return p.Page > 0 && p.PageSize > 0
}

func (p PaginationParams) Offset() int {
	if !p.Paged() {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// CalculatePagination derives page metadata from a total row count.
func CalculatePagination(total int64, currentPage, pageSize int) PaginationResult {
	if pageSize < 1 {
		pageSize = int(max(total, 1))
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages && totalPages > 0 {
		currentPage = totalPages
	}

	return PaginationResult{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
