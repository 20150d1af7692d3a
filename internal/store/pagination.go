package store

// Pagination defaults. Out-of-range client values are corrected, never
// rejected; a bad page number is a preference, not an error.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageParams contains offset pagination request parameters.
type PageParams struct {
	Page  int // 1-based page number (defaults to 1)
	Limit int // Items per page (defaults to 10, capped at 100)
}

// DefaultPageParams returns sensible defaults.
func DefaultPageParams() PageParams {
	return PageParams{Page: DefaultPage, Limit: DefaultLimit}
}

// Normalize corrects out-of-range pagination parameters in place.
func (p *PageParams) Normalize() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the number of rows to skip for the current page.
// Call Normalize first.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResult contains one page of data plus paging metadata.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult assembles a PageResult, computing TotalPages from the total
// count and the (normalized) params. An empty result set has zero pages.
func NewPageResult[T any](items []T, total int, params PageParams) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	return &PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}
