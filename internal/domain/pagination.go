package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [lo, hi) slice indexes of the current page within total items.
// A non-positive PageSize selects everything.
func (p PaginationParams) Bounds(total int) (lo, hi int) {
	if p.PageSize <= 0 {
		return 0, total
	}
	lo = min(p.Offset(), total)
	hi = min(lo+p.PageSize, total)
	return lo, hi
}
