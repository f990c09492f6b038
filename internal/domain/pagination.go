package domain

// PaginationParams holds offset-based pagination for list endpoints.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the 0-based item offset of the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
