package utils

// Pagination describes one page of an offset-paginated listing.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalBookings int64 `json:"totalBookings"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalBookings: total,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}
}

// ListMeta is the pagination envelope for non-booking listings.
type ListMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func NewListMeta(page, limit int, total int64) ListMeta {
	p := NewPagination(page, limit, total)
	return ListMeta{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalBookings,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
	}
}
