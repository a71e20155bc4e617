package repositories

// Pagination describes the page of results returned by a filtered listing
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// NewPagination computes page metadata from the requested page, the page size,
// the total row count and the number of items actually on the page. From/To
// stay nil for an empty page.
func NewPagination(page, perPage int, total int64, count int) *Pagination {
	if page < 1 {
		page = 1
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	p := &Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}

	if count > 0 {
		from := (page-1)*perPage + 1
		to := from + count - 1
		p.From = &from
		p.To = &to
	}

	return p
}
