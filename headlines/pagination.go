package headlines

// pageWindow is the maximum number of page links shown at once.
const pageWindow = 5

// Pagination describes the pagination control for the current result set.
type Pagination struct {
	Current int   `json:"current"`
	Total   int   `json:"total"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
	Pages   []int `json:"pages"`
}

// PageCount returns ceil(totalResults / pageSize), never less than 1.
func PageCount(totalResults, pageSize int) int {
	if pageSize <= 0 || totalResults <= 0 {
		return 1
	}
	return (totalResults + pageSize - 1) / pageSize
}

// NewPagination builds the control for current out of total pages. The page
// links form a window of up to five pages kept around the current page.
func NewPagination(current, total int) Pagination {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}

	start := max(1, current-pageWindow/2)
	end := min(total, start+pageWindow-1)
	start = max(1, end-pageWindow+1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Pagination{
		Current: current,
		Total:   total,
		HasPrev: current > 1,
		HasNext: current < total,
		Pages:   pages,
	}
}
