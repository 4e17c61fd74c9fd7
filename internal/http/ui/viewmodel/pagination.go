package viewmodel

import (
	"net/url"
	"strconv"

	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

// DefaultMaxVisible is how many page numbers a pager shows at once.
const DefaultMaxVisible = 5

// Pagination contains pagination metadata for list views.
type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalCount int    `json:"totalCount,omitempty"`
	Pages      []int  `json:"pages"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	PrevURL    string `json:"prevUrl,omitempty"`
	NextURL    string `json:"nextUrl,omitempty"`
}

// PageWindow returns up to maxVisible consecutive page numbers centered on current
// and clamped to [1, total]. It returns nil when total < 1.
func PageWindow(current, total, maxVisible int) []int {
	if total < 1 {
		return nil
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	start := max(1, current-maxVisible/2)
	end := min(total, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// NewPagination builds pager metadata for info. basePath and query are used
// for the previous/next links; the page parameter is overwritten.
func NewPagination(info model.PageInfo, maxVisible int, basePath string, query url.Values) Pagination {
	current := max(info.Current, 1)
	p := Pagination{
		Page:       current,
		TotalPages: info.TotalPages,
		TotalCount: info.TotalItems,
		Pages:      PageWindow(current, info.TotalPages, maxVisible),
		HasPrev:    current > 1 && info.TotalPages > 0,
		HasNext:    current < info.TotalPages,
	}
	if p.HasPrev {
		p.PrevURL = pageURL(basePath, query, current-1)
	}
	if p.HasNext {
		p.NextURL = pageURL(basePath, query, current+1)
	}
	return p
}

func pageURL(basePath string, query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}
