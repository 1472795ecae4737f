package response

import (
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/utils"
)

// ListPage is what every list template renders: rows, pager and the notice
// shown when the rows are a cached copy.
type ListPage[R any] struct {
	Rows       []R
	Query      request.ListQuery
	Page       int
	TotalPages int
	Total      int64
	Stale      bool
	Notice     string
}

func (p *ListPage[R]) Pages() []int { return utils.PageNumbers(p.TotalPages) }

func (p *ListPage[R]) HasPrev() bool { return p.Page > 1 }
func (p *ListPage[R]) HasNext() bool { return p.Page < p.TotalPages }

func (p *ListPage[R]) Prev() int { return utils.ClampPage(p.Page-1, p.TotalPages) }
func (p *ListPage[R]) Next() int { return utils.ClampPage(p.Page+1, p.TotalPages) }

// PageURL is the console link to page, keeping filters and tab.
func (p *ListPage[R]) PageURL(page int) string {
	return "?" + p.Query.WithPage(page).Encode()
}
