package request

import (
	"net/url"
	"strconv"
	"strings"

	"marketplace-console/pkg/utils"
)

// ListQuery is the page/filter state of a list page, taken from the URL.
type ListQuery struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page,omitempty"`
	Status  string `json:"status,omitempty"`
	Search  string `json:"search,omitempty"`
	Tab     string `json:"tab,omitempty"`
}

// MaxPerPage caps a user supplied limit.
const MaxPerPage = 100

// ParseListQuery reads page, limit, status, search and tab. Non-positive
// numbers fall back to defaults and limit is capped at MaxPerPage.
func ParseListQuery(q url.Values) ListQuery {
	lq := ListQuery{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("limit"), 0),
		Status:  strings.TrimSpace(q.Get("status")),
		Search:  strings.TrimSpace(q.Get("search")),
		Tab:     strings.TrimSpace(q.Get("tab")),
	}
	if lq.PerPage > MaxPerPage {
		lq.PerPage = MaxPerPage
	}
	return lq
}

// Backend renders the query parameters sent to the marketplace API. Tab is
// a console-side filter and is never sent.
func (q ListQuery) Backend() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("limit", strconv.Itoa(q.PerPage))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// Encode renders the query for console links, keeping the tab.
func (q ListQuery) Encode() string {
	v := q.Backend()
	if q.Tab != "" {
		v.Set("tab", q.Tab)
	}
	return v.Encode()
}

// WithPage returns a copy pointing at page.
func (q ListQuery) WithPage(page int) ListQuery {
	q.Page = page
	return q
}
