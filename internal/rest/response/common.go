package response

import "github.com/pulseapp/pulse/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

// Pagination is the cursor envelope of every listing response.
// NextCursor is null on the last page.
type Pagination struct {
	HasMore    bool    `json:"hasMore"`
	NextCursor *string `json:"nextCursor"`
}

// Page wraps listing items with their pagination envelope.
type Page struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPaginationFromDomain(p domain.Pagination) Pagination {
	out := Pagination{HasMore: p.HasMore}
	if p.HasMore {
		cursor := p.NextCursor
		out.NextCursor = &cursor
	}
	return out
}

// NewPage builds the listing envelope. Items must already be response types.
func NewPage(items any, p domain.Pagination) Page {
	return Page{Items: items, Pagination: NewPaginationFromDomain(p)}
}
