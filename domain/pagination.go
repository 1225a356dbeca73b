package domain

import "strconv"

// CursorInitial is the sentinel cursor that means "start from the newest row".
const CursorInitial = "initial"

const (
	PageLimitDefault = 10
	PageLimitMin     = 1
	PageLimitMax     = 50
)

// Pagination is the keyset position returned with every listing.
// NextCursor is empty when HasMore is false.
type Pagination struct {
	HasMore    bool
	NextCursor string
}

// Page is the result of a keyset-paginated fetch.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ClampLimit bounds a requested page size to [PageLimitMin, PageLimitMax].
// Non-positive values fall back to the default.
func ClampLimit(limit int64) int64 {
	if limit <= 0 {
		return PageLimitDefault
	}
	if limit < PageLimitMin {
		return PageLimitMin
	}
	if limit > PageLimitMax {
		return PageLimitMax
	}
	return limit
}

// BuildPage trims the probe row fetched beyond limit and derives the next
// cursor from the last returned row. rows must be ordered by id descending
// and contain at most limit+1 entries.
func BuildPage[T any](rows []T, limit int64, cursorOf func(T) int64) Page[T] {
	page := Page[T]{Items: rows}
	if int64(len(rows)) > limit {
		page.Items = rows[:limit]
		page.Pagination.HasMore = true
		last := page.Items[len(page.Items)-1]
		page.Pagination.NextCursor = strconv.FormatInt(cursorOf(last), 10)
	}
	return page
}
