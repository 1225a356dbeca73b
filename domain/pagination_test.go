package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, int64(PageLimitDefault), ClampLimit(0))
	assert.Equal(t, int64(PageLimitDefault), ClampLimit(-5))
	assert.Equal(t, int64(7), ClampLimit(7))
	assert.Equal(t, int64(PageLimitMax), ClampLimit(500))
}

func TestBuildPage(t *testing.T) {
	type row struct{ ID int64 }
	cursorOf := func(r row) int64 { return r.ID }

	// probe row beyond the limit signals another page
	page := BuildPage([]row{{5}, {4}, {3}}, 2, cursorOf)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.Pagination.HasMore)
	assert.Equal(t, "4", page.Pagination.NextCursor)

	// exactly limit rows means this is the last page
	page = BuildPage([]row{{2}, {1}}, 2, cursorOf)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.Pagination.HasMore)
	assert.Empty(t, page.Pagination.NextCursor)

	page = BuildPage([]row{}, 2, cursorOf)
	assert.Empty(t, page.Items)
	assert.False(t, page.Pagination.HasMore)
}
