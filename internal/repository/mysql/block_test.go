package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

func TestBlockRepository_CreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.BlockEdge{ID: 1, BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, &domain.BlockEdge{ID: 2, BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)
	assert.False(t, created)

	ids, err := repo.BlockedIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestBlockRepository_Directions(t *testing.T) {
	db := openTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.BlockEdge{ID: 1, BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.BlockEdge{ID: 2, BlockerID: 3, BlockedID: 1})
	require.NoError(t, err)

	blocked, err := repo.BlockedIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, blocked)

	blockers, err := repo.BlockerIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, blockers)

	// opposite direction edges are independent
	blocked, err = repo.BlockedIDs(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestBlockRepository_DeleteMissingEdge(t *testing.T) {
	db := openTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, 1, 2), domain.ErrNotFound)

	_, err := repo.Create(ctx, &domain.BlockEdge{ID: 1, BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 1, 2), domain.ErrNotFound)
}

func TestBlockRepository_FetchBlockedPaginated(t *testing.T) {
	db := openTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, err := repo.Create(ctx, &domain.BlockEdge{ID: i, BlockerID: 1, BlockedID: 10 + i})
		require.NoError(t, err)
	}

	page, err := repo.FetchBlocked(ctx, 1, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(13), page.Items[0].BlockedID)
	assert.True(t, page.Pagination.HasMore)

	page, err = repo.FetchBlocked(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(11), page.Items[0].BlockedID)
	assert.False(t, page.Pagination.HasMore)
}
