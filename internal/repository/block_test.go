package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
	redisCache "github.com/pulseapp/pulse/internal/repository/redis"
)

// stubBlockRepo is an in-memory domain.BlockRepository that counts source
// reads, so tests can tell cache hits from rebuilds.
type stubBlockRepo struct {
	blocked     map[int64][]int64
	blockers    map[int64][]int64
	sourceReads int
}

func newStubBlockRepo() *stubBlockRepo {
	return &stubBlockRepo{
		blocked:  map[int64][]int64{},
		blockers: map[int64][]int64{},
	}
}

func (s *stubBlockRepo) Create(_ context.Context, edge *domain.BlockEdge) (bool, error) {
	for _, id := range s.blocked[edge.BlockerID] {
		if id == edge.BlockedID {
			return false, nil
		}
	}
	s.blocked[edge.BlockerID] = append(s.blocked[edge.BlockerID], edge.BlockedID)
	s.blockers[edge.BlockedID] = append(s.blockers[edge.BlockedID], edge.BlockerID)
	return true, nil
}

func (s *stubBlockRepo) Delete(_ context.Context, blockerID, blockedID int64) error {
	list := s.blocked[blockerID]
	for i, id := range list {
		if id == blockedID {
			s.blocked[blockerID] = append(list[:i], list[i+1:]...)
			rev := s.blockers[blockedID]
			for j, b := range rev {
				if b == blockerID {
					s.blockers[blockedID] = append(rev[:j], rev[j+1:]...)
					break
				}
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubBlockRepo) BlockedIDs(_ context.Context, userID int64) ([]int64, error) {
	s.sourceReads++
	return append([]int64{}, s.blocked[userID]...), nil
}

func (s *stubBlockRepo) BlockerIDs(_ context.Context, userID int64) ([]int64, error) {
	s.sourceReads++
	return append([]int64{}, s.blockers[userID]...), nil
}

func (s *stubBlockRepo) FetchBlocked(_ context.Context, _, _, _ int64) (domain.Page[domain.BlockEdge], error) {
	return domain.Page[domain.BlockEdge]{}, nil
}

func newTestBlockGraph(t *testing.T) (*blockGraph, *stubBlockRepo, domain.BlockCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newStubBlockRepo()
	cache := redisCache.NewBlockCache(client)
	return NewBlockGraph(repo, cache), repo, cache
}

func TestBlockGraph_ExcludedAuthorsUnion(t *testing.T) {
	g, repo, _ := newTestBlockGraph(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.BlockEdge{BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.BlockEdge{BlockerID: 3, BlockedID: 1})
	require.NoError(t, err)
	// both directions at once: 1 blocked 4 and 4 blocked 1
	_, err = repo.Create(ctx, &domain.BlockEdge{BlockerID: 1, BlockedID: 4})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.BlockEdge{BlockerID: 4, BlockedID: 1})
	require.NoError(t, err)

	excluded, err := g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3, 4}, excluded)
}

func TestBlockGraph_CachesAfterFirstRead(t *testing.T) {
	g, repo, _ := newTestBlockGraph(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.BlockEdge{BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)

	_, err = g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	reads := repo.sourceReads

	_, err = g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, reads, repo.sourceReads, "second read must be served from cache")
}

func TestBlockGraph_BlockInvalidatesStaleCache(t *testing.T) {
	g, _, cache := newTestBlockGraph(t)
	ctx := context.Background()

	// stale entry from before the edge existed
	require.NoError(t, cache.SetBlockedList(ctx, 1, []int64{}))
	require.NoError(t, cache.SetBlockerList(ctx, 2, []int64{}))

	require.NoError(t, g.Block(ctx, 1, 2))

	excluded, err := g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, excluded)

	// the reverse direction sees the symmetric exclusion
	excluded, err = g.ExcludedAuthors(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, excluded)
}

func TestBlockGraph_UnblockRestoresVisibility(t *testing.T) {
	g, _, _ := newTestBlockGraph(t)
	ctx := context.Background()

	require.NoError(t, g.Block(ctx, 1, 2))
	excluded, err := g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, excluded)

	require.NoError(t, g.Unblock(ctx, 1, 2))
	excluded, err = g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, excluded)

	assert.ErrorIs(t, g.Unblock(ctx, 1, 2), domain.ErrNotFound)
}

func TestBlockGraph_CacheReadErrorFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newStubBlockRepo()
	g := NewBlockGraph(repo, redisCache.NewBlockCache(client))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.BlockEdge{BlockerID: 1, BlockedID: 2})
	require.NoError(t, err)

	// wrong type under the cache key forces a read error, not a miss
	mr.HSet("block:of:1", "field", "value")

	excluded, err := g.ExcludedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, excluded)
}
