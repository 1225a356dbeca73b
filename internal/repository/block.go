package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/pulseapp/pulse/domain"
)

// blockGraph 协调层，协调块边缓存和数据库
type blockGraph struct {
	repo         domain.BlockRepository
	cache        domain.BlockCache
	rebuildGroup singleflight.Group
}

var _ domain.BlockGraph = (*blockGraph)(nil)

// NewBlockGraph 创建协调层 block graph
func NewBlockGraph(repo domain.BlockRepository, cache domain.BlockCache) *blockGraph {
	return &blockGraph{
		repo:  repo,
		cache: cache,
	}
}

// Block inserts the edge, then invalidates both parties' cached lists.
// Invalidation runs strictly after the write commits so a concurrent reader
// can never re-cache the pre-write truth and keep it.
func (g *blockGraph) Block(ctx context.Context, blockerID, blockedID int64) error {
	edge := &domain.BlockEdge{BlockerID: blockerID, BlockedID: blockedID}
	if _, err := g.repo.Create(ctx, edge); err != nil {
		return err
	}
	g.invalidate(ctx, blockerID, blockedID)
	return nil
}

func (g *blockGraph) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	if err := g.repo.Delete(ctx, blockerID, blockedID); err != nil {
		return err
	}
	g.invalidate(ctx, blockerID, blockedID)
	return nil
}

func (g *blockGraph) invalidate(ctx context.Context, userIDs ...int64) {
	if err := g.cache.DeleteLists(ctx, userIDs...); err != nil {
		// TTL bounds how long the stale lists survive
		logrus.Warnf("failed to invalidate block lists for %v: %v", userIDs, err)
	}
}

// ExcludedAuthors 获取双向拉黑名单的并集
func (g *blockGraph) ExcludedAuthors(ctx context.Context, userID int64) ([]int64, error) {
	blocked, err := g.listWith(ctx,
		fmt.Sprintf("blocked:%d", userID),
		func() ([]int64, error) { return g.cache.GetBlockedList(ctx, userID) },
		func() ([]int64, error) { return g.repo.BlockedIDs(ctx, userID) },
		func(ids []int64) error { return g.cache.SetBlockedList(ctx, userID, ids) },
	)
	if err != nil {
		return nil, err
	}

	blockers, err := g.listWith(ctx,
		fmt.Sprintf("blockers:%d", userID),
		func() ([]int64, error) { return g.cache.GetBlockerList(ctx, userID) },
		func() ([]int64, error) { return g.repo.BlockerIDs(ctx, userID) },
		func(ids []int64) error { return g.cache.SetBlockerList(ctx, userID, ids) },
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(blocked)+len(blockers))
	union := make([]int64, 0, len(blocked)+len(blockers))
	for _, id := range blocked {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	for _, id := range blockers {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return union, nil
}

// listWith serves one directional list cache-aside. A cache read error is
// non-fatal and falls through to the source; a cache write error after a
// successful source read is logged, not surfaced. Rebuilds collapse into a
// single source query per key via singleflight.
func (g *blockGraph) listWith(ctx context.Context, key string, fromCache, fromSource func() ([]int64, error), toCache func([]int64) error) ([]int64, error) {
	ids, err := fromCache()
	if err == nil {
		return ids, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("block list cache read error on %s: %v", key, err)
	}

	result, err, _ := g.rebuildGroup.Do(key, func() (any, error) {
		ids, err := fromSource()
		if err != nil {
			return nil, err
		}
		if err := toCache(ids); err != nil {
			logrus.Warnf("failed to set block list cache %s: %v", key, err)
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]int64), nil
}
