package domain

import (
	"context"
	"time"
)

// BlockEdge is a directed block, unique per ordered (blocker, blocked) pair.
// Visibility removal is symmetric: one edge in either direction hides both
// users from each other in feeds and push delivery.
type BlockEdge struct {
	ID        int64
	BlockerID int64
	BlockedID int64
	CreatedAt time.Time
}

// BlockRepository defines the contract for block edge persistence.
type BlockRepository interface {
	// Create inserts the edge. Idempotent: created is false when the edge
	// already existed and nothing changed.
	Create(ctx context.Context, edge *BlockEdge) (created bool, err error)

	// Delete removes the edge. Returns ErrNotFound when absent.
	Delete(ctx context.Context, blockerID, blockedID int64) error

	// BlockedIDs returns the ids of users blocked by userID.
	BlockedIDs(ctx context.Context, userID int64) ([]int64, error)

	// BlockerIDs returns the ids of users who blocked userID.
	BlockerIDs(ctx context.Context, userID int64) ([]int64, error)

	// FetchBlocked lists the user's block edges, newest first.
	FetchBlocked(ctx context.Context, userID, cursor, limit int64) (Page[BlockEdge], error)
}

// BlockCache is the cache store for the two directional block lists.
// Get methods return ErrCacheMiss when the key is absent.
type BlockCache interface {
	GetBlockedList(ctx context.Context, userID int64) ([]int64, error)
	SetBlockedList(ctx context.Context, userID int64, ids []int64) error
	GetBlockerList(ctx context.Context, userID int64) ([]int64, error)
	SetBlockerList(ctx context.Context, userID int64, ids []int64) error

	// DeleteLists drops both directional lists for every given user.
	DeleteLists(ctx context.Context, userIDs ...int64) error
}

// BlockGraph answers "excluded author set" queries cache-aside and owns the
// invalidation of both parties' lists on every edge mutation.
type BlockGraph interface {
	// Block inserts the edge (no-op when present) and invalidates both
	// users' cached lists.
	Block(ctx context.Context, blockerID, blockedID int64) error

	// Unblock removes the edge and invalidates the same caches.
	// Returns ErrNotFound when no edge exists.
	Unblock(ctx context.Context, blockerID, blockedID int64) error

	// ExcludedAuthors is the union of "users I blocked" and "users who
	// blocked me", the filter predicate of every content query. A cache
	// read error falls through to the source; a cache write error after a
	// successful source read is logged, not surfaced.
	ExcludedAuthors(ctx context.Context, userID int64) ([]int64, error)
}

// BlockUsecase is the business logic contract behind the block endpoints.
type BlockUsecase interface {
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) error
	FetchBlocked(ctx context.Context, userID int64, cursor string, limit int64) (Page[Profile], error)
}
