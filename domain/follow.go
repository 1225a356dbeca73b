package domain

import (
	"context"
	"time"
)

// FollowRequestStatus is the lifecycle state of a follow request.
// Terminal states are idempotent: a decided request cannot be decided again.
type FollowRequestStatus string

const (
	FollowRequestPending   FollowRequestStatus = "pending"
	FollowRequestAccepted  FollowRequestStatus = "accepted"
	FollowRequestRejected  FollowRequestStatus = "rejected"
	FollowRequestCancelled FollowRequestStatus = "cancelled"
)

// FollowRequest 关注请求（A 请求关注 B）
type FollowRequest struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	Status      FollowRequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Follow 关注关系（A 关注 B），创建于请求被接受时
type Follow struct {
	ID         int64
	FollowerID int64
	FolloweeID int64
	CreatedAt  time.Time
}

// FollowRepository defines the contract for follow persistence. Accept
// creates exactly one edge and bumps both users' counters in the same
// transaction as the state transition.
type FollowRepository interface {
	// CreateRequest inserts a pending request. Returns ErrConflict when a
	// pending request or an accepted edge already exists for the pair.
	CreateRequest(ctx context.Context, req *FollowRequest) error

	GetRequest(ctx context.Context, id int64) (FollowRequest, error)

	// Accept transitions pending -> accepted, creates the follow edge and
	// increments follower/following counters, all atomically. The edge ID is
	// assigned by the caller. Returns ErrConflict when already decided.
	Accept(ctx context.Context, requestID, edgeID int64) error

	// Reject transitions pending -> rejected. ErrConflict when decided.
	Reject(ctx context.Context, requestID int64) error

	// Cancel transitions pending -> cancelled. ErrConflict when decided.
	Cancel(ctx context.Context, requestID int64) error

	// Unfollow removes the edge and decrements both counters atomically,
	// clamped at zero. Returns ErrNotFound when no edge exists.
	Unfollow(ctx context.Context, followerID, followeeID int64) error

	// FolloweeIDs returns every user the given user follows.
	FolloweeIDs(ctx context.Context, followerID int64) ([]int64, error)

	// FetchFollowers lists edges pointing at userID, newest first.
	FetchFollowers(ctx context.Context, userID, cursor, limit int64) (Page[Follow], error)

	// FetchFollowing lists edges originating from userID, newest first.
	FetchFollowing(ctx context.Context, userID, cursor, limit int64) (Page[Follow], error)

	// FetchPendingRequests lists pending requests addressed to userID.
	FetchPendingRequests(ctx context.Context, userID, cursor, limit int64) (Page[FollowRequest], error)
}

// FollowUsecase is the business logic contract behind the follow endpoints.
type FollowUsecase interface {
	Request(ctx context.Context, senderID, recipientID int64) (FollowRequest, error)
	Accept(ctx context.Context, userID, requestID int64) error
	Reject(ctx context.Context, userID, requestID int64) error
	Cancel(ctx context.Context, userID, requestID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	Followers(ctx context.Context, userID int64, cursor string, limit int64) (Page[Profile], error)
	Following(ctx context.Context, userID int64, cursor string, limit int64) (Page[Profile], error)
	PendingRequests(ctx context.Context, userID int64, cursor string, limit int64) (Page[FollowRequest], error)
}
