package domain

import (
	"context"
	"time"
)

// Comment domain model. A reply carries the id of its direct parent and of
// the root comment of its thread. Soft-deleted comments are excluded from
// listings but remain valid notification targets.
type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	AuthorID     int64     `json:"author_id"`
	Content      string    `json:"content"`
	ParentID     int64     `json:"parent_id"`
	RootID       int64     `json:"root_id"`
	LikesCount   int64     `json:"likes_count"`
	RepliesCount int64     `json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`

	// Author 评论作者信息
	Author *Profile `json:"author,omitempty"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies,omitempty"`
}

// CommentLike is a like edge on a comment, unique per (user, comment).
type CommentLike struct {
	ID        int64
	CommentID int64
	UserID    int64
	CreatedAt time.Time
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	// Store creates the comment and bumps posts.comments_count (root) or the
	// parent's replies_count (reply) in the same transaction.
	Store(ctx context.Context, c *Comment) error

	// SoftDelete marks the comment deleted and decrements the counter Store
	// bumped, clamped at zero. Returns ErrNotFound when already gone.
	SoftDelete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchRoots 获取一级评论
	FetchRoots(ctx context.Context, postID, cursor, limit int64, excluded []int64) (Page[*Comment], error)

	// FetchReplies 获取指定根评论ID列表的所有子回复
	FetchReplies(ctx context.Context, rootIDs []int64, excluded []int64) ([]*Comment, error)

	// AddLike / RemoveLike mirror the post like contract on comments.
	AddLike(ctx context.Context, like *CommentLike) error
	RemoveLike(ctx context.Context, commentID, userID int64) error
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	Create(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, userID, commentID int64) error
	FetchByPost(ctx context.Context, viewerID, postID int64, cursor string, limit int64) (Page[*Comment], error)
	Like(ctx context.Context, userID, commentID int64) error
	Unlike(ctx context.Context, userID, commentID int64) error
}
