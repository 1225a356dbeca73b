package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

// PostLike 点赞关系，复合唯一键避免重复点赞
// ux_post_like = (user_id, post_id)
type PostLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	PostID    int64     `gorm:"column:post_id;index;uniqueIndex:ux_post_like;not null"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:ux_post_like;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

func NewPostLikeFromDomain(l *domain.PostLike) *PostLike {
	return &PostLike{
		ID:        l.ID,
		PostID:    l.PostID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

func (m *PostLike) ToDomain() domain.PostLike {
	return domain.PostLike{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// CommentLike mirrors PostLike for comments.
// ux_comment_like = (user_id, comment_id)
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CommentID int64     `gorm:"column:comment_id;index;uniqueIndex:ux_comment_like;not null"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:ux_comment_like;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

func NewCommentLikeFromDomain(l *domain.CommentLike) *CommentLike {
	return &CommentLike{
		ID:        l.ID,
		CommentID: l.CommentID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}
