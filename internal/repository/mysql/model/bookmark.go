package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

// Bookmark 收藏关系
// ux_bookmark = (user_id, post_id)
type Bookmark struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	PostID    int64     `gorm:"column:post_id;index;uniqueIndex:ux_bookmark;not null"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:ux_bookmark;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func NewBookmarkFromDomain(b *domain.Bookmark) *Bookmark {
	return &Bookmark{
		ID:        b.ID,
		PostID:    b.PostID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	}
}

// Share 转发关系
// ux_share = (user_id, post_id)
type Share struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	PostID    int64     `gorm:"column:post_id;index;uniqueIndex:ux_share;not null"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:ux_share;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Share) TableName() string {
	return "shares"
}

func NewShareFromDomain(s *domain.Share) *Share {
	return &Share{
		ID:        s.ID,
		PostID:    s.PostID,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
	}
}
