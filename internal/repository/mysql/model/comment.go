package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/pulseapp/pulse/domain"
)

type Comment struct {
	ID           int64          `gorm:"primaryKey;autoIncrement:false"`
	PostID       int64          `gorm:"column:post_id;index;not null"`
	AuthorID     int64          `gorm:"column:author_id;index;not null"`
	Content      string         `gorm:"type:text;not null"`
	ParentID     int64          `gorm:"column:parent_id;default:0"`
	RootID       int64          `gorm:"column:root_id;index;default:0"`
	LikesCount   int64          `gorm:"default:0"`
	RepliesCount int64          `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"type:datetime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:           c.ID,
		PostID:       c.PostID,
		AuthorID:     c.AuthorID,
		Content:      c.Content,
		ParentID:     c.ParentID,
		RootID:       c.RootID,
		LikesCount:   c.LikesCount,
		RepliesCount: c.RepliesCount,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:           m.ID,
		PostID:       m.PostID,
		AuthorID:     m.AuthorID,
		Content:      m.Content,
		ParentID:     m.ParentID,
		RootID:       m.RootID,
		LikesCount:   m.LikesCount,
		RepliesCount: m.RepliesCount,
		CreatedAt:    m.CreatedAt,
	}
}
