package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/pulseapp/pulse/domain"
)

type Post struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false"`
	AuthorID      int64          `gorm:"column:author_id;index;not null"`
	Content       string         `gorm:"type:text;not null"`
	ImageURL      string         `gorm:"column:image_url;type:varchar(255)"`
	LikesCount    int64          `gorm:"default:0"`
	CommentsCount int64          `gorm:"default:0"`
	SharesCount   int64          `gorm:"default:0"`
	CreatedAt     time.Time      `gorm:"type:datetime"`
	UpdatedAt     time.Time      `gorm:"type:datetime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:            m.ID,
		AuthorID:      m.AuthorID,
		Content:       m.Content,
		ImageURL:      m.ImageURL,
		LikesCount:    m.LikesCount,
		CommentsCount: m.CommentsCount,
		SharesCount:   m.SharesCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		SharesCount:   p.SharesCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
