package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/pulseapp/pulse/domain"
)

// Notification 通知，软删除保证 (sender, recipient, type, target) 同一时刻
// 至多一条存活记录
type Notification struct {
	ID              int64          `gorm:"primaryKey;autoIncrement:false"`
	SenderID        int64          `gorm:"column:sender_id;index;not null"`
	RecipientID     int64          `gorm:"column:recipient_id;index;not null"`
	Type            string         `gorm:"type:varchar(24);index;not null"`
	PostID          int64          `gorm:"column:post_id;default:0"`
	CommentID       int64          `gorm:"column:comment_id;default:0"`
	FollowRequestID int64          `gorm:"column:follow_request_id;default:0"`
	IsRead          bool           `gorm:"default:false"`
	CreatedAt       time.Time      `gorm:"type:datetime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

func NewNotificationFromDomain(n *domain.Notification) *Notification {
	return &Notification{
		ID:              n.ID,
		SenderID:        n.SenderID,
		RecipientID:     n.RecipientID,
		Type:            string(n.Type),
		PostID:          n.PostID,
		CommentID:       n.CommentID,
		FollowRequestID: n.FollowReqID,
		IsRead:          n.IsRead,
		CreatedAt:       n.CreatedAt,
	}
}

func (m *Notification) ToDomain() domain.Notification {
	return domain.Notification{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Type:        domain.NotificationType(m.Type),
		PostID:      m.PostID,
		CommentID:   m.CommentID,
		FollowReqID: m.FollowRequestID,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}
