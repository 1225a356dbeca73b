package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

// Follow 关注关系（A 关注 B）
// ux_follow_pair = (follower_id, followee_id)
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false"`
	FollowerID int64     `gorm:"column:follower_id;index;uniqueIndex:ux_follow_pair;not null"`
	FolloweeID int64     `gorm:"column:followee_id;index;uniqueIndex:ux_follow_pair;not null"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Follow) TableName() string {
	return "follows"
}

func (m *Follow) ToDomain() domain.Follow {
	return domain.Follow{
		ID:         m.ID,
		FollowerID: m.FollowerID,
		FolloweeID: m.FolloweeID,
		CreatedAt:  m.CreatedAt,
	}
}

// FollowRequest 关注请求，状态机 pending -> accepted/rejected/cancelled
type FollowRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	SenderID    int64     `gorm:"column:sender_id;index;not null"`
	RecipientID int64     `gorm:"column:recipient_id;index;not null"`
	Status      string    `gorm:"type:varchar(16);index;not null;default:pending"`
	CreatedAt   time.Time `gorm:"type:datetime"`
	UpdatedAt   time.Time `gorm:"type:datetime"`
}

func (FollowRequest) TableName() string {
	return "follow_requests"
}

func (m *FollowRequest) ToDomain() domain.FollowRequest {
	return domain.FollowRequest{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Status:      domain.FollowRequestStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func NewFollowRequestFromDomain(r *domain.FollowRequest) *FollowRequest {
	return &FollowRequest{
		ID:          r.ID,
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
