package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

// Block 拉黑关系（有向边）
// ux_block_pair = (blocker_id, blocked_id)
type Block struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	BlockerID int64     `gorm:"column:blocker_id;index;uniqueIndex:ux_block_pair;not null"`
	BlockedID int64     `gorm:"column:blocked_id;index;uniqueIndex:ux_block_pair;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Block) TableName() string {
	return "blocks"
}

func NewBlockFromDomain(e *domain.BlockEdge) *Block {
	return &Block{
		ID:        e.ID,
		BlockerID: e.BlockerID,
		BlockedID: e.BlockedID,
		CreatedAt: e.CreatedAt,
	}
}

func (m *Block) ToDomain() domain.BlockEdge {
	return domain.BlockEdge{
		ID:        m.ID,
		BlockerID: m.BlockerID,
		BlockedID: m.BlockedID,
		CreatedAt: m.CreatedAt,
	}
}
