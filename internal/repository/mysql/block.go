package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

type blockRepository struct {
	DB *gorm.DB
}

var _ domain.BlockRepository = (*blockRepository)(nil)

func NewBlockRepository(db *gorm.DB) *blockRepository {
	return &blockRepository{db}
}

// Create 幂等：重复拉黑不报错
func (m *blockRepository) Create(ctx context.Context, edge *domain.BlockEdge) (bool, error) {
	result := m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewBlockFromDomain(edge))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m *blockRepository) Delete(ctx context.Context, blockerID, blockedID int64) error {
	result := m.DB.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *blockRepository) BlockedIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := m.DB.WithContext(ctx).
		Model(&model.Block{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &ids).Error
	return ids, err
}

func (m *blockRepository) BlockerIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := m.DB.WithContext(ctx).
		Model(&model.Block{}).
		Where("blocked_id = ?", userID).
		Pluck("blocker_id", &ids).Error
	return ids, err
}

func (m *blockRepository) FetchBlocked(ctx context.Context, userID, cursor, limit int64) (domain.Page[domain.BlockEdge], error) {
	var edges []model.Block
	err := m.DB.WithContext(ctx).
		Where("blocker_id = ?", userID).
		Scopes(scopeKeyset(cursor, limit)).
		Find(&edges).Error
	if err != nil {
		return domain.Page[domain.BlockEdge]{}, err
	}
	rows := make([]domain.BlockEdge, len(edges))
	for i := range edges {
		rows[i] = edges[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(e domain.BlockEdge) int64 { return e.ID }), nil
}
