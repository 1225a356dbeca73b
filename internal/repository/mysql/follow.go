package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

type followRepository struct {
	DB *gorm.DB
}

var _ domain.FollowRepository = (*followRepository)(nil)

func NewFollowRepository(db *gorm.DB) *followRepository {
	return &followRepository{db}
}

func (m *followRepository) CreateRequest(ctx context.Context, req *domain.FollowRequest) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		err := tx.Model(&model.FollowRequest{}).
			Where("sender_id = ? AND recipient_id = ? AND status = ?",
				req.SenderID, req.RecipientID, string(domain.FollowRequestPending)).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return domain.ErrConflict
		}

		var following int64
		err = tx.Model(&model.Follow{}).
			Where("follower_id = ? AND followee_id = ?", req.SenderID, req.RecipientID).
			Count(&following).Error
		if err != nil {
			return err
		}
		if following > 0 {
			return domain.ErrConflict
		}

		req.Status = domain.FollowRequestPending
		return tx.Create(model.NewFollowRequestFromDomain(req)).Error
	})
}

func (m *followRepository) GetRequest(ctx context.Context, id int64) (domain.FollowRequest, error) {
	var req model.FollowRequest
	err := m.DB.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FollowRequest{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.FollowRequest{}, err
	}
	return req.ToDomain(), nil
}

// Accept flips pending -> accepted, creates the edge and bumps both users'
// counters, all inside one transaction. The guarded state transition makes
// a second accept a clean ErrConflict with no counter drift.
func (m *followRepository) Accept(ctx context.Context, requestID, edgeID int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.FollowRequest
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			return domain.ErrNotFound
		}

		result := tx.Model(&model.FollowRequest{}).
			Where("id = ? AND status = ?", requestID, string(domain.FollowRequestPending)).
			Update("status", string(domain.FollowRequestAccepted))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrConflict
		}

		edge := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Follow{ID: edgeID, FollowerID: req.SenderID, FolloweeID: req.RecipientID})
		if edge.Error != nil {
			return edge.Error
		}
		if edge.RowsAffected == 0 {
			// edge already there, counters were bumped when it was created
			return nil
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", req.RecipientID).
			Update("followers_count", gorm.Expr("followers_count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", req.SenderID).
			Update("following_count", gorm.Expr("following_count + ?", 1)).Error
	})
}

func (m *followRepository) Reject(ctx context.Context, requestID int64) error {
	return m.decide(ctx, requestID, domain.FollowRequestRejected)
}

func (m *followRepository) Cancel(ctx context.Context, requestID int64) error {
	return m.decide(ctx, requestID, domain.FollowRequestCancelled)
}

func (m *followRepository) decide(ctx context.Context, requestID int64, status domain.FollowRequestStatus) error {
	result := m.DB.WithContext(ctx).
		Model(&model.FollowRequest{}).
		Where("id = ? AND status = ?", requestID, string(domain.FollowRequestPending)).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (m *followRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&model.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Model(&model.User{}).
			Where("id = ? AND followers_count > 0", followeeID).
			Update("followers_count", gorm.Expr("followers_count - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ? AND following_count > 0", followerID).
			Update("following_count", gorm.Expr("following_count - ?", 1)).Error
	})
}

func (m *followRepository) FolloweeIDs(ctx context.Context, followerID int64) ([]int64, error) {
	ids := []int64{}
	err := m.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (m *followRepository) FetchFollowers(ctx context.Context, userID, cursor, limit int64) (domain.Page[domain.Follow], error) {
	return m.fetchEdges(ctx, "followee_id = ?", userID, cursor, limit)
}

func (m *followRepository) FetchFollowing(ctx context.Context, userID, cursor, limit int64) (domain.Page[domain.Follow], error) {
	return m.fetchEdges(ctx, "follower_id = ?", userID, cursor, limit)
}

func (m *followRepository) fetchEdges(ctx context.Context, cond string, userID, cursor, limit int64) (domain.Page[domain.Follow], error) {
	var edges []model.Follow
	err := m.DB.WithContext(ctx).
		Where(cond, userID).
		Scopes(scopeKeyset(cursor, limit)).
		Find(&edges).Error
	if err != nil {
		return domain.Page[domain.Follow]{}, err
	}
	rows := make([]domain.Follow, len(edges))
	for i := range edges {
		rows[i] = edges[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(f domain.Follow) int64 { return f.ID }), nil
}

func (m *followRepository) FetchPendingRequests(ctx context.Context, userID, cursor, limit int64) (domain.Page[domain.FollowRequest], error) {
	var reqs []model.FollowRequest
	err := m.DB.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, string(domain.FollowRequestPending)).
		Scopes(scopeKeyset(cursor, limit)).
		Find(&reqs).Error
	if err != nil {
		return domain.Page[domain.FollowRequest]{}, err
	}
	rows := make([]domain.FollowRequest, len(reqs))
	for i := range reqs {
		rows[i] = reqs[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(r domain.FollowRequest) int64 { return r.ID }), nil
}
