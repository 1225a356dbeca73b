package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

type notificationRepository struct {
	DB *gorm.DB
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{db}
}

func (m *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	notifModel := model.NewNotificationFromDomain(n)
	if err := m.DB.WithContext(ctx).Create(notifModel).Error; err != nil {
		return err
	}
	n.CreatedAt = notifModel.CreatedAt
	return nil
}

// Remove soft-deletes the live notification matching the tuple. Removal by
// predicate instead of by id keeps undo commutative with a racing create:
// whichever live row exists for the tuple is the one retired.
func (m *notificationRepository) Remove(ctx context.Context, senderID, recipientID int64, t domain.NotificationType, ref domain.NotificationRef) error {
	query := m.DB.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ? AND type = ?", senderID, recipientID, string(t))
	// a zero ref field means "not set" and constrains nothing; within one
	// type the ref shape is fixed, so the live row is still unique
	if ref.PostID != 0 {
		query = query.Where("post_id = ?", ref.PostID)
	}
	if ref.CommentID != 0 {
		query = query.Where("comment_id = ?", ref.CommentID)
	}
	if ref.FollowRequestID != 0 {
		query = query.Where("follow_request_id = ?", ref.FollowRequestID)
	}
	result := query.Delete(&model.Notification{})
	// zero rows is fine: the matching create may never have happened
	return result.Error
}

func (m *notificationRepository) Fetch(ctx context.Context, recipientID, cursor, limit int64) (domain.Page[domain.Notification], error) {
	var notifs []model.Notification
	err := m.DB.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Scopes(scopeKeyset(cursor, limit)).
		Find(&notifs).Error
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}
	rows := make([]domain.Notification, len(notifs))
	for i := range notifs {
		rows[i] = notifs[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(n domain.Notification) int64 { return n.ID }), nil
}

func (m *notificationRepository) MarkRead(ctx context.Context, recipientID, id int64) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	return m.DB.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (m *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
