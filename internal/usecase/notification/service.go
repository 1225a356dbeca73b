package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository"
)

type Service struct {
	notifRepo domain.NotificationRepository
	profiles  domain.ProfileProvider
}

var _ domain.NotificationUsecase = (*Service)(nil)

// NewService will create a new notification service object
func NewService(notifRepo domain.NotificationRepository, profiles domain.ProfileProvider) *Service {
	return &Service{notifRepo: notifRepo, profiles: profiles}
}

func (s *Service) Fetch(ctx context.Context, recipientID int64, cursor string, limit int64) (domain.Page[domain.Notification], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}
	limit = domain.ClampLimit(limit)

	page, err := s.notifRepo.Fetch(ctx, recipientID, boundary, limit)
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}
	s.fillSenders(ctx, page.Items)
	return page, nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID, id int64) error {
	return s.notifRepo.MarkRead(ctx, recipientID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.notifRepo.MarkAllRead(ctx, recipientID)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	return s.notifRepo.CountUnread(ctx, recipientID)
}

func (s *Service) fillSenders(ctx context.Context, items []domain.Notification) {
	if len(items) == 0 {
		return
	}
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].SenderID
	}
	profiles, err := s.profiles.GetProfiles(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to fill notification sender profiles: %v", err)
		return
	}
	for i := range items {
		if p, ok := profiles[items[i].SenderID]; ok {
			profile := p
			items[i].Sender = &profile
		}
	}
}
