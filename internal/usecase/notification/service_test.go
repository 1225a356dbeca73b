package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

type stubNotifRepo struct {
	domain.NotificationRepository
	page domain.Page[domain.Notification]
}

func (s *stubNotifRepo) Fetch(_ context.Context, _, _, _ int64) (domain.Page[domain.Notification], error) {
	return s.page, nil
}

type stubProfiles struct {
	profiles map[int64]domain.Profile
}

func (s *stubProfiles) GetProfile(_ context.Context, userID int64) (domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProfiles) GetProfiles(_ context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	out := map[int64]domain.Profile{}
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubProfiles) Invalidate(context.Context, int64) {}

func TestService_FetchFillsSenders(t *testing.T) {
	repo := &stubNotifRepo{page: domain.Page[domain.Notification]{
		Items: []domain.Notification{
			{ID: 3, SenderID: 1, Type: domain.NotificationLike},
			{ID: 2, SenderID: 9, Type: domain.NotificationComment},
		},
		Pagination: domain.Pagination{HasMore: true, NextCursor: "2"},
	}}
	profiles := &stubProfiles{profiles: map[int64]domain.Profile{
		1: {ID: 1, Username: "alice"},
	}}
	svc := NewService(repo, profiles)

	page, err := svc.Fetch(context.Background(), 5, "initial", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.Items[0].Sender)
	assert.Equal(t, "alice", page.Items[0].Sender.Username)
	// a vanished sender leaves the entry unenriched, not dropped
	assert.Nil(t, page.Items[1].Sender)
	assert.Equal(t, "2", page.Pagination.NextCursor)
}

func TestService_FetchRejectsBadCursor(t *testing.T) {
	svc := NewService(&stubNotifRepo{}, &stubProfiles{})

	_, err := svc.Fetch(context.Background(), 5, "not-a-cursor", 10)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}
