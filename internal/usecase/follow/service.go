package follow

import (
	"context"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
	"github.com/pulseapp/pulse/internal/repository"
)

type Service struct {
	followRepo  domain.FollowRepository
	notifRepo   domain.NotificationRepository
	blocks      domain.BlockGraph
	profiles    domain.ProfileProvider
	broadcaster domain.Broadcaster
	ids         *idgen.Generator
}

var _ domain.FollowUsecase = (*Service)(nil)

// NewService will create a new follow service object
func NewService(
	followRepo domain.FollowRepository,
	notifRepo domain.NotificationRepository,
	blocks domain.BlockGraph,
	profiles domain.ProfileProvider,
	broadcaster domain.Broadcaster,
	ids *idgen.Generator,
) *Service {
	return &Service{
		followRepo:  followRepo,
		notifRepo:   notifRepo,
		blocks:      blocks,
		profiles:    profiles,
		broadcaster: broadcaster,
		ids:         ids,
	}
}

func (s *Service) Request(ctx context.Context, senderID, recipientID int64) (domain.FollowRequest, error) {
	if senderID == recipientID {
		return domain.FollowRequest{}, domain.ErrBadParamInput
	}

	excluded, err := s.blocks.ExcludedAuthors(ctx, senderID)
	if err != nil {
		return domain.FollowRequest{}, err
	}
	for _, id := range excluded {
		if id == recipientID {
			return domain.FollowRequest{}, domain.ErrForbidden
		}
	}

	req := domain.FollowRequest{
		ID:          s.ids.Next(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      domain.FollowRequestPending,
	}
	if err := s.followRepo.CreateRequest(ctx, &req); err != nil {
		return domain.FollowRequest{}, err
	}

	if err := s.notify(ctx, domain.Notification{
		SenderID:    senderID,
		RecipientID: recipientID,
		Type:        domain.NotificationFollowRequest,
		FollowReqID: req.ID,
	}); err != nil {
		return domain.FollowRequest{}, err
	}
	return req, nil
}

func (s *Service) Accept(ctx context.Context, userID, requestID int64) error {
	req, err := s.followRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RecipientID != userID {
		return domain.ErrForbidden
	}

	if err := s.followRepo.Accept(ctx, requestID, s.ids.Next()); err != nil {
		return err
	}

	// follower counters changed on both sides
	s.profiles.Invalidate(ctx, req.SenderID)
	s.profiles.Invalidate(ctx, req.RecipientID)

	// the pending-request entry has served its purpose
	if err := s.notifRepo.Remove(ctx, req.SenderID, req.RecipientID,
		domain.NotificationFollowRequest, domain.NotificationRef{FollowRequestID: requestID}); err != nil {
		return err
	}
	return s.notify(ctx, domain.Notification{
		SenderID:    req.RecipientID,
		RecipientID: req.SenderID,
		Type:        domain.NotificationFollowAccept,
		FollowReqID: requestID,
	})
}

func (s *Service) Reject(ctx context.Context, userID, requestID int64) error {
	req, err := s.followRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RecipientID != userID {
		return domain.ErrForbidden
	}
	if err := s.followRepo.Reject(ctx, requestID); err != nil {
		return err
	}
	return s.notifRepo.Remove(ctx, req.SenderID, req.RecipientID,
		domain.NotificationFollowRequest, domain.NotificationRef{FollowRequestID: requestID})
}

func (s *Service) Cancel(ctx context.Context, userID, requestID int64) error {
	req, err := s.followRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.SenderID != userID {
		return domain.ErrForbidden
	}
	if err := s.followRepo.Cancel(ctx, requestID); err != nil {
		return err
	}
	return s.notifRepo.Remove(ctx, req.SenderID, req.RecipientID,
		domain.NotificationFollowRequest, domain.NotificationRef{FollowRequestID: requestID})
}

func (s *Service) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := s.followRepo.Unfollow(ctx, followerID, followeeID); err != nil {
		return err
	}
	s.profiles.Invalidate(ctx, followerID)
	s.profiles.Invalidate(ctx, followeeID)
	// Accept notified the follower; unfollowing retires that entry. The
	// request id is not at hand here, the (sender, recipient, type) tuple
	// alone is unique for a live follow_accept row.
	return s.notifRepo.Remove(ctx, followeeID, followerID,
		domain.NotificationFollowAccept, domain.NotificationRef{})
}

func (s *Service) Followers(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.Profile], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	limit = domain.ClampLimit(limit)

	edges, err := s.followRepo.FetchFollowers(ctx, userID, boundary, limit)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	return s.edgeProfiles(ctx, edges, func(f domain.Follow) int64 { return f.FollowerID })
}

func (s *Service) Following(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.Profile], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	limit = domain.ClampLimit(limit)

	edges, err := s.followRepo.FetchFollowing(ctx, userID, boundary, limit)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	return s.edgeProfiles(ctx, edges, func(f domain.Follow) int64 { return f.FolloweeID })
}

func (s *Service) PendingRequests(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.FollowRequest], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.FollowRequest]{}, err
	}
	limit = domain.ClampLimit(limit)

	return s.followRepo.FetchPendingRequests(ctx, userID, boundary, limit)
}

func (s *Service) notify(ctx context.Context, n domain.Notification) error {
	n.ID = s.ids.Next()
	if err := s.notifRepo.Create(ctx, &n); err != nil {
		return err
	}
	s.broadcaster.NewNotification(n.RecipientID, n.ID)
	return nil
}

// edgeProfiles maps a page of follow edges onto the referenced users'
// profiles, keeping the edge page's cursor.
func (s *Service) edgeProfiles(ctx context.Context, edges domain.Page[domain.Follow], pick func(domain.Follow) int64) (domain.Page[domain.Profile], error) {
	userIDs := make([]int64, len(edges.Items))
	for i, e := range edges.Items {
		userIDs[i] = pick(e)
	}
	profiles, err := s.profiles.GetProfiles(ctx, userIDs)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	page := domain.Page[domain.Profile]{Pagination: edges.Pagination}
	page.Items = make([]domain.Profile, 0, len(edges.Items))
	for _, e := range edges.Items {
		if p, ok := profiles[pick(e)]; ok {
			page.Items = append(page.Items, p)
		}
	}
	return page, nil
}
