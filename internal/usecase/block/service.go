package block

import (
	"context"
	"errors"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository"
)

type Service struct {
	blocks     domain.BlockGraph
	blockRepo  domain.BlockRepository
	followRepo domain.FollowRepository
	profiles   domain.ProfileProvider
}

var _ domain.BlockUsecase = (*Service)(nil)

// NewService will create a new block service object
func NewService(
	blocks domain.BlockGraph,
	blockRepo domain.BlockRepository,
	followRepo domain.FollowRepository,
	profiles domain.ProfileProvider,
) *Service {
	return &Service{
		blocks:     blocks,
		blockRepo:  blockRepo,
		followRepo: followRepo,
		profiles:   profiles,
	}
}

func (s *Service) Block(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID == blockedID {
		return domain.ErrBadParamInput
	}

	if err := s.blocks.Block(ctx, blockerID, blockedID); err != nil {
		return err
	}

	// blocking severs follow edges in both directions; absent edges are fine
	countersChanged := false
	for _, pair := range [][2]int64{{blockerID, blockedID}, {blockedID, blockerID}} {
		err := s.followRepo.Unfollow(ctx, pair[0], pair[1])
		switch {
		case err == nil:
			countersChanged = true
		case errors.Is(err, domain.ErrNotFound):
		default:
			return err
		}
	}
	if countersChanged {
		s.profiles.Invalidate(ctx, blockerID)
		s.profiles.Invalidate(ctx, blockedID)
	}
	return nil
}

func (s *Service) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	return s.blocks.Unblock(ctx, blockerID, blockedID)
}

func (s *Service) FetchBlocked(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.Profile], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	limit = domain.ClampLimit(limit)

	edges, err := s.blockRepo.FetchBlocked(ctx, userID, boundary, limit)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	userIDs := make([]int64, len(edges.Items))
	for i, e := range edges.Items {
		userIDs[i] = e.BlockedID
	}
	profiles, err := s.profiles.GetProfiles(ctx, userIDs)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	page := domain.Page[domain.Profile]{Pagination: edges.Pagination}
	page.Items = make([]domain.Profile, 0, len(edges.Items))
	for _, e := range edges.Items {
		if p, ok := profiles[e.BlockedID]; ok {
			page.Items = append(page.Items, p)
		}
	}
	return page, nil
}
