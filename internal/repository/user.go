package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/pulseapp/pulse/domain"
)

// profileProvider 协调层，协调 profile 缓存和数据库
type profileProvider struct {
	userRepo     domain.UserRepository
	cache        domain.ProfileCache
	rebuildGroup singleflight.Group
}

var _ domain.ProfileProvider = (*profileProvider)(nil)

func NewProfileProvider(userRepo domain.UserRepository, cache domain.ProfileCache) *profileProvider {
	return &profileProvider{
		userRepo: userRepo,
		cache:    cache,
	}
}

// GetProfile 读取用户档案，缓存未命中时回源并回填
func (p *profileProvider) GetProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	profile, err := p.cache.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("profile cache read error for user %d: %v", userID, err)
	}

	result, err, _ := p.rebuildGroup.Do(fmt.Sprintf("profile:%d", userID), func() (any, error) {
		user, err := p.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile := user.ToProfile()
		if err := p.cache.SetProfile(ctx, profile); err != nil {
			logrus.Warnf("failed to set profile cache for user %d: %v", userID, err)
		}
		return profile, nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return result.(domain.Profile), nil
}

// GetProfiles 批量读取档案，命中走缓存，未命中批量回源
func (p *profileProvider) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	res := make(map[int64]domain.Profile, len(userIDs))
	missed := make([]int64, 0, len(userIDs))
	for _, id := range dedupe(userIDs) {
		profile, err := p.cache.GetProfile(ctx, id)
		if err == nil {
			res[id] = profile
			continue
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("profile cache read error for user %d: %v", id, err)
		}
		missed = append(missed, id)
	}

	if len(missed) == 0 {
		return res, nil
	}

	users, err := p.userRepo.GetByIDs(ctx, missed)
	if err != nil {
		return nil, err
	}
	for i := range users {
		profile := users[i].ToProfile()
		res[profile.ID] = profile
		if err := p.cache.SetProfile(ctx, profile); err != nil {
			logrus.Warnf("failed to set profile cache for user %d: %v", profile.ID, err)
		}
	}
	return res, nil
}

// Invalidate drops the cached profile. Callers invoke it after the write
// that changed the truth has committed, never before.
func (p *profileProvider) Invalidate(ctx context.Context, userID int64) {
	if err := p.cache.DeleteProfile(ctx, userID); err != nil {
		logrus.Warnf("failed to invalidate profile cache for user %d: %v", userID, err)
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
