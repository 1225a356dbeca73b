package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/pulseapp/pulse/domain"
)

// settingsProvider serves the settings singleton cache-aside.
type settingsProvider struct {
	repo         domain.SettingsRepository
	cache        domain.ProfileCache
	rebuildGroup singleflight.Group
}

var _ domain.SettingsProvider = (*settingsProvider)(nil)

func NewSettingsProvider(repo domain.SettingsRepository, cache domain.ProfileCache) *settingsProvider {
	return &settingsProvider{
		repo:  repo,
		cache: cache,
	}
}

func (s *settingsProvider) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.cache.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("settings cache read error: %v", err)
	}

	result, err, _ := s.rebuildGroup.Do("settings", func() (any, error) {
		settings, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetSettings(ctx, settings); err != nil {
			logrus.Warnf("failed to set settings cache: %v", err)
		}
		return settings, nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return result.(domain.Settings), nil
}

func (s *settingsProvider) Update(ctx context.Context, settings domain.Settings) error {
	if err := s.repo.Update(ctx, settings); err != nil {
		return err
	}
	if err := s.cache.DeleteSettings(ctx); err != nil {
		logrus.Warnf("failed to invalidate settings cache: %v", err)
	}
	return nil
}
