package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulseapp/pulse/domain"
)

const (
	KeyProfile  = "profile:%d"
	KeySettings = "settings:system"

	profileTTL  = 10 * time.Minute
	settingsTTL = 30 * time.Minute
)

type profileCache struct {
	client *redis.Client
}

var _ domain.ProfileCache = (*profileCache)(nil)

func NewProfileCache(client *redis.Client) *profileCache {
	return &profileCache{
		client,
	}
}

func (c *profileCache) GetProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyProfile, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Profile{}, err
	}
	var p domain.Profile
	if err = json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func (c *profileCache) SetProfile(ctx context.Context, p domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyProfile, p.ID), data, profileTTL).Err()
}

func (c *profileCache) DeleteProfile(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyProfile, userID)).Err()
}

func (c *profileCache) GetSettings(ctx context.Context) (domain.Settings, error) {
	data, err := c.client.Get(ctx, KeySettings).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Settings{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Settings{}, err
	}
	var s domain.Settings
	if err = json.Unmarshal(data, &s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

func (c *profileCache) SetSettings(ctx context.Context, s domain.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeySettings, data, settingsTTL).Err()
}

func (c *profileCache) DeleteSettings(ctx context.Context) error {
	return c.client.Del(ctx, KeySettings).Err()
}
