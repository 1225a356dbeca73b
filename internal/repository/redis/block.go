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
	KeyBlockedList = "block:of:%d" // users blocked BY the user
	KeyBlockerList = "block:by:%d" // users who blocked the user

	// Short TTL is the safety net against a missed invalidation; explicit
	// invalidation on every edge mutation is the primary mechanism.
	blockListTTL = 5 * time.Minute
)

type blockCache struct {
	client *redis.Client
}

var _ domain.BlockCache = (*blockCache)(nil)

func NewBlockCache(client *redis.Client) *blockCache {
	return &blockCache{
		client,
	}
}

func (c *blockCache) GetBlockedList(ctx context.Context, userID int64) ([]int64, error) {
	return c.getList(ctx, fmt.Sprintf(KeyBlockedList, userID))
}

func (c *blockCache) SetBlockedList(ctx context.Context, userID int64, ids []int64) error {
	return c.setList(ctx, fmt.Sprintf(KeyBlockedList, userID), ids)
}

func (c *blockCache) GetBlockerList(ctx context.Context, userID int64) ([]int64, error) {
	return c.getList(ctx, fmt.Sprintf(KeyBlockerList, userID))
}

func (c *blockCache) SetBlockerList(ctx context.Context, userID int64, ids []int64) error {
	return c.setList(ctx, fmt.Sprintf(KeyBlockerList, userID), ids)
}

func (c *blockCache) DeleteLists(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, 2*len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, fmt.Sprintf(KeyBlockedList, id), fmt.Sprintf(KeyBlockerList, id))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *blockCache) getList(ctx context.Context, key string) ([]int64, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}
	var ids []int64
	if err = json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *blockCache) setList(ctx context.Context, key string, ids []int64) error {
	if ids == nil {
		// an empty list is a valid cacheable answer
		ids = []int64{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, blockListTTL).Err()
}
