package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/service"
)

const recentFeedbackPrefix = "feedback:recent:"

func InitRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

type redisFeedbackCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisFeedbackCache caches testimonial lists as JSON, one key per requested limit.
func NewRedisFeedbackCache(rdb *redis.Client, ttl time.Duration) service.FeedbackCache {
	return &redisFeedbackCache{rdb: rdb, ttl: ttl}
}

func recentKey(limit int) string {
	return fmt.Sprintf("%s%d", recentFeedbackPrefix, limit)
}

func (c *redisFeedbackCache) GetRecent(ctx context.Context, limit int) ([]entity.Testimonial, bool, error) {
	data, err := c.rdb.Get(ctx, recentKey(limit)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []entity.Testimonial
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *redisFeedbackCache) SetRecent(ctx context.Context, limit int, items []entity.Testimonial) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, recentKey(limit), data, c.ttl).Err()
}

// InvalidateRecent drops every cached limit.
func (c *redisFeedbackCache) InvalidateRecent(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, recentFeedbackPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
