package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultTTL = 10 * time.Minute

// UnreadCounts keeps per-user unread notification counters in redis.
type UnreadCounts struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUnreadCounts(rdb *redis.Client, ttl time.Duration) *UnreadCounts {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &UnreadCounts{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (c *UnreadCounts) Get(ctx context.Context, userID uint) (int64, bool, error) {
	n, err := c.rdb.Get(ctx, unreadKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *UnreadCounts) Set(ctx context.Context, userID uint, n int64) error {
	return c.rdb.Set(ctx, unreadKey(userID), n, c.ttl).Err()
}

func (c *UnreadCounts) Invalidate(ctx context.Context, userID uint) error {
	return c.rdb.Del(ctx, unreadKey(userID)).Err()
}
