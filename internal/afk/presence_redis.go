package afk

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisTracker shares presence slots across worker processes. Slots carry a
// TTL and are refreshed by the accrual loop each tick, so a crashed process
// frees its slots within one TTL instead of leaking them forever.
type RedisTracker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTracker(rdb *redis.Client, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisTracker{rdb: rdb, ttl: ttl}
}

func presenceKey(userID string) string {
	return "afk-online-" + userID
}

func (t *RedisTracker) TryAcquire(ctx context.Context, userID string) (bool, error) {
	return t.rdb.SetNX(ctx, presenceKey(userID), "1", t.ttl).Result()
}

func (t *RedisTracker) Heartbeat(ctx context.Context, userID string) error {
	return t.rdb.Expire(ctx, presenceKey(userID), t.ttl).Err()
}

func (t *RedisTracker) Release(ctx context.Context, userID string) error {
	return t.rdb.Del(ctx, presenceKey(userID)).Err()
}
