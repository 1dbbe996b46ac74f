package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis is the default Store backend. Integers are stored as plain strings
// so they stay readable with redis-cli.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects and pings the server before returning.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &Redis{rdb: rdb}, nil
}

// NewRedisFromClient wraps an already-connected client, allowing the rate
// limiter and the store to share one connection pool.
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Client exposes the underlying connection for collaborators that need raw
// redis commands (presence tracking, rate limiting).
func (r *Redis) Client() *redis.Client {
	return r.rdb
}

func (r *Redis) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (r *Redis) SetInt64(ctx context.Context, key string, val int64) error {
	return r.rdb.Set(ctx, key, strconv.FormatInt(val, 10), 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close(_ context.Context) error {
	return r.rdb.Close()
}
