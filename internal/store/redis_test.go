package store

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	ctx := context.Background()
	s, err := NewRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), db)
	require.NoError(t, err)
	defer s.Close(ctx)

	key := CoinsKey("redis-test-user")
	defer s.Delete(ctx, key)

	_, ok, err := s.GetInt64(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetInt64(ctx, key, 33))
	v, ok, err := s.GetInt64(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(33), v)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, _ = s.GetInt64(ctx, key)
	require.False(t, ok)
}
