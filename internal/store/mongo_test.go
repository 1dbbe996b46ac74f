package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Integration-style test: runs only if MONGO_URI env is set.
func TestMongoIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongo(ctx, uri, "coin_panel_test")
	require.NoError(t, err)
	defer s.Close(ctx)

	key := LastRenewalKey("mongo-test-server")
	defer s.Delete(ctx, key)

	now := time.Now().UnixMilli()
	require.NoError(t, s.SetInt64(ctx, key, now))

	v, ok, err := s.GetInt64(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, now, v)

	// upsert overwrites
	require.NoError(t, s.SetInt64(ctx, key, now+1))
	v, _, _ = s.GetInt64(ctx, key)
	require.Equal(t, now+1, v)
}
