// Package store is the key-value layer shared by the accrual loop and the
// renewal system. Values are plain integers (coin balances and epoch-millisecond
// timestamps); writes are last-write-wins with no transactions.
package store

import "context"

type Store interface {
	// GetInt64 returns the value under key. A missing key is not an error:
	// it returns (0, false, nil).
	GetInt64(ctx context.Context, key string) (int64, bool, error)

	SetInt64(ctx context.Context, key string, val int64) error

	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	Close(ctx context.Context) error
}
