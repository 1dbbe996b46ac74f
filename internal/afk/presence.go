// Package afk implements the coin-earning websocket: a presence slot per
// user and a per-connection accrual loop.
package afk

import (
	"context"
	"sync"
)

// Tracker guards against duplicate accrual loops: a user holds at most one
// presence slot at a time.
type Tracker interface {
	// TryAcquire marks the user present and returns true, or returns false
	// if a slot is already held.
	TryAcquire(ctx context.Context, userID string) (bool, error)

	// Heartbeat keeps a shared slot alive. No-op for process-local tracking.
	Heartbeat(ctx context.Context, userID string) error

	// Release frees the slot. Idempotent.
	Release(ctx context.Context, userID string) error
}

// MemoryTracker is the single-process Tracker.
type MemoryTracker struct {
	mu     sync.Mutex
	online map[string]bool
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{online: make(map[string]bool)}
}

func (t *MemoryTracker) TryAcquire(_ context.Context, userID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.online[userID] {
		return false, nil
	}
	t.online[userID] = true
	return true, nil
}

func (t *MemoryTracker) Heartbeat(_ context.Context, _ string) error { return nil }

func (t *MemoryTracker) Release(_ context.Context, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.online, userID)
	return nil
}
