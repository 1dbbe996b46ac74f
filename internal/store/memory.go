package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store used by tests and zero-dependency dev
// setups. Not suitable for multi-process deployments.
type Memory struct {
	mu   sync.RWMutex
	data map[string]int64
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]int64)}
}

func (m *Memory) GetInt64(_ context.Context, key string) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) SetInt64(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }

func (m *Memory) Close(_ context.Context) error { return nil }
