package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used in tests and as a fallback when no
// durable storage is wired.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSaves forces Save to error; tests use it to exercise the
	// log-and-continue persistence policy.
	FailSaves bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Load returns the blob saved under key.
func (m *MemStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores a copy of the blob under key.
func (m *MemStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return fmt.Errorf("save %s: simulated storage failure", key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[key] = cp
	return nil
}

// Remove deletes the key.
func (m *MemStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
