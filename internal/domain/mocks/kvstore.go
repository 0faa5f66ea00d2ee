package mocks

import (
	"context"
	"sync"
)

// KeyValueStore is an in-memory implementation of ports.KeyValueStore.
type KeyValueStore struct {
	Values map[string][]byte
	GetErr error
	SetErr error

	mu sync.Mutex

	// Call tracking
	SetCallCount int
}

// Get returns the stored value for key.
func (m *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

// Set stores value for key.
func (m *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCallCount++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Values == nil {
		m.Values = make(map[string][]byte)
	}
	m.Values[key] = append([]byte(nil), value...)
	return nil
}
