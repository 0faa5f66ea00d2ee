package mocks

import (
	"context"
	"sync"
	"time"
)

// ResponseCache is a mock implementation of ports.ResponseCache that ignores maxAge.
type ResponseCache struct {
	Entries map[string][]byte
	GetErr  error
	PutErr  error

	mu sync.Mutex

	// Call tracking
	GetCallCount   int
	PutCallCount   int
	PurgeCallCount int
}

// Get returns the stored body for key.
func (m *ResponseCache) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCallCount++
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	body, ok := m.Entries[key]
	return body, ok, nil
}

// Put stores body for key.
func (m *ResponseCache) Put(ctx context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutCallCount++
	if m.PutErr != nil {
		return m.PutErr
	}
	if m.Entries == nil {
		m.Entries = make(map[string][]byte)
	}
	m.Entries[key] = body
	return nil
}

// Purge removes every entry.
func (m *ResponseCache) Purge(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PurgeCallCount++
	m.Entries = nil
	return nil
}
