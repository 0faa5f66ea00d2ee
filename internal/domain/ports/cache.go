package ports

import (
	"context"
	"time"
)

// ResponseCache stores raw provider responses keyed by request URL.
// It is a performance optimization only; callers must tolerate any error.
type ResponseCache interface {
	// Get returns the body stored for key if it is younger than maxAge.
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error)

	// Put stores body for key, replacing any previous entry.
	Put(ctx context.Context, key string, body []byte) error

	// Purge removes every cached entry.
	Purge(ctx context.Context) error
}
