package ports

import "context"

// KeyValueStore is client-local persistent storage for small values.
type KeyValueStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes value for key before returning.
	Set(ctx context.Context, key string, value []byte) error
}
