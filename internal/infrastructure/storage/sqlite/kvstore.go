package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ersonp/dex-core/internal/domain/ports"
)

const kvTable = "kv"

// KeyValueStore implements ports.KeyValueStore on the kv table.
type KeyValueStore struct {
	db *sql.DB
}

var _ ports.KeyValueStore = (*KeyValueStore)(nil)

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row, err := queryRow(ctx, s.db, sq.Select("value").From(kvTable).Where(sq.Eq{"key": key}))
	if err != nil {
		return nil, false, err
	}

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := exec(ctx, s.db, sq.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, timeNow().UnixNano()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"))
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
