package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ersonp/dex-core/internal/domain/ports"
)

const cacheTable = "http_cache"

// ResponseCache implements ports.ResponseCache on the http_cache table.
type ResponseCache struct {
	db *sql.DB
}

var _ ports.ResponseCache = (*ResponseCache)(nil)

// Get returns the body cached for key if it is younger than maxAge.
// A maxAge of zero or less disables the age check.
func (c *ResponseCache) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	row, err := queryRow(ctx, c.db, sq.Select("body", "fetched_at").From(cacheTable).Where(sq.Eq{"url": key}))
	if err != nil {
		return nil, false, err
	}

	var body []byte
	var fetchedAt int64
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cached response: %w", err)
	}

	if maxAge > 0 && timeNow().Sub(time.Unix(0, fetchedAt)) >= maxAge {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body for key, replacing any previous entry.
func (c *ResponseCache) Put(ctx context.Context, key string, body []byte) error {
	_, err := exec(ctx, c.db, sq.Insert(cacheTable).
		Columns("url", "body", "fetched_at").
		Values(key, body, timeNow().UnixNano()).
		Suffix("ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at"))
	if err != nil {
		return fmt.Errorf("caching response: %w", err)
	}
	return nil
}

// Purge removes every cached response.
func (c *ResponseCache) Purge(ctx context.Context) error {
	if _, err := exec(ctx, c.db, sq.Delete(cacheTable)); err != nil {
		return fmt.Errorf("purging cache: %w", err)
	}
	return nil
}

// PurgeExpired removes responses older than maxAge and returns how many were removed.
func (c *ResponseCache) PurgeExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := timeNow().Add(-maxAge).UnixNano()
	res, err := exec(ctx, c.db, sq.Delete(cacheTable).Where(sq.LtOrEq{"fetched_at": cutoff}))
	if err != nil {
		return 0, fmt.Errorf("purging expired responses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged responses: %w", err)
	}
	return n, nil
}

// Count returns the number of cached responses.
func (c *ResponseCache) Count(ctx context.Context) (int, error) {
	row, err := queryRow(ctx, c.db, sq.Select("COUNT(*)").From(cacheTable))
	if err != nil {
		return 0, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cached responses: %w", err)
	}
	return count, nil
}
