// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// CatalogClient reads the remote creature catalog.
// Implementations perform no retries; callers decide how to degrade.
type CatalogClient interface {
	// FetchIndex returns one page of the catalog index.
	// Any failure is reported as a *entities.FetchError.
	FetchIndex(ctx context.Context, limit, offset int) ([]entities.IndexEntry, error)

	// FetchTypes returns the ordered type tags of the entity at detailURL.
	FetchTypes(ctx context.Context, detailURL string) ([]string, error)

	// FetchDetail returns the full record for an id or name (case-insensitive).
	// Returns nil, nil when the provider has no such entity.
	FetchDetail(ctx context.Context, identifier string) (*entities.EntityDetail, error)
}
