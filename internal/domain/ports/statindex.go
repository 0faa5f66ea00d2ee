package ports

import (
	"context"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// StatMatch is one nearest-neighbour hit from a StatIndex.
type StatMatch struct {
	Summary entities.EntitySummary `json:"summary"`
	Score   float32                `json:"score"`
}

// StatIndex stores stat vectors for similarity search.
type StatIndex interface {
	// EnsureIndex creates the backing collection if it doesn't exist.
	EnsureIndex(ctx context.Context, dimensions uint64) error

	// Upsert stores the stat vectors of the given entities.
	Upsert(ctx context.Context, details []*entities.EntityDetail) error

	// Nearest returns up to limit entities closest to vector.
	Nearest(ctx context.Context, vector []float32, limit int) ([]StatMatch, error)

	// Count returns the number of indexed entities.
	Count(ctx context.Context) (uint64, error)
}
