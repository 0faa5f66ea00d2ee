package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// DefaultSimilarLimit is the default number of neighbours to return.
const DefaultSimilarLimit = 5

// SimilarityService indexes stat vectors and finds entities with similar stat shapes.
type SimilarityService struct {
	client ports.CatalogClient
	index  ports.StatIndex
	logger *zap.Logger
}

// NewSimilarityService creates a new similarity service.
func NewSimilarityService(client ports.CatalogClient, index ports.StatIndex, logger *zap.Logger) *SimilarityService {
	return &SimilarityService{
		client: client,
		index:  index,
		logger: orNop(logger),
	}
}

// Index upserts the stat vectors of details.
func (s *SimilarityService) Index(ctx context.Context, details []*entities.EntityDetail) error {
	if len(details) == 0 {
		return nil
	}
	if err := s.index.EnsureIndex(ctx, uint64(len(entities.StatOrder))); err != nil {
		return fmt.Errorf("ensuring stat index: %w", err)
	}
	if err := s.index.Upsert(ctx, details); err != nil {
		return fmt.Errorf("upserting stat vectors: %w", err)
	}
	return nil
}

// IndexCatalog fetches details for every index entry in batches and indexes
// them. Entries that fail to load are skipped. Returns the number indexed.
func (s *SimilarityService) IndexCatalog(ctx context.Context, index []entities.IndexEntry, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	indexed := 0
	for start := 0; start < len(index); start += batchSize {
		end := min(start+batchSize, len(index))

		var mu sync.Mutex
		batch := make([]*entities.EntityDetail, 0, end-start)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for _, entry := range index[start:end] {
			g.Go(func() error {
				detail, err := s.client.FetchDetail(gctx, strconv.Itoa(entry.ID))
				if err != nil {
					s.logger.Warn("skipping entity", zap.Int("id", entry.ID), zap.Error(err))
					return nil
				}
				if detail == nil {
					return nil
				}
				mu.Lock()
				batch = append(batch, detail)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return indexed, err
		}

		if err := s.Index(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)
	}

	return indexed, nil
}

// Similar returns the entity named by identifier and its nearest neighbours,
// excluding itself. Returns a nil detail if the entity does not exist.
func (s *SimilarityService) Similar(ctx context.Context, identifier string, limit int) (*entities.EntityDetail, []ports.StatMatch, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	detail, err := s.client.FetchDetail(ctx, identifier)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching detail %q: %w", identifier, err)
	}
	if detail == nil {
		return nil, nil, nil
	}

	matches, err := s.index.Nearest(ctx, detail.StatVector(), limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("searching stat index: %w", err)
	}

	out := make([]ports.StatMatch, 0, limit)
	for _, m := range matches {
		if m.Summary.ID == detail.ID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return detail, out, nil
}
