package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// Default catalog window: the 151 Generation-I entities.
const (
	DefaultCatalogLimit = 151
	DefaultBatchSize    = 50
)

// CatalogOptions controls which slice of the index is aggregated and how.
type CatalogOptions struct {
	Limit     int // Number of index entries to request
	Offset    int // Index offset
	BatchSize int // Items fetched concurrently per batch
}

// CatalogService assembles the summary list from the remote catalog.
type CatalogService struct {
	client ports.CatalogClient
	logger *zap.Logger
	opts   CatalogOptions
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(client ports.CatalogClient, logger *zap.Logger, opts CatalogOptions) *CatalogService {
	if opts.Limit <= 0 {
		opts.Limit = DefaultCatalogLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &CatalogService{
		client: client,
		logger: orNop(logger),
		opts:   opts,
	}
}

// BatchSize returns the number of items fetched concurrently per batch.
func (s *CatalogService) BatchSize() int {
	return s.opts.BatchSize
}

// FetchIndex returns the configured window of the remote index.
func (s *CatalogService) FetchIndex(ctx context.Context) ([]entities.IndexEntry, error) {
	index, err := s.client.FetchIndex(ctx, s.opts.Limit, s.opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}
	return index, nil
}

// BuildSummaryList fetches the index and aggregates it into summaries.
// A failed index fetch is logged and yields an empty list, never an error.
func (s *CatalogService) BuildSummaryList(ctx context.Context) []entities.EntitySummary {
	index, err := s.FetchIndex(ctx)
	if err != nil {
		s.logger.Error("index fetch failed, returning empty list", zap.Error(err))
		return []entities.EntitySummary{}
	}
	return s.Aggregate(ctx, index)
}

// Aggregate resolves the types of every index entry in sequential batches.
// Entries within a batch are fetched concurrently. Output order matches index
// order, and an entry whose lookup fails is replaced by a degraded summary.
func (s *CatalogService) Aggregate(ctx context.Context, index []entities.IndexEntry) []entities.EntitySummary {
	logger := s.logger.With(zap.String("run_id", uuid.NewString()))
	out := make([]entities.EntitySummary, len(index))

	size := s.opts.BatchSize
	for start := 0; start < len(index); start += size {
		end := min(start+size, len(index))

		var g errgroup.Group
		g.SetLimit(size)
		for i := start; i < end; i++ {
			g.Go(func() error {
				out[i] = s.summarize(ctx, logger, index[i])
				return nil
			})
		}
		_ = g.Wait()

		logger.Debug("batch aggregated", zap.Int("start", start), zap.Int("end", end))
	}

	logger.Info("summary list built", zap.Int("count", len(out)))
	return out
}

func (s *CatalogService) summarize(ctx context.Context, logger *zap.Logger, entry entities.IndexEntry) entities.EntitySummary {
	types, err := s.client.FetchTypes(ctx, entry.DetailURL)
	if err != nil {
		logger.Warn("type lookup failed, using default type",
			zap.Int("id", entry.ID),
			zap.String("name", entry.RawName),
			zap.Error(err))
		return entities.DegradedSummary(entry)
	}
	if len(types) == 0 {
		return entities.DegradedSummary(entry)
	}
	return entities.NewSummary(entry, types)
}

// Detail fetches the full record for an id or name. Returns nil if not found.
func (s *CatalogService) Detail(ctx context.Context, identifier string) (*entities.EntityDetail, error) {
	detail, err := s.client.FetchDetail(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("fetching detail %q: %w", identifier, err)
	}
	return detail, nil
}
