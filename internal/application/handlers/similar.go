package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// SimilarHandler builds and queries the stat similarity index.
type SimilarHandler struct {
	catalog    *services.CatalogService
	similarity *services.SimilarityService
}

// NewSimilarHandler creates a new similar handler.
func NewSimilarHandler(catalog *services.CatalogService, similarity *services.SimilarityService) *SimilarHandler {
	return &SimilarHandler{
		catalog:    catalog,
		similarity: similarity,
	}
}

// HandleIndex indexes the stat vectors of the whole catalog window.
func (h *SimilarHandler) HandleIndex(ctx context.Context) (int, error) {
	index, err := h.catalog.FetchIndex(ctx)
	if err != nil {
		return 0, err
	}
	n, err := h.similarity.IndexCatalog(ctx, index, h.catalog.BatchSize())
	if err != nil {
		return n, fmt.Errorf("indexing catalog: %w", err)
	}
	return n, nil
}

// SimilarResult contains the nearest neighbours of one entity.
type SimilarResult struct {
	Detail  *entities.EntityDetail `json:"detail"`
	Matches []ports.StatMatch      `json:"matches"`
}

// HandleSimilar finds entities with stats shaped like identifier's.
// Detail is nil when identifier does not exist.
func (h *SimilarHandler) HandleSimilar(ctx context.Context, identifier string, limit int) (*SimilarResult, error) {
	detail, matches, err := h.similarity.Similar(ctx, identifier, limit)
	if err != nil {
		return nil, err
	}
	return &SimilarResult{Detail: detail, Matches: matches}, nil
}
