package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// DefaultSummaryTTL is how long a built summary list is reused.
const DefaultSummaryTTL = time.Hour

// FavoritesSource provides the current favorite set.
type FavoritesSource interface {
	Favorites(ctx context.Context) (entities.FavoriteSet, error)
}

// CatalogHandler serves the summary list and entity details.
type CatalogHandler struct {
	catalog   *services.CatalogService
	favorites FavoritesSource
	ttl       time.Duration
	now       func() time.Time

	mu        sync.Mutex
	summaries []entities.EntitySummary
	builtAt   time.Time
}

// NewCatalogHandler creates a new catalog handler. A ttl of zero uses DefaultSummaryTTL.
func NewCatalogHandler(catalog *services.CatalogService, favorites FavoritesSource, ttl time.Duration) *CatalogHandler {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &CatalogHandler{
		catalog:   catalog,
		favorites: favorites,
		ttl:       ttl,
		now:       time.Now,
	}
}

// ListResult contains a filtered summary list.
type ListResult struct {
	Items     []entities.EntitySummary `json:"items"`
	Total     int                      `json:"total"`
	Favorites []int                    `json:"favorites"`
	ViewMode  entities.ViewMode        `json:"view_mode"`
}

// Summaries returns the summary list, rebuilding it once the previous build
// is older than the ttl. Empty lists are not kept, nor lists built under a
// context that ended during the build.
func (h *CatalogHandler) Summaries(ctx context.Context) []entities.EntitySummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.summaries) > 0 && h.now().Sub(h.builtAt) < h.ttl {
		return h.summaries
	}

	list := h.catalog.BuildSummaryList(ctx)
	if len(list) > 0 && ctx.Err() == nil {
		h.summaries = list
		h.builtAt = h.now()
	}
	return list
}

// HandleList builds the summary list and applies state to it.
func (h *CatalogHandler) HandleList(ctx context.Context, state entities.ViewFilterState) (*ListResult, error) {
	favorites, err := h.favorites.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading favorites: %w", err)
	}

	list := h.Summaries(ctx)
	items := services.ApplyFilters(list, state, favorites)

	mode := state.ViewMode
	if mode == "" {
		mode = entities.ViewGrid
	}

	return &ListResult{
		Items:     items,
		Total:     len(list),
		Favorites: favorites.IDs(),
		ViewMode:  mode,
	}, nil
}

// DetailResult contains one entity's detail. Detail is nil when the entity does not exist.
type DetailResult struct {
	Detail     *entities.EntityDetail `json:"detail"`
	Total      int                    `json:"total"`
	IsFavorite bool                   `json:"is_favorite"`
	Radar      entities.RadarChart    `json:"radar"`
}

// Found reports whether the entity exists.
func (r *DetailResult) Found() bool {
	return r.Detail != nil
}

// HandleDetail fetches an entity by slug or id.
func (h *CatalogHandler) HandleDetail(ctx context.Context, slug string) (*DetailResult, error) {
	detail, err := h.catalog.Detail(ctx, slug)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return &DetailResult{}, nil
	}

	favorites, err := h.favorites.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading favorites: %w", err)
	}

	return &DetailResult{
		Detail:     detail,
		Total:      detail.Total(),
		IsFavorite: favorites.Contains(detail.ID),
		Radar:      services.RadarChart(detail.Stats, entities.DefaultRadarGeometry()),
	}, nil
}
