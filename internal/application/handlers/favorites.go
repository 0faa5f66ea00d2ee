package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// FavoritesHandler toggles and lists favorites through a session.
type FavoritesHandler struct {
	session *services.Session
	catalog *CatalogHandler
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(session *services.Session, catalog *CatalogHandler) *FavoritesHandler {
	return &FavoritesHandler{
		session: session,
		catalog: catalog,
	}
}

// ToggleResult contains the outcome of a toggle.
type ToggleResult struct {
	ID        int   `json:"id"`
	Favorite  bool  `json:"favorite"`
	Favorites []int `json:"favorites"`
}

// HandleToggle flips membership of id.
func (h *FavoritesHandler) HandleToggle(ctx context.Context, id int) (*ToggleResult, error) {
	set, err := h.session.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggling favorite %d: %w", id, err)
	}
	return &ToggleResult{
		ID:        id,
		Favorite:  set.Contains(id),
		Favorites: set.IDs(),
	}, nil
}

// FavoritesResult lists favorite ids and their summaries.
type FavoritesResult struct {
	IDs   []int                    `json:"ids"`
	Items []entities.EntitySummary `json:"items"`
}

// HandleList returns the favorites with their summaries in catalog order.
func (h *FavoritesHandler) HandleList(ctx context.Context) (*FavoritesResult, error) {
	set, err := h.session.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading favorites: %w", err)
	}

	result := &FavoritesResult{IDs: set.IDs(), Items: []entities.EntitySummary{}}
	if set.Len() == 0 {
		return result, nil
	}

	list := h.catalog.Summaries(ctx)
	result.Items = services.ApplyFilters(list, entities.ViewFilterState{FavoritesOnly: true}, set)
	return result, nil
}

// ImportResult contains the outcome of an import.
type ImportResult struct {
	Added     int   `json:"added"`
	Favorites []int `json:"favorites"`
}

// HandleImport adds every positive id to the favorites. Ids already present are skipped.
func (h *FavoritesHandler) HandleImport(ctx context.Context, ids []int) (*ImportResult, error) {
	valid := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			valid = append(valid, id)
		}
	}

	set, added, err := h.session.AddFavorites(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("importing favorites: %w", err)
	}
	return &ImportResult{Added: added, Favorites: set.IDs()}, nil
}
