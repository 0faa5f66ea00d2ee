package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// FavoritesService holds the favorite set and writes it through to a store.
// It is not safe for concurrent use; share it through a Session.
type FavoritesService struct {
	store  ports.KeyValueStore
	logger *zap.Logger
	set    entities.FavoriteSet
}

// NewFavoritesService creates a new favorites service with an empty set.
func NewFavoritesService(store ports.KeyValueStore, logger *zap.Logger) *FavoritesService {
	return &FavoritesService{
		store:  store,
		logger: orNop(logger),
	}
}

// Load reads the persisted set. Absent, unreadable, or malformed state
// yields an empty set.
func (s *FavoritesService) Load(ctx context.Context) entities.FavoriteSet {
	data, ok, err := s.store.Get(ctx, entities.FavoritesKey)
	switch {
	case err != nil:
		s.logger.Warn("reading favorites failed, starting empty", zap.Error(err))
		s.set = entities.NewFavoriteSet()
	case !ok:
		s.set = entities.NewFavoriteSet()
	default:
		set, err := entities.DecodeFavoriteSet(data)
		if err != nil {
			s.logger.Warn("favorites are malformed, starting empty", zap.Error(err))
			set = entities.NewFavoriteSet()
		}
		s.set = set
	}
	return s.set
}

// Toggle flips membership of id and persists the new set before returning it.
// On a persistence failure the current set is kept.
func (s *FavoritesService) Toggle(ctx context.Context, id int) (entities.FavoriteSet, error) {
	next := s.set.Toggle(id)

	if err := s.persist(ctx, next); err != nil {
		return s.set, err
	}

	s.set = next
	return next, nil
}

// Add puts every id in the set with a single write and reports how many
// were new. On a persistence failure the current set is kept.
func (s *FavoritesService) Add(ctx context.Context, ids ...int) (entities.FavoriteSet, int, error) {
	next := s.set.With(ids...)
	added := next.Len() - s.set.Len()
	if added == 0 {
		return s.set, 0, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return s.set, 0, err
	}

	s.set = next
	return next, added, nil
}

func (s *FavoritesService) persist(ctx context.Context, set entities.FavoriteSet) error {
	data, err := set.Encode()
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.store.Set(ctx, entities.FavoritesKey, data); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}

// IsFavorite reports whether id is in the set.
func (s *FavoritesService) IsFavorite(id int) bool {
	return s.set.Contains(id)
}

// All returns the favorite ids in ascending order.
func (s *FavoritesService) All() []int {
	return s.set.IDs()
}

// Set returns the current set.
func (s *FavoritesService) Set() entities.FavoriteSet {
	return s.set
}
