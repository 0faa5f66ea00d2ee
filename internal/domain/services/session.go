package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// ErrSessionClosed is returned by Session operations after Close.
var ErrSessionClosed = errors.New("session closed")

// Session owns the favorite set and the comparison selection. A single
// goroutine applies every read and mutation in the order they arrive.
type Session struct {
	favorites *FavoritesService
	selection entities.ComparisonSelection

	cmds    chan func()
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewSession starts the session goroutine. Call Close to stop it.
func NewSession(favorites *FavoritesService) *Session {
	s := &Session{
		favorites: favorites,
		cmds:      make(chan func()),
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case cmd := <-s.cmds:
			cmd()
		case <-s.quit:
			return
		}
	}
}

// do hands fn to the session goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
	case <-s.quit:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

// Close stops the session goroutine and waits for it to exit.
func (s *Session) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.stopped
}

// ToggleFavorite flips and persists membership of id, returning the new set.
func (s *Session) ToggleFavorite(ctx context.Context, id int) (entities.FavoriteSet, error) {
	var set entities.FavoriteSet
	var toggleErr error
	if err := s.do(ctx, func() {
		set, toggleErr = s.favorites.Toggle(ctx, id)
	}); err != nil {
		return entities.FavoriteSet{}, err
	}
	return set, toggleErr
}

// AddFavorites adds ids to the favorites, returning the new set and how many were new.
func (s *Session) AddFavorites(ctx context.Context, ids []int) (entities.FavoriteSet, int, error) {
	var set entities.FavoriteSet
	var added int
	var addErr error
	if err := s.do(ctx, func() {
		set, added, addErr = s.favorites.Add(ctx, ids...)
	}); err != nil {
		return entities.FavoriteSet{}, 0, err
	}
	return set, added, addErr
}

// Favorites returns the current favorite set.
func (s *Session) Favorites(ctx context.Context) (entities.FavoriteSet, error) {
	var set entities.FavoriteSet
	err := s.do(ctx, func() { set = s.favorites.Set() })
	return set, err
}

// AddToCompare appends item to the selection. The returned flag is false when
// the selection is full or already holds item.
func (s *Session) AddToCompare(ctx context.Context, item entities.EntitySummary) (entities.ComparisonSelection, bool, error) {
	var added bool
	var sel entities.ComparisonSelection
	err := s.do(ctx, func() {
		s.selection, added = s.selection.Add(item)
		sel = s.selection
	})
	return sel, added, err
}

// RemoveFromCompare drops id from the selection.
func (s *Session) RemoveFromCompare(ctx context.Context, id int) (entities.ComparisonSelection, error) {
	var sel entities.ComparisonSelection
	err := s.do(ctx, func() {
		s.selection = s.selection.Remove(id)
		sel = s.selection
	})
	return sel, err
}

// ClearCompare empties the selection.
func (s *Session) ClearCompare(ctx context.Context) error {
	return s.do(ctx, func() { s.selection = s.selection.Clear() })
}

// Selection returns the current comparison selection.
func (s *Session) Selection(ctx context.Context) (entities.ComparisonSelection, error) {
	var sel entities.ComparisonSelection
	err := s.do(ctx, func() { sel = s.selection })
	return sel, err
}
