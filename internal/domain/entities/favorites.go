package entities

import (
	"encoding/json"
	"fmt"
	"slices"
)

// FavoritesKey is the key-value entry holding the persisted favorites.
const FavoritesKey = "pokemon-favorites"

// FavoriteSet is an immutable set of favorited entity ids.
// Updates return a new set; the receiver is never modified.
type FavoriteSet struct {
	ids []int // ascending, unique
}

// NewFavoriteSet builds a set from ids, collapsing duplicates.
func NewFavoriteSet(ids ...int) FavoriteSet {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return FavoriteSet{ids: slices.Compact(sorted)}
}

// Contains reports whether id is a favorite.
func (s FavoriteSet) Contains(id int) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// Toggle returns a new set with id added if absent or removed if present.
func (s FavoriteSet) Toggle(id int) FavoriteSet {
	i, found := slices.BinarySearch(s.ids, id)
	next := make([]int, 0, len(s.ids)+1)
	next = append(next, s.ids[:i]...)
	if !found {
		next = append(next, id)
		next = append(next, s.ids[i:]...)
	} else {
		next = append(next, s.ids[i+1:]...)
	}
	return FavoriteSet{ids: next}
}

// With returns a new set that also holds ids.
func (s FavoriteSet) With(ids ...int) FavoriteSet {
	return NewFavoriteSet(append(s.IDs(), ids...)...)
}

// IDs returns the favorites in ascending order.
func (s FavoriteSet) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites.
func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// Encode returns the persisted representation: a JSON array of ints.
func (s FavoriteSet) Encode() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// DecodeFavoriteSet parses a persisted favorites entry.
func DecodeFavoriteSet(data []byte) (FavoriteSet, error) {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return FavoriteSet{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return NewFavoriteSet(ids...), nil
}
