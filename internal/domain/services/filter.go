package services

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// ApplyFilters returns the members of list that satisfy state, in list order.
// The query matches a case-insensitive substring of the name or a substring
// of the decimal id. The query is used as given, so surrounding whitespace
// takes part in the match. An empty type selection matches everything.
func ApplyFilters(list []entities.EntitySummary, state entities.ViewFilterState, favorites entities.FavoriteSet) []entities.EntitySummary {
	query := strings.ToLower(state.SearchQuery)
	types := state.TypeSet()

	out := make([]entities.EntitySummary, 0, len(list))
	for _, item := range list {
		if !matchesQuery(item, query) {
			continue
		}
		if len(types) > 0 && !item.HasAnyType(types) {
			continue
		}
		if state.FavoritesOnly && !favorites.Contains(item.ID) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item entities.EntitySummary, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), query) ||
		strings.Contains(strconv.Itoa(item.ID), query)
}

// SortKey selects the presentation order of a summary list.
type SortKey string

const (
	SortByID   SortKey = "id"
	SortByName SortKey = "name"
)

// ParseSortKey validates a sort key. Empty means SortByID.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(s)) {
	case "", SortByID:
		return SortByID, nil
	case SortByName:
		return SortByName, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (valid: id, name)", s)
	}
}

// SortSummaries returns a sorted copy of list.
func SortSummaries(list []entities.EntitySummary, by SortKey) []entities.EntitySummary {
	out := slices.Clone(list)
	switch by {
	case SortByName:
		slices.SortStableFunc(out, func(a, b entities.EntitySummary) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	default:
		slices.SortStableFunc(out, func(a, b entities.EntitySummary) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return out
}
