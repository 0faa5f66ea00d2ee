package entities

import (
	"fmt"
	"strings"
)

// ViewMode selects how a filtered list is laid out.
type ViewMode string

// Supported view modes.
const (
	ViewGrid ViewMode = "grid"
	ViewRow  ViewMode = "row"
)

// ParseViewMode parses a view mode name. "list" is accepted as an alias for row.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grid":
		return ViewGrid, nil
	case "row", "list":
		return ViewRow, nil
	default:
		return "", fmt.Errorf("invalid view mode %q (valid: grid, row)", s)
	}
}

// ViewFilterState is the transient list-view state driven by user input.
type ViewFilterState struct {
	SearchQuery   string   `json:"search_query"`
	SelectedTypes []string `json:"selected_types"`
	FavoritesOnly bool     `json:"favorites_only"`
	ViewMode      ViewMode `json:"view_mode"`
}

// ToggleType returns a copy with t added to or removed from the selected types.
func (s ViewFilterState) ToggleType(t string) ViewFilterState {
	next := make([]string, 0, len(s.SelectedTypes)+1)
	removed := false
	for _, existing := range s.SelectedTypes {
		if existing == t {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, t)
	}
	s.SelectedTypes = next
	return s
}

// ClearTypes returns a copy with no type filter.
func (s ViewFilterState) ClearTypes() ViewFilterState {
	s.SelectedTypes = nil
	return s
}

// TypeChipAll is the type chip that clears the type selection.
const TypeChipAll = "all"

// WithTypeChips returns a copy with chips applied in order. A chip selects
// its type if not already selected, and TypeChipAll clears the selection.
func (s ViewFilterState) WithTypeChips(chips ...string) ViewFilterState {
	for _, chip := range chips {
		if chip == TypeChipAll {
			s = s.ClearTypes()
			continue
		}
		if _, selected := s.TypeSet()[chip]; !selected {
			s = s.ToggleType(chip)
		}
	}
	return s
}

// TypeSet returns the selected types as a lookup set.
func (s ViewFilterState) TypeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.SelectedTypes))
	for _, t := range s.SelectedTypes {
		set[t] = struct{}{}
	}
	return set
}
