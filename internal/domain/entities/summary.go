// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultType is the type tag given to a summary whose types could not be resolved.
const DefaultType = "normal"

// IndexEntry is one row of the provider's paginated index.
type IndexEntry struct {
	ID        int    `json:"id"`
	RawName   string `json:"raw_name"` // Provider name, lowercase (e.g., "mr-mime")
	DetailURL string `json:"detail_url"`
}

// EntitySummary is the lightweight list-view projection of an entity.
type EntitySummary struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// NewSummary builds a summary from an index entry and its resolved type tags.
func NewSummary(entry IndexEntry, types []string) EntitySummary {
	return EntitySummary{
		ID:    entry.ID,
		Name:  Capitalize(entry.RawName),
		Types: types,
	}
}

// DegradedSummary builds the fallback summary used when type lookup fails.
func DegradedSummary(entry IndexEntry) EntitySummary {
	return NewSummary(entry, []string{DefaultType})
}

// Slug returns the lowercase provider name used in detail lookups and URLs.
func (s EntitySummary) Slug() string {
	return strings.ToLower(s.Name)
}

// HasAnyType reports whether the summary carries at least one of the given tags.
func (s EntitySummary) HasAnyType(types map[string]struct{}) bool {
	for _, t := range s.Types {
		if _, ok := types[t]; ok {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatNumber renders an id as a zero-padded catalog number (e.g., "#025").
func FormatNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}
