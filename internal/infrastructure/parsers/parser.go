// Package parsers reads summary lists back from exported JSON and CSV files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntry is one row read from an export file before validation.
type RawEntry struct {
	ID      int      `json:"id"`
	Name    string   `json:"name,omitempty"`
	Types   []string `json:"types,omitempty"`
	LineNum int      `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing entries from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEntry, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IDs returns the entry ids in file order.
func IDs(entries []RawEntry) []int {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
