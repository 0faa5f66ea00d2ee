package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses entries from a JSON array of summaries.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed entries.
func (p *JSONParser) Parse(r io.Reader) ([]RawEntry, error) {
	var entries []RawEntry

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i := range entries {
		entries[i].LineNum = i + 1
		if entries[i].ID <= 0 {
			return nil, fmt.Errorf("entry %d: invalid id %d", i+1, entries[i].ID)
		}
	}

	return entries, nil
}
