package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// typeSep separates type tags inside the types column.
const typeSep = ";"

// CSVParser parses entries from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed entries.
// Expected columns: id, and optionally name, types.
func (p *CSVParser) Parse(r io.Reader) ([]RawEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIndex["id"]; !ok {
		return nil, fmt.Errorf("missing required column: id")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawEntries.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawEntry, error) {
	var entries []RawEntry
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		entry, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseRecord converts a CSV record to a RawEntry.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawEntry, error) {
	idStr := getColumn(record, colIndex, "id")
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil || id <= 0 {
		return RawEntry{}, fmt.Errorf("line %d: invalid id %q", lineNum, idStr)
	}

	entry := RawEntry{
		ID:      id,
		Name:    getColumn(record, colIndex, "name"),
		LineNum: lineNum,
	}
	if types := getColumn(record, colIndex, "types"); types != "" {
		entry.Types = strings.Split(types, typeSep)
	}

	return entry, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
