package entities

// StatCell is one entity's value for one stat in a comparison.
type StatCell struct {
	Value     int  `json:"value"`
	Present   bool `json:"present"`
	IsMaximum bool `json:"is_maximum"`
}

// StatRow is one stat across all compared entities.
// Cells are aligned with ComparisonResult.Entries.
type StatRow struct {
	Name  StatName   `json:"name"`
	Label string     `json:"label"`
	Max   int        `json:"max"`
	Cells []StatCell `json:"cells"`
}

// ComparisonEntry is one resolved member of a comparison.
type ComparisonEntry struct {
	Detail         *EntityDetail `json:"detail"`
	Total          int           `json:"total"`
	IsMaximumTotal bool          `json:"is_maximum_total"`
	Radar          RadarChart    `json:"radar"`
}

// ComparisonResult is the side-by-side view of two or three entities.
type ComparisonResult struct {
	Entries    []ComparisonEntry `json:"entries"`
	Stats      []StatRow         `json:"stats"`
	MaxTotal   int               `json:"max_total"`
	Unresolved []EntitySummary   `json:"unresolved,omitempty"`
}
