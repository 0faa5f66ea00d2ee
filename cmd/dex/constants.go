package main

// Rendering widths.
const (
	statBarWidth = 30
	cardWidth    = 22
	gridColumns  = 4
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
