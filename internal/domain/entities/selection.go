package entities

// MaxCompare is the largest number of entities that can be compared at once.
const MaxCompare = 3

// MinCompare is the smallest selection a comparison accepts.
const MinCompare = 2

// ComparisonSelection is an insertion-ordered set of up to MaxCompare summaries.
// Like FavoriteSet it is immutable; mutators return the updated value.
type ComparisonSelection struct {
	items []EntitySummary
}

// NewComparisonSelection builds a selection by adding items in order.
// Items beyond the limit and duplicates are dropped.
func NewComparisonSelection(items ...EntitySummary) ComparisonSelection {
	var s ComparisonSelection
	for _, item := range items {
		s, _ = s.Add(item)
	}
	return s
}

// Add appends item unless the selection is full or already holds its id.
// The boolean reports whether the selection changed.
func (s ComparisonSelection) Add(item EntitySummary) (ComparisonSelection, bool) {
	if len(s.items) >= MaxCompare || s.Contains(item.ID) {
		return s, false
	}
	next := make([]EntitySummary, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	return ComparisonSelection{items: next}, true
}

// Remove drops the entity with the given id, if present.
func (s ComparisonSelection) Remove(id int) ComparisonSelection {
	next := make([]EntitySummary, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return ComparisonSelection{items: next}
}

// Clear returns an empty selection.
func (s ComparisonSelection) Clear() ComparisonSelection {
	return ComparisonSelection{}
}

// Contains reports whether id is selected.
func (s ComparisonSelection) Contains(id int) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items returns the selected summaries in insertion order.
func (s ComparisonSelection) Items() []EntitySummary {
	out := make([]EntitySummary, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected entities.
func (s ComparisonSelection) Len() int {
	return len(s.items)
}

// IsFull reports whether another entity can be added.
func (s ComparisonSelection) IsFull() bool {
	return len(s.items) >= MaxCompare
}

// Ready reports whether the selection is large enough to compare.
func (s ComparisonSelection) Ready() bool {
	return len(s.items) >= MinCompare
}
