package handlers

import (
	"context"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// CompareHandler builds comparisons.
type CompareHandler struct {
	comparison *services.ComparisonService
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(comparison *services.ComparisonService) *CompareHandler {
	return &CompareHandler{comparison: comparison}
}

// HandleCompare compares the members of selection.
func (h *CompareHandler) HandleCompare(ctx context.Context, selection entities.ComparisonSelection) (*entities.ComparisonResult, error) {
	return h.comparison.Compare(ctx, selection)
}

// HandleCompareIdentifiers resolves names or ids and compares them.
// Identifiers that do not resolve are returned in the result's Unresolved list.
func (h *CompareHandler) HandleCompareIdentifiers(ctx context.Context, identifiers []string) (*entities.ComparisonResult, error) {
	return h.comparison.CompareIdentifiers(ctx, identifiers)
}
