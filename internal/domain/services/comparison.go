package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// ComparisonService derives side-by-side comparisons of selected entities.
type ComparisonService struct {
	client   ports.CatalogClient
	logger   *zap.Logger
	geometry entities.RadarGeometry
}

// NewComparisonService creates a new comparison service using the default radar geometry.
func NewComparisonService(client ports.CatalogClient, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{
		client:   client,
		logger:   orNop(logger),
		geometry: entities.DefaultRadarGeometry(),
	}
}

// Compare fetches every selected entity in parallel and builds the comparison.
// Members that are missing or fail to load are reported in Unresolved.
// Returns ErrSelectionTooSmall for fewer than 2 selected members and
// ErrInsufficientData when fewer than 2 resolve.
func (s *ComparisonService) Compare(ctx context.Context, selection entities.ComparisonSelection) (*entities.ComparisonResult, error) {
	items := selection.Items()
	if len(items) < entities.MinCompare {
		return nil, entities.ErrSelectionTooSmall
	}

	identifiers := make([]string, len(items))
	for i, item := range items {
		identifiers[i] = strconv.Itoa(item.ID)
	}
	details := s.fetchAll(ctx, identifiers)

	resolved := make([]*entities.EntityDetail, 0, len(items))
	var unresolved []entities.EntitySummary
	for i, d := range details {
		if d == nil {
			unresolved = append(unresolved, items[i])
			continue
		}
		resolved = append(resolved, d)
	}

	return s.build(resolved, unresolved)
}

// CompareIdentifiers resolves names or ids and compares the entities they
// name, fetching each identifier once, all in parallel. Identifiers that do
// not resolve are reported in Unresolved by their input text. Identifiers
// naming an entity already resolved are skipped, and at most MaxCompare
// entities are compared.
func (s *ComparisonService) CompareIdentifiers(ctx context.Context, identifiers []string) (*entities.ComparisonResult, error) {
	if len(identifiers) < entities.MinCompare {
		return nil, entities.ErrSelectionTooSmall
	}

	details := s.fetchAll(ctx, identifiers)

	resolved := make([]*entities.EntityDetail, 0, entities.MaxCompare)
	seen := make(map[int]struct{}, len(details))
	var unresolved []entities.EntitySummary
	for i, d := range details {
		if d == nil {
			unresolved = append(unresolved, entities.EntitySummary{Name: identifiers[i]})
			continue
		}
		if _, dup := seen[d.ID]; dup || len(resolved) == entities.MaxCompare {
			continue
		}
		seen[d.ID] = struct{}{}
		resolved = append(resolved, d)
	}

	return s.build(resolved, unresolved)
}

func (s *ComparisonService) build(resolved []*entities.EntityDetail, unresolved []entities.EntitySummary) (*entities.ComparisonResult, error) {
	if len(resolved) < entities.MinCompare {
		return nil, entities.ErrInsufficientData
	}

	result := BuildComparison(resolved, s.geometry)
	result.Unresolved = unresolved
	return result, nil
}

// fetchAll fetches every identifier concurrently. Slot i holds the detail for
// identifiers[i], or nil when it failed to load or does not exist.
func (s *ComparisonService) fetchAll(ctx context.Context, identifiers []string) []*entities.EntityDetail {
	details := make([]*entities.EntityDetail, len(identifiers))

	var g errgroup.Group
	for i, identifier := range identifiers {
		g.Go(func() error {
			detail, err := s.client.FetchDetail(ctx, identifier)
			if err != nil {
				s.logger.Warn("comparison member failed to load",
					zap.String("identifier", identifier), zap.Error(err))
				return nil
			}
			if detail == nil {
				s.logger.Warn("comparison member not found", zap.String("identifier", identifier))
				return nil
			}
			details[i] = detail
			return nil
		})
	}
	_ = g.Wait()

	return details
}

// BuildComparison annotates resolved details with per-stat and total maxima.
// Stat columns follow the first detail's stat order. A member lacking a stat
// shows 0 for it and is never its maximum. Ties mark every winner.
func BuildComparison(details []*entities.EntityDetail, g entities.RadarGeometry) *entities.ComparisonResult {
	result := &entities.ComparisonResult{
		Entries: make([]entities.ComparisonEntry, len(details)),
	}
	if len(details) == 0 {
		return result
	}

	for _, stat := range details[0].Stats {
		row := entities.StatRow{
			Name:  stat.Name,
			Label: stat.Name.Label(),
			Cells: make([]entities.StatCell, len(details)),
		}
		seen := false
		for i, d := range details {
			v, ok := d.StatValue(stat.Name)
			row.Cells[i] = entities.StatCell{Value: v, Present: ok}
			if ok && (!seen || v > row.Max) {
				row.Max = v
				seen = true
			}
		}
		for i := range row.Cells {
			row.Cells[i].IsMaximum = row.Cells[i].Present && row.Cells[i].Value == row.Max
		}
		result.Stats = append(result.Stats, row)
	}

	for i, d := range details {
		total := d.Total()
		if i == 0 || total > result.MaxTotal {
			result.MaxTotal = total
		}
		result.Entries[i] = entities.ComparisonEntry{
			Detail: d,
			Total:  total,
			Radar:  RadarChart(d.Stats, g),
		}
	}
	for i := range result.Entries {
		result.Entries[i].IsMaximumTotal = result.Entries[i].Total == result.MaxTotal
	}

	return result
}
