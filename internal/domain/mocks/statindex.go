package mocks

import (
	"context"
	"math"
	"sort"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// StatIndex is an in-memory implementation of ports.StatIndex using cosine similarity.
type StatIndex struct {
	Details []*entities.EntityDetail
	Err     error

	// Call tracking
	EnsureIndexCallCount int
	UpsertCallCount      int
}

// EnsureIndex records the call.
func (m *StatIndex) EnsureIndex(ctx context.Context, dimensions uint64) error {
	m.EnsureIndexCallCount++
	return m.Err
}

// Upsert stores details, replacing entries with the same id.
func (m *StatIndex) Upsert(ctx context.Context, details []*entities.EntityDetail) error {
	m.UpsertCallCount++
	if m.Err != nil {
		return m.Err
	}
	for _, d := range details {
		replaced := false
		for i := range m.Details {
			if m.Details[i].ID == d.ID {
				m.Details[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			m.Details = append(m.Details, d)
		}
	}
	return nil
}

// Nearest ranks stored details by cosine similarity to vector.
func (m *StatIndex) Nearest(ctx context.Context, vector []float32, limit int) ([]ports.StatMatch, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	matches := make([]ports.StatMatch, 0, len(m.Details))
	for _, d := range m.Details {
		matches = append(matches, ports.StatMatch{
			Summary: d.Summary(),
			Score:   cosine(vector, d.StatVector()),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

// Count returns the number of stored details.
func (m *StatIndex) Count(ctx context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Details)), nil
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
