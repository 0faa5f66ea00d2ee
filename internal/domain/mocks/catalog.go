// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// CatalogClient is a mock implementation of ports.CatalogClient.
// It is safe for concurrent use.
type CatalogClient struct {
	Index    []entities.IndexEntry
	IndexErr error

	// Types maps a detail URL to its type tags.
	Types map[string][]string
	// TypesErr maps a detail URL to a lookup failure.
	TypesErr map[string]error

	// Details holds the records returned by FetchDetail, matched by id or lowercase name.
	Details []*entities.EntityDetail
	// DetailErr maps an identifier to a fetch failure.
	DetailErr map[string]error

	mu sync.Mutex

	// Call tracking
	FetchIndexCallCount  int
	FetchTypesCallCount  int
	FetchDetailCallCount int
	FetchDetailArgs      []string
}

// FetchIndex returns the configured index page.
func (m *CatalogClient) FetchIndex(ctx context.Context, limit, offset int) ([]entities.IndexEntry, error) {
	m.mu.Lock()
	m.FetchIndexCallCount++
	m.mu.Unlock()

	if m.IndexErr != nil {
		return nil, m.IndexErr
	}
	if offset >= len(m.Index) {
		return []entities.IndexEntry{}, nil
	}
	end := len(m.Index)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return m.Index[offset:end], nil
}

// FetchTypes returns the configured types for detailURL.
func (m *CatalogClient) FetchTypes(ctx context.Context, detailURL string) ([]string, error) {
	m.mu.Lock()
	m.FetchTypesCallCount++
	m.mu.Unlock()

	if err, ok := m.TypesErr[detailURL]; ok {
		return nil, err
	}
	return m.Types[detailURL], nil
}

// FetchDetail returns the configured detail, or nil when none matches.
func (m *CatalogClient) FetchDetail(ctx context.Context, identifier string) (*entities.EntityDetail, error) {
	identifier = strings.ToLower(identifier)

	m.mu.Lock()
	m.FetchDetailCallCount++
	m.FetchDetailArgs = append(m.FetchDetailArgs, identifier)
	m.mu.Unlock()

	if err, ok := m.DetailErr[identifier]; ok {
		return nil, err
	}
	for _, d := range m.Details {
		if strconv.Itoa(d.ID) == identifier || strings.ToLower(d.Name) == identifier {
			return d, nil
		}
	}
	return nil, nil
}
