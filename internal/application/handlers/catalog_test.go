package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
	"github.com/ersonp/dex-core/internal/domain/services"
)

func TestCatalogHandler_HandleList(t *testing.T) {
	client := newCatalogClient(fixtures()...)
	store := &mocks.KeyValueStore{Values: map[string][]byte{entities.FavoritesKey: []byte("[4,25]")}}
	session := newSession(t, store)
	handler := NewCatalogHandler(services.NewCatalogService(client, nil, services.CatalogOptions{}), session, 0)

	t.Run("unfiltered", func(t *testing.T) {
		result, err := handler.HandleList(t.Context(), entities.ViewFilterState{})
		require.NoError(t, err)
		assert.Len(t, result.Items, 4)
		assert.Equal(t, 4, result.Total)
		assert.Equal(t, []int{4, 25}, result.Favorites)
		assert.Equal(t, entities.ViewGrid, result.ViewMode)
	})

	t.Run("favorites of type", func(t *testing.T) {
		result, err := handler.HandleList(t.Context(), entities.ViewFilterState{
			SelectedTypes: []string{"electric", "water"},
			FavoritesOnly: true,
			ViewMode:      entities.ViewRow,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Pikachu", result.Items[0].Name)
		assert.Equal(t, entities.ViewRow, result.ViewMode)
	})

	assert.Equal(t, 1, client.FetchIndexCallCount, "summary list is reused")
}

func TestCatalogHandler_Summaries_Expiry(t *testing.T) {
	client := newCatalogClient(fixtures()...)
	handler := NewCatalogHandler(services.NewCatalogService(client, nil, services.CatalogOptions{}), newSession(t, &mocks.KeyValueStore{}), time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return now }

	handler.Summaries(t.Context())
	handler.Summaries(t.Context())
	assert.Equal(t, 1, client.FetchIndexCallCount)

	now = now.Add(2 * time.Minute)
	handler.Summaries(t.Context())
	assert.Equal(t, 2, client.FetchIndexCallCount)
}

func TestCatalogHandler_Summaries_EmptyNotKept(t *testing.T) {
	client := &mocks.CatalogClient{IndexErr: errors.New("offline")}
	handler := NewCatalogHandler(services.NewCatalogService(client, nil, services.CatalogOptions{}), newSession(t, &mocks.KeyValueStore{}), 0)

	assert.Empty(t, handler.Summaries(t.Context()))
	assert.Empty(t, handler.Summaries(t.Context()))
	assert.Equal(t, 2, client.FetchIndexCallCount)
}

// cancelingClient ends the request context once the index page is served.
// Type lookups honor the context like the HTTP client does.
type cancelingClient struct {
	*mocks.CatalogClient
	cancel context.CancelFunc
}

func (c *cancelingClient) FetchIndex(ctx context.Context, limit, offset int) ([]entities.IndexEntry, error) {
	index, err := c.CatalogClient.FetchIndex(ctx, limit, offset)
	if c.cancel != nil {
		c.cancel()
	}
	return index, err
}

func (c *cancelingClient) FetchTypes(ctx context.Context, detailURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.CatalogClient.FetchTypes(ctx, detailURL)
}

func TestCatalogHandler_Summaries_CanceledBuildNotKept(t *testing.T) {
	client := &cancelingClient{CatalogClient: newCatalogClient(fixtures()...)}
	handler := NewCatalogHandler(services.NewCatalogService(client, nil, services.CatalogOptions{}), newSession(t, &mocks.KeyValueStore{}), 0)

	ctx, cancel := context.WithCancel(t.Context())
	client.cancel = cancel

	degraded := handler.Summaries(ctx)
	require.Len(t, degraded, 4)
	for _, s := range degraded {
		assert.Equal(t, []string{entities.DefaultType}, s.Types)
	}

	client.cancel = nil
	healthy := handler.Summaries(t.Context())
	require.Len(t, healthy, 4)
	assert.Equal(t, []string{"grass", "poison"}, healthy[0].Types)
	assert.Equal(t, []string{"electric"}, healthy[3].Types)
	assert.Equal(t, 2, client.FetchIndexCallCount)
}

func TestCatalogHandler_HandleDetail(t *testing.T) {
	client := newCatalogClient(fixtures()...)
	client.DetailErr = map[string]error{"mew": &entities.FetchError{URL: "x", StatusCode: 502}}
	store := &mocks.KeyValueStore{Values: map[string][]byte{entities.FavoritesKey: []byte("[25]")}}
	handler := NewCatalogHandler(services.NewCatalogService(client, nil, services.CatalogOptions{}), newSession(t, store), 0)

	t.Run("found", func(t *testing.T) {
		result, err := handler.HandleDetail(t.Context(), "pikachu")
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, 320, result.Total)
		assert.True(t, result.IsFavorite)
		assert.Len(t, result.Radar.Vertices, 6)
	})

	t.Run("not found", func(t *testing.T) {
		result, err := handler.HandleDetail(t.Context(), "agumon")
		require.NoError(t, err)
		assert.False(t, result.Found())
	})

	t.Run("transient", func(t *testing.T) {
		_, err := handler.HandleDetail(t.Context(), "mew")
		assert.ErrorIs(t, err, entities.ErrTransientFetch)
	})
}
