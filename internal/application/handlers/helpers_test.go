package handlers

import (
	"fmt"
	"testing"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
	"github.com/ersonp/dex-core/internal/domain/services"
)

func newDetail(id int, name string, types []string, values ...int) *entities.EntityDetail {
	d := &entities.EntityDetail{ID: id, Name: name, Types: types, Height: 7, Weight: 69}
	for i, v := range values {
		d.Stats = append(d.Stats, entities.Stat{Name: entities.StatOrder[i], BaseStat: v})
	}
	return d
}

// newCatalogClient returns a client serving the given details as the whole index.
func newCatalogClient(details ...*entities.EntityDetail) *mocks.CatalogClient {
	client := &mocks.CatalogClient{
		Types:   map[string][]string{},
		Details: details,
	}
	for _, d := range details {
		url := fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", d.ID)
		client.Index = append(client.Index, entities.IndexEntry{ID: d.ID, RawName: d.Summary().Slug(), DetailURL: url})
		client.Types[url] = d.Types
	}
	return client
}

func newSession(t *testing.T, store *mocks.KeyValueStore) *services.Session {
	t.Helper()
	favorites := services.NewFavoritesService(store, nil)
	favorites.Load(t.Context())
	s := services.NewSession(favorites)
	t.Cleanup(s.Close)
	return s
}

func fixtures() []*entities.EntityDetail {
	return []*entities.EntityDetail{
		newDetail(1, "Bulbasaur", []string{"grass", "poison"}, 45, 49, 49, 65, 65, 45),
		newDetail(4, "Charmander", []string{"fire"}, 39, 52, 43, 60, 50, 65),
		newDetail(7, "Squirtle", []string{"water"}, 44, 48, 65, 50, 64, 43),
		newDetail(25, "Pikachu", []string{"electric"}, 35, 55, 40, 50, 50, 90),
	}
}
