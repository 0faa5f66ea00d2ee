package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
)

type fakeAPI struct {
	server *httptest.Server
	hits   atomic.Int64
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/pokemon", func(w http.ResponseWriter, r *http.Request) {
		base := api.server.URL + "/api/v2/pokemon/"
		assert.Equal(t, "151", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		fmt.Fprintf(w, `{"count":1302,"results":[
			{"name":"bulbasaur","url":"%[1]s1/"},
			{"name":"mr-mime","url":"%[1]s122/"},
			{"name":"broken","url":"%[1]snot-an-id/"},
			{"name":"pikachu","url":"%[1]s25/"}]}`, base)
	})
	mux.HandleFunc("/api/v2/pokemon/{id}/", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "1":
			fmt.Fprint(w, `{"types":[{"slot":2,"type":{"name":"poison"}},{"slot":1,"type":{"name":"grass"}}]}`)
		case "122":
			http.Error(w, "upstream", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/v2/pokemon/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "pikachu", "25":
			fmt.Fprintf(w, `{
				"id":25,"name":"pikachu","height":4,"weight":60,
				"types":[{"slot":1,"type":{"name":"electric"}}],
				"stats":[
					{"base_stat":35,"stat":{"name":"hp"}},
					{"base_stat":55,"stat":{"name":"attack"}},
					{"base_stat":40,"stat":{"name":"defense"}},
					{"base_stat":50,"stat":{"name":"special-attack"}},
					{"base_stat":50,"stat":{"name":"special-defense"}},
					{"base_stat":90,"stat":{"name":"speed"}}],
				"sprites":{"front_default":"small.png","other":{"official-artwork":{"front_default":"art/25.png"}}},
				"species":{"name":"pikachu","url":"%s/api/v2/pokemon-species/25/"}}`, api.server.URL)
		case "ditto":
			fmt.Fprintf(w, `{"id":132,"name":"ditto","height":3,"weight":40,"types":[],"stats":[],
				"sprites":{"front_default":"small.png","other":{}},
				"species":{"name":"ditto","url":"%s/api/v2/pokemon-species/132/"}}`, api.server.URL)
		case "mew":
			fmt.Fprintf(w, `{"id":151,"name":"mew","types":[],"stats":[],"sprites":{},
				"species":{"name":"mew","url":"%s/api/v2/pokemon-species/151/"}}`, api.server.URL)
		case "garbled":
			fmt.Fprint(w, `{"id":`)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/v2/pokemon-species/{id}/", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "25":
			fmt.Fprint(w, `{"flavor_text_entries":[
				{"flavor_text":"Quand plusieurs","language":{"name":"fr"}},
				{"flavor_text":"When several of\nthese POKéMON\fgather, their","language":{"name":"en"}},
				{"flavor_text":"second english","language":{"name":"en"}}]}`)
		case "132":
			fmt.Fprint(w, `{"flavor_text_entries":[{"flavor_text":"Kann seine","language":{"name":"de"}}]}`)
		default:
			http.Error(w, "down", http.StatusServiceUnavailable)
		}
	})

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) baseURL() string {
	return a.server.URL + "/api/v2"
}

func TestClient_FetchIndex(t *testing.T) {
	api := newFakeAPI(t)
	client := NewClient(Options{BaseURL: api.baseURL()}, nil, nil)

	index, err := client.FetchIndex(t.Context(), 151, 0)
	require.NoError(t, err)

	require.Len(t, index, 3, "entry without an id is skipped")
	assert.Equal(t, 1, index[0].ID)
	assert.Equal(t, "bulbasaur", index[0].RawName)
	assert.Equal(t, 122, index[1].ID)
	assert.Equal(t, 25, index[2].ID)
	assert.Equal(t, api.baseURL()+"/pokemon/25/", index[2].DetailURL)
}

func TestClient_FetchIndex_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL}, nil, nil)
	_, err := client.FetchIndex(t.Context(), 151, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrTransientFetch)
	var fe *entities.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
}

func TestClient_FetchTypes(t *testing.T) {
	api := newFakeAPI(t)
	client := NewClient(Options{BaseURL: api.baseURL()}, nil, nil)

	types, err := client.FetchTypes(t.Context(), api.baseURL()+"/pokemon/1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"grass", "poison"}, types, "slot order")

	_, err = client.FetchTypes(t.Context(), api.baseURL()+"/pokemon/122/")
	assert.ErrorIs(t, err, entities.ErrTransientFetch)

	_, err = client.FetchTypes(t.Context(), api.baseURL()+"/pokemon/999/")
	assert.ErrorIs(t, err, entities.ErrTransientFetch)
}

func TestClient_FetchDetail(t *testing.T) {
	api := newFakeAPI(t)
	client := NewClient(Options{BaseURL: api.baseURL()}, nil, nil)

	detail, err := client.FetchDetail(t.Context(), "Pikachu")
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, 25, detail.ID)
	assert.Equal(t, "Pikachu", detail.Name)
	assert.Equal(t, "art/25.png", detail.ImageURL)
	assert.Equal(t, []string{"electric"}, detail.Types)
	assert.Equal(t, 4, detail.Height)
	assert.Equal(t, 60, detail.Weight)
	assert.Equal(t, "When several of these POKéMON gather, their", detail.Description)
	require.Len(t, detail.Stats, 6)
	assert.Equal(t, entities.Stat{Name: entities.StatSpeed, BaseStat: 90}, detail.Stats[5])
	assert.Equal(t, 320, detail.Total())
}

func TestClient_FetchDetail_Cases(t *testing.T) {
	api := newFakeAPI(t)
	client := NewClient(Options{BaseURL: api.baseURL()}, nil, nil)

	t.Run("not found", func(t *testing.T) {
		detail, err := client.FetchDetail(t.Context(), "agumon")
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("empty identifier", func(t *testing.T) {
		before := api.hits.Load()
		detail, err := client.FetchDetail(t.Context(), "  ")
		require.NoError(t, err)
		assert.Nil(t, detail)
		assert.Equal(t, before, api.hits.Load())
	})

	t.Run("no english description", func(t *testing.T) {
		detail, err := client.FetchDetail(t.Context(), "ditto")
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, entities.DefaultDescription, detail.Description)
		assert.Equal(t, "small.png", detail.ImageURL, "falls back to the default sprite")
	})

	t.Run("species failure", func(t *testing.T) {
		_, err := client.FetchDetail(t.Context(), "mew")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTransientFetch)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := client.FetchDetail(t.Context(), "garbled")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTransientFetch)
		assert.Contains(t, err.Error(), "decoding response")
	})
}

func TestClient_Cache(t *testing.T) {
	api := newFakeAPI(t)
	cache := &mocks.ResponseCache{}
	client := NewClient(Options{BaseURL: api.baseURL()}, cache, nil)

	_, err := client.FetchDetail(t.Context(), "pikachu")
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.hits.Load())
	assert.Len(t, cache.Entries, 2, "detail and species cached by url")
	assert.Contains(t, cache.Entries, api.baseURL()+"/pokemon/pikachu")

	_, err = client.FetchDetail(t.Context(), "PIKACHU")
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.hits.Load(), "second fetch served from cache")

	_, err = client.FetchDetail(t.Context(), "agumon")
	require.NoError(t, err)
	assert.Len(t, cache.Entries, 2, "404 not cached")
}

func TestClient_CacheKeepsOnlyDecodedBodies(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		maxBody    int64
		wantErr    string
	}{
		{name: "malformed body", identifier: "garbled", maxBody: maxBodyBytes, wantErr: "decoding response"},
		{name: "oversized body", identifier: "pikachu", maxBody: 64, wantErr: "response exceeds 64 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t)
			cache := &mocks.ResponseCache{}
			client := NewClient(Options{BaseURL: api.baseURL()}, cache, nil)
			client.maxBody = tt.maxBody

			for i := range 2 {
				_, err := client.FetchDetail(t.Context(), tt.identifier)
				require.Error(t, err)
				assert.ErrorIs(t, err, entities.ErrTransientFetch)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, int64(i+1), api.hits.Load(), "every fetch reaches the server")
			}
			assert.Empty(t, cache.Entries)
			assert.Zero(t, cache.PutCallCount)
		})
	}
}

func TestClient_CacheFailureIsBypassed(t *testing.T) {
	api := newFakeAPI(t)
	cache := &mocks.ResponseCache{GetErr: errors.New("locked"), PutErr: errors.New("locked")}
	client := NewClient(Options{BaseURL: api.baseURL()}, cache, nil)

	detail, err := client.FetchDetail(t.Context(), "pikachu")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 2, cache.PutCallCount)
}

func TestClient_RateLimit(t *testing.T) {
	api := newFakeAPI(t)
	cache := &mocks.ResponseCache{}
	client := NewClient(Options{BaseURL: api.baseURL(), RequestsPerSecond: 0.001, Burst: 1}, cache, nil)
	typesURL := api.baseURL() + "/pokemon/1/"

	_, err := client.FetchTypes(t.Context(), typesURL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	_, err = client.FetchIndex(ctx, 151, 0)
	require.Error(t, err, "token bucket is empty")
	assert.ErrorIs(t, err, entities.ErrTransientFetch)

	_, err = client.FetchTypes(ctx, typesURL)
	assert.NoError(t, err, "cache hits are not throttled")
	assert.Equal(t, int64(1), api.hits.Load())
}

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{url: "https://pokeapi.co/api/v2/pokemon/25/", want: 25},
		{url: "https://pokeapi.co/api/v2/pokemon/151", want: 151},
		{url: "https://pokeapi.co/api/v2/pokemon/", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := idFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanFlavorText(t *testing.T) {
	assert.Equal(t, "a b  c", cleanFlavorText("a\fb\n\nc"))
	assert.False(t, strings.ContainsAny(cleanFlavorText("x\ny\fz"), "\n\f"))
}
