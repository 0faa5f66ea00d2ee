package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
)

func TestFavoritesService_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string][]byte
		getErr error
		want   []int
	}{
		{name: "absent", want: []int{}},
		{name: "stored array", stored: map[string][]byte{entities.FavoritesKey: []byte("[25,1,6]")}, want: []int{1, 6, 25}},
		{name: "duplicates collapsed", stored: map[string][]byte{entities.FavoritesKey: []byte("[4,4,4]")}, want: []int{4}},
		{name: "malformed", stored: map[string][]byte{entities.FavoritesKey: []byte("{not json")}, want: []int{}},
		{name: "wrong shape", stored: map[string][]byte{entities.FavoritesKey: []byte(`{"ids":[1]}`)}, want: []int{}},
		{name: "store error", getErr: errors.New("disk unavailable"), want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.KeyValueStore{Values: tt.stored, GetErr: tt.getErr}
			svc := NewFavoritesService(store, nil)

			set := svc.Load(t.Context())

			assert.Equal(t, tt.want, set.IDs())
			assert.Equal(t, tt.want, svc.All())
		})
	}
}

func TestFavoritesService_Toggle(t *testing.T) {
	store := &mocks.KeyValueStore{}
	svc := NewFavoritesService(store, nil)
	svc.Load(t.Context())

	set, err := svc.Toggle(t.Context(), 25)
	require.NoError(t, err)
	assert.True(t, set.Contains(25))
	assert.True(t, svc.IsFavorite(25))
	assert.Equal(t, "[25]", string(store.Values[entities.FavoritesKey]))

	set, err = svc.Toggle(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 25}, set.IDs())
	assert.Equal(t, "[1,25]", string(store.Values[entities.FavoritesKey]))

	set, err = svc.Toggle(t.Context(), 25)
	require.NoError(t, err)
	assert.False(t, svc.IsFavorite(25))
	assert.Equal(t, []int{1}, set.IDs())
	assert.Equal(t, 3, store.SetCallCount)
}

func TestFavoritesService_ToggleTwiceRestoresPersisted(t *testing.T) {
	original := []byte("[1,7,150]")
	store := &mocks.KeyValueStore{Values: map[string][]byte{entities.FavoritesKey: original}}
	svc := NewFavoritesService(store, nil)
	svc.Load(t.Context())

	for _, id := range []int{7, 42} {
		_, err := svc.Toggle(t.Context(), id)
		require.NoError(t, err)
		_, err = svc.Toggle(t.Context(), id)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 7, 150}, svc.All())
		assert.Equal(t, string(original), string(store.Values[entities.FavoritesKey]))
	}
}

func TestFavoritesService_Toggle_PersistFailure(t *testing.T) {
	store := &mocks.KeyValueStore{Values: map[string][]byte{entities.FavoritesKey: []byte("[3]")}}
	svc := NewFavoritesService(store, nil)
	svc.Load(t.Context())

	store.SetErr = errors.New("read-only")
	set, err := svc.Toggle(t.Context(), 9)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving favorites")
	assert.Equal(t, []int{3}, set.IDs())
	assert.False(t, svc.IsFavorite(9))
}

func TestFavoritesService_Add(t *testing.T) {
	store := &mocks.KeyValueStore{Values: map[string][]byte{entities.FavoritesKey: []byte("[7]")}}
	svc := NewFavoritesService(store, nil)
	svc.Load(t.Context())

	set, added, err := svc.Add(t.Context(), 25, 7, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, []int{1, 7, 25}, set.IDs())
	assert.Equal(t, "[1,7,25]", string(store.Values[entities.FavoritesKey]))
	assert.Equal(t, 1, store.SetCallCount)

	_, added, err = svc.Add(t.Context(), 1, 7)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, 1, store.SetCallCount, "nothing new means no write")
}

func TestFavoritesService_Add_PersistFailure(t *testing.T) {
	store := &mocks.KeyValueStore{SetErr: errors.New("read-only")}
	svc := NewFavoritesService(store, nil)
	svc.Load(t.Context())

	set, added, err := svc.Add(t.Context(), 4)
	require.Error(t, err)
	assert.Zero(t, added)
	assert.Empty(t, set.IDs())
	assert.False(t, svc.IsFavorite(4))
}
