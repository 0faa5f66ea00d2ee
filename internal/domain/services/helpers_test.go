package services

import (
	"fmt"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

func detailURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id)
}

func indexOf(n int) []entities.IndexEntry {
	index := make([]entities.IndexEntry, n)
	for i := range index {
		id := i + 1
		index[i] = entities.IndexEntry{ID: id, RawName: fmt.Sprintf("mon-%d", id), DetailURL: detailURL(id)}
	}
	return index
}

func newDetail(id int, name string, values ...int) *entities.EntityDetail {
	d := &entities.EntityDetail{ID: id, Name: name, Types: []string{"normal"}}
	for i, v := range values {
		d.Stats = append(d.Stats, entities.Stat{Name: entities.StatOrder[i], BaseStat: v})
	}
	return d
}
