package entities

import "strings"

// MaxBaseStat is the largest possible base stat value.
const MaxBaseStat = 255

// StatName identifies one of the six base stats.
type StatName string

// The fixed stat schema, in provider order.
const (
	StatHP             StatName = "hp"
	StatAttack         StatName = "attack"
	StatDefense        StatName = "defense"
	StatSpecialAttack  StatName = "special-attack"
	StatSpecialDefense StatName = "special-defense"
	StatSpeed          StatName = "speed"
)

// StatOrder is the canonical order of the stat schema.
var StatOrder = []StatName{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

var statLabels = map[StatName]string{
	StatHP:             "HP",
	StatAttack:         "Attack",
	StatDefense:        "Defense",
	StatSpecialAttack:  "Sp. Atk",
	StatSpecialDefense: "Sp. Def",
	StatSpeed:          "Speed",
}

var statShortLabels = map[StatName]string{
	StatHP:             "HP",
	StatAttack:         "ATK",
	StatDefense:        "DEF",
	StatSpecialAttack:  "SP.ATK",
	StatSpecialDefense: "SP.DEF",
	StatSpeed:          "SPD",
}

// Label returns the human-readable stat name used in stat bars.
func (n StatName) Label() string {
	if l, ok := statLabels[n]; ok {
		return l
	}
	return string(n)
}

// ShortLabel returns the abbreviated name used on radar charts.
func (n StatName) ShortLabel() string {
	if l, ok := statShortLabels[n]; ok {
		return l
	}
	return strings.ToUpper(string(n))
}

// Stat is one named base stat value.
type Stat struct {
	Name     StatName `json:"name"`
	BaseStat int      `json:"base_stat"`
}
