package entities

// AllTypes lists every type tag the catalog knows, in display order.
var AllTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// IsKnownType checks if a type tag is one of AllTypes.
func IsKnownType(t string) bool {
	for _, known := range AllTypes {
		if known == t {
			return true
		}
	}
	return false
}
