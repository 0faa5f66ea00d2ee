package entities

// DefaultDescription is used when the provider has no English flavor text.
const DefaultDescription = "No description available."

// EntityDetail is the full record for one entity.
type EntityDetail struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"`
	Types       []string `json:"types"`
	Stats       []Stat   `json:"stats"`
	Height      int      `json:"height"` // decimetres
	Weight      int      `json:"weight"` // hectograms
	Description string   `json:"description"`
}

// Summary projects the detail down to its list-view fields.
func (d *EntityDetail) Summary() EntitySummary {
	return EntitySummary{ID: d.ID, Name: d.Name, Types: d.Types}
}

// StatValue returns the base value for name and whether the entity has it.
func (d *EntityDetail) StatValue(name StatName) (int, bool) {
	for _, s := range d.Stats {
		if s.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

// Total returns the sum of all base stats.
func (d *EntityDetail) Total() int {
	total := 0
	for _, s := range d.Stats {
		total += s.BaseStat
	}
	return total
}

// HeightMeters converts the provider height to metres.
func (d *EntityDetail) HeightMeters() float64 {
	return float64(d.Height) / 10
}

// WeightKilograms converts the provider weight to kilograms.
func (d *EntityDetail) WeightKilograms() float64 {
	return float64(d.Weight) / 10
}

// StatVector returns the stats in StatOrder scaled to [0,1].
// Stats the entity lacks contribute 0.
func (d *EntityDetail) StatVector() []float32 {
	vec := make([]float32, len(StatOrder))
	for i, name := range StatOrder {
		v, _ := d.StatValue(name)
		vec[i] = float32(v) / MaxBaseStat
	}
	return vec
}
