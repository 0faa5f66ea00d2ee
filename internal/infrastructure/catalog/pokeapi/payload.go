package pokeapi

// indexPayload is the body of GET /pokemon?limit=&offset=.
type indexPayload struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

// typesPayload is the subset of GET /pokemon/{id} the list view needs.
type typesPayload struct {
	Types []typeSlot `json:"types"`
}

// pokemonPayload is the subset of GET /pokemon/{id|name} the detail view needs.
type pokemonPayload struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Height int        `json:"height"`
	Weight int        `json:"weight"`
	Types  []typeSlot `json:"types"`
	Stats  []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        map[string]struct {
			FrontDefault string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
	Species namedResource `json:"species"`
}

// speciesPayload is the subset of GET /pokemon-species/{id} used for descriptions.
type speciesPayload struct {
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   namedResource `json:"language"`
	} `json:"flavor_text_entries"`
}
