package domain

// Station is one joined info+prices row, keyed by column name.
// The column set follows the store schema, so it is kept as a map.
type Station map[string]any

// ID returns the station id column.
func (s Station) ID() any { return s["id"] }

// Average coordinates of all stations sharing a locality.
type LocalityAverage struct {
	Locality string  `json:"locality"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// UnknownLastUpdate is shown when the store has no last_update entry.
const UnknownLastUpdate = "Unknown"

// StationPage is everything the index page renders, computed per request.
type StationPage struct {
	Stations    []Station
	LastUpdate  string
	Localidades []LocalityAverage
}

// Bindings returns the template bindings for the page.
func (p *StationPage) Bindings() map[string]any {
	return map[string]any{
		"stations":    p.Stations,
		"last_update": p.LastUpdate,
		"localidades": p.Localidades,
	}
}
