package routes

// Route is a maritime route with its fuel and emissions data for one
// reporting year. Routes double as the ship identity for compliance
// computations: routeId stands in for shipId, there is no separate fleet
// entity. At most one route carries the baseline flag at any time.
type Route struct {
	RouteID         string  `json:"routeId"`
	VesselType      string  `json:"vesselType"`
	FuelType        string  `json:"fuelType"`
	Year            int     `json:"year"`
	GHGIntensity    float64 `json:"ghgIntensity"`
	FuelConsumption float64 `json:"fuelConsumption"`
	Distance        float64 `json:"distance"`
	TotalEmissions  float64 `json:"totalEmissions"`
	IsBaseline      bool    `json:"isBaseline"`
}

// EnergyInScope is the route's energy in scope in MJ.
func (r *Route) EnergyInScope() float64 {
	return r.FuelConsumption * 41000
}

// Filter narrows route queries. Zero values match everything.
type Filter struct {
	VesselType string
	FuelType   string
	Year       int
}

// Matches reports whether a route satisfies the filter.
func (f Filter) Matches(r *Route) bool {
	if f.VesselType != "" && r.VesselType != f.VesselType {
		return false
	}
	if f.FuelType != "" && r.FuelType != f.FuelType {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	return true
}

// Page describes pagination metadata for a route listing.
type Page struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
