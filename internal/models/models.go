package models

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// POI represents a visitable point of interest
type POI struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	MustGo      bool    `json:"must_go"`
}

// GetCoords returns the coordinates of the POI
func (p *POI) GetCoords() Coordinates {
	return Coordinates{Lat: p.Lat, Lon: p.Lon}
}

// Hotel represents a candidate trip hotel
type Hotel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	PriceLevel  string  `json:"price_level,omitempty"`
}

// GetCoords returns the coordinates of the hotel
func (h *Hotel) GetCoords() Coordinates {
	return Coordinates{Lat: h.Lat, Lon: h.Lon}
}

// Restaurant represents a candidate lunch/dinner stop.
// DietTags is pipe-separated ("vegetarian|vegan"); OpenLunch/OpenDinner are
// "HH:MM-HH:MM" open-hour strings.
type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	PriceLevel  string  `json:"price_level,omitempty"`
	DietTags    string  `json:"diet_tags,omitempty"`
	OpenLunch   string  `json:"open_lunch,omitempty"`
	OpenDinner  string  `json:"open_dinner,omitempty"`
}

// GetCoords returns the coordinates of the restaurant
func (r *Restaurant) GetCoords() Coordinates {
	return Coordinates{Lat: r.Lat, Lon: r.Lon}
}

// Cluster is one day-sized geographic group of POIs.
// DayLabel is "day1".."dayK", assigned by sorting centroids by (lon, lat).
type Cluster struct {
	DayLabel string      `json:"day_id"`
	POIIDs   []string    `json:"poi_ids"`
	Centroid Coordinates `json:"centroid"`
}

// ClusterResult is the clusterer output: labeled clusters plus density warnings
type ClusterResult struct {
	Clusters []Cluster `json:"clusters"`
	Warnings []string  `json:"warnings"`
}

// DayPlan is the persisted daily result. Meal ids stay empty until the
// restaurant selector fills them.
type DayPlan struct {
	ID               string   `json:"id"`
	VisitIDs         []string `json:"visit_ids"`
	LunchID          string   `json:"lunch_id,omitempty"`
	DinnerID         string   `json:"dinner_id,omitempty"`
	TotalTimeMinutes float64  `json:"total_time_minutes"`
}

// Lock pins a selection so it overrides automatic choice.
// Only hotel locks are currently enforced by the planner.
type Lock struct {
	Type string `json:"type"` // "poi" | "hotel" | "restaurant"
	ID   string `json:"id"`
}

// Preferences is the loosely-typed planning configuration. Unrecognized JSON
// keys are ignored on decode; zero values mean "use the default".
type Preferences struct {
	Days               int      `json:"days"`
	TravelMode         string   `json:"travel_mode,omitempty"` // advisory only
	DetourLimitMinutes float64  `json:"detour_limit_minutes,omitempty"`
	OnlyMustGo         bool     `json:"only_must_go,omitempty"`
	MaxPOIsTotal       *int     `json:"max_pois_total,omitempty"`
	RestaurantRadiusKm *float64 `json:"restaurant_radius_km,omitempty"`
	PriceRange         string   `json:"price_range,omitempty"`
	DietTags           []string `json:"diet_tags,omitempty"`
	CitySpeedKmh       float64  `json:"city_speed_kmh,omitempty"`
}

// Itinerary is the persisted trip result. The original inputs are cached so
// meal autopick and regeneration work without resubmission.
type Itinerary struct {
	ID       string      `json:"id"`
	City     string      `json:"city"`
	Prefs    Preferences `json:"prefs"`
	DayIDs   []string    `json:"day_ids"`
	HotelID  string      `json:"hotel_id,omitempty"`
	Warnings []string    `json:"warnings"`

	// Cached inputs for autopick/regenerate
	POIs        []POI        `json:"_pois"`
	Hotels      []Hotel      `json:"_hotels"`
	Restaurants []Restaurant `json:"_restaurants"`
	Locks       []Lock       `json:"_locks"`
}

// POIIndex maps cached POI ids to their coordinates
func (it *Itinerary) POIIndex() map[string]Coordinates {
	idx := make(map[string]Coordinates, len(it.POIs))
	for i := range it.POIs {
		idx[it.POIs[i].ID] = it.POIs[i].GetCoords()
	}
	return idx
}
