// Package planner sequences the full generation pipeline:
// validate → filter POIs → cluster → route each day → aggregate centroids →
// rank or lock the hotel → persist. It also fills meals per day and
// regenerates itineraries from their cached inputs.
package planner

import (
	"context"
	"fmt"
	"log"

	"cityroute/internal/cluster"
	"cityroute/internal/database"
	"cityroute/internal/geo"
	"cityroute/internal/hotels"
	"cityroute/internal/meals"
	"cityroute/internal/models"
	"cityroute/internal/routing"
)

// Pipeline defaults, overridable via Config
const (
	DefaultDailyBudgetMin = 7 * 60
	DefaultDetourMin      = 15.0
	DefaultMaxPOIsTotal   = 40
)

// Config holds the planner's tunable knobs. Zero values mean the defaults.
type Config struct {
	DailyTimeBudgetMin float64
	DefaultDetourMin   float64
	CitySpeedKmh       float64
	RouterMaxIters     int
	ClusterSeed        int64
}

func (c Config) withDefaults() Config {
	if c.DailyTimeBudgetMin <= 0 {
		c.DailyTimeBudgetMin = DefaultDailyBudgetMin
	}
	if c.DefaultDetourMin <= 0 {
		c.DefaultDetourMin = DefaultDetourMin
	}
	if c.CitySpeedKmh == 0 {
		c.CitySpeedKmh = geo.DefaultCitySpeedKmh
	}
	if c.RouterMaxIters <= 0 {
		c.RouterMaxIters = routing.DefaultMaxIters
	}
	if c.ClusterSeed == 0 {
		c.ClusterSeed = cluster.DefaultSeed
	}
	return c
}

// ValidationError marks a caller-actionable configuration problem. Its
// message strings are stable; downstream consumers match on them.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Planner owns the pipeline and its store
type Planner struct {
	store database.Store
	cfg   Config
}

// New creates a planner over the given store
func New(store database.Store, cfg Config) *Planner {
	return &Planner{store: store, cfg: cfg.withDefaults()}
}

// GenerateResult is the ids-only outcome of one generation run
type GenerateResult struct {
	ItineraryID string   `json:"itinerary_id"`
	DayIDs      []string `json:"day_ids"`
	HotelID     string   `json:"hotel_id,omitempty"`
	Warnings    []string `json:"warnings"`
}

// Generate runs the pipeline once and persists the itinerary and its day
// plans. Configuration errors abort the whole request before any clustering
// or routing work; data-quality degradations accumulate as warnings instead.
func (p *Planner) Generate(ctx context.Context, city string, prefs models.Preferences,
	pois []models.POI, hotelList []models.Hotel, restaurants []models.Restaurant,
	locks []models.Lock) (*GenerateResult, error) {

	warnings := []string{}

	k := prefs.Days
	if k <= 0 {
		return nil, &ValidationError{Message: "days must be a positive integer"}
	}

	speed := prefs.CitySpeedKmh
	if speed == 0 {
		speed = p.cfg.CitySpeedKmh
	}

	maxPOIs := DefaultMaxPOIsTotal
	if prefs.MaxPOIsTotal != nil {
		maxPOIs = *prefs.MaxPOIsTotal
	}
	if maxPOIs < k {
		return nil, &ValidationError{Message: "max_pois_total must be ≥ days"}
	}

	filtered := ApplyMustGo(pois, prefs.OnlyMustGo)
	if prefs.OnlyMustGo && len(filtered) == 0 {
		return nil, &ValidationError{Message: "No POIs are marked must_go. Relax only_must_go=False or update POI flags."}
	}

	trimmed, didTrim := CapTopK(filtered, maxPOIs)
	if didTrim {
		warnings = append(warnings, fmt.Sprintf("POIs were trimmed to max_pois_total=%d.", maxPOIs))
	}

	var lockedHotelID string
	for _, l := range locks {
		if l.Type == "hotel" {
			lockedHotelID = l.ID
		}
	}

	cl := cluster.POIs(trimmed, k, cluster.Options{Seed: p.cfg.ClusterSeed})
	warnings = append(warnings, cl.Warnings...)
	if len(cl.Clusters) < k {
		warnings = append(warnings, "Fewer clusters than days after filtering")
	}
	log.Printf("[PLANNER] clustered: city=%s k=%d clusters=%d warnings=%d",
		city, k, len(cl.Clusters), len(warnings))

	poiByID := make(map[string]models.POI, len(trimmed))
	for _, poi := range trimmed {
		poiByID[poi.ID] = poi
	}

	dayIDs := make([]string, 0, len(cl.Clusters))
	dayCentroids := make([]models.Coordinates, 0, len(cl.Clusters))

	for _, c := range cl.Clusters {
		dayID, err := p.store.NextDayID(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocating day id: %w", err)
		}

		dayPOIs := make([]models.POI, 0, len(c.POIIDs))
		for _, pid := range c.POIIDs {
			if poi, ok := poiByID[pid]; ok {
				dayPOIs = append(dayPOIs, poi)
			}
		}

		centroid := c.Centroid
		orderedIDs, totalMinutes, distKm := routing.Day(dayPOIs, routing.Options{
			Centroid:     &centroid,
			CitySpeedKmh: speed,
			MaxIters:     p.cfg.RouterMaxIters,
		})

		if totalMinutes > p.cfg.DailyTimeBudgetMin {
			warnings = append(warnings, fmt.Sprintf(
				"%s exceeds daily time budget (%.0fm > %.0fm); consider adding a day or reducing POIs.",
				dayID, totalMinutes, p.cfg.DailyTimeBudgetMin))
		}

		coords := make([]models.Coordinates, 0, len(orderedIDs))
		for _, pid := range orderedIDs {
			poi := poiByID[pid]
			coords = append(coords, poi.GetCoords())
		}
		dayCenter := centroid
		if ctr, ok := geo.Centroid(coords); ok {
			dayCenter = ctr
		}
		dayCentroids = append(dayCentroids, dayCenter)

		if err := p.store.Days().Put(ctx, &models.DayPlan{
			ID:               dayID,
			VisitIDs:         orderedIDs,
			TotalTimeMinutes: roundTenth(totalMinutes),
		}); err != nil {
			return nil, fmt.Errorf("storing day %s: %w", dayID, err)
		}
		dayIDs = append(dayIDs, dayID)

		log.Printf("[PLANNER] routed %s: pois=%d time=%.1fmin dist=%.3fkm speed=%.1f",
			dayID, len(dayPOIs), totalMinutes, distKm, speed)
	}

	hotelID := lockedHotelID
	if hotelID == "" {
		ranked := hotels.Rank(hotelList, dayCentroids, hotels.Options{})
		if len(ranked) > 0 {
			hotelID = ranked[0]
		} else {
			warnings = append(warnings, "No hotels available to rank.")
		}
	}

	itinID, err := p.store.NextItineraryID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating itinerary id: %w", err)
	}

	it := &models.Itinerary{
		ID:          itinID,
		City:        city,
		Prefs:       prefs,
		DayIDs:      dayIDs,
		HotelID:     hotelID,
		Warnings:    warnings,
		POIs:        trimmed,
		Hotels:      hotelList,
		Restaurants: restaurants,
		Locks:       locks,
	}
	if err := p.store.Itineraries().Put(ctx, it); err != nil {
		return nil, fmt.Errorf("storing itinerary %s: %w", itinID, err)
	}

	log.Printf("[PLANNER] generated: itin=%s days=%d hotel=%s warnings=%d",
		itinID, len(dayIDs), hotelID, len(warnings))

	return &GenerateResult{
		ItineraryID: itinID,
		DayIDs:      dayIDs,
		HotelID:     hotelID,
		Warnings:    warnings,
	}, nil
}

// DayMeals is one day's meal assignment outcome
type DayMeals struct {
	ID       string   `json:"id"`
	LunchID  string   `json:"lunch_id,omitempty"`
	DinnerID string   `json:"dinner_id,omitempty"`
	Notes    []string `json:"notes"`
}

// AutopickResult lists meal assignments per requested day
type AutopickResult struct {
	Days []DayMeals `json:"days"`
}

// AutopickMeals fills lunch/dinner for the given days (all days when dayIDs
// is nil), threading a single no-repeat set across the whole itinerary.
// Already-assigned meals pre-seed the set.
func (p *Planner) AutopickMeals(ctx context.Context, itineraryID string, dayIDs []string,
	detourLimitMin, citySpeedKmh float64) (*AutopickResult, error) {

	it, err := p.store.Itineraries().Get(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	poiIndex := it.POIIndex()
	prefs := it.Prefs

	if detourLimitMin <= 0 {
		detourLimitMin = prefs.DetourLimitMinutes
	}
	if detourLimitMin <= 0 {
		detourLimitMin = p.cfg.DefaultDetourMin
	}
	if citySpeedKmh == 0 {
		citySpeedKmh = prefs.CitySpeedKmh
	}
	if citySpeedKmh == 0 {
		citySpeedKmh = p.cfg.CitySpeedKmh
	}

	used := meals.UsedSet{}
	for _, did := range it.DayIDs {
		if d, err := p.store.Days().Get(ctx, did); err == nil {
			if d.LunchID != "" {
				used[d.LunchID] = true
			}
			if d.DinnerID != "" {
				used[d.DinnerID] = true
			}
		}
	}

	targets := dayIDs
	if len(targets) == 0 {
		targets = it.DayIDs
	}

	opts := meals.Options{
		DetourLimitMin: detourLimitMin,
		CitySpeedKmh:   citySpeedKmh,
		DietTags:       prefs.DietTags,
		PriceRange:     prefs.PriceRange,
	}
	if prefs.RestaurantRadiusKm != nil && *prefs.RestaurantRadiusKm > 0 {
		opts.RadiusKm = *prefs.RestaurantRadiusKm
	}

	out := make([]DayMeals, 0, len(targets))
	for _, did := range targets {
		d, err := p.store.Days().Get(ctx, did)
		if err != nil {
			continue
		}

		routePts := make([]models.Coordinates, 0, len(d.VisitIDs))
		for _, pid := range d.VisitIDs {
			if pt, ok := poiIndex[pid]; ok {
				routePts = append(routePts, pt)
			}
		}

		lunchID, dinnerID, notes := meals.AutopickForDay(routePts, it.Restaurants, opts, used)
		if lunchID != "" {
			d.LunchID = lunchID
		}
		if dinnerID != "" {
			d.DinnerID = dinnerID
		}
		if err := p.store.Days().Put(ctx, d); err != nil {
			return nil, fmt.Errorf("storing day %s: %w", did, err)
		}

		if notes == nil {
			notes = []string{}
		}
		out = append(out, DayMeals{ID: did, LunchID: d.LunchID, DinnerID: d.DinnerID, Notes: notes})
	}

	log.Printf("[PLANNER] autopick: itin=%s days=%d", itineraryID, len(out))
	return &AutopickResult{Days: out}, nil
}

// Regenerate re-runs the full pipeline against the itinerary's cached inputs,
// substituting the new locks. It recomputes clusters and routes from scratch
// and produces a new itinerary; it is not an incremental patch.
func (p *Planner) Regenerate(ctx context.Context, itineraryID string, locks []models.Lock) (*GenerateResult, error) {
	it, err := p.store.Itineraries().Get(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	return p.Generate(ctx, it.City, it.Prefs, it.POIs, it.Hotels, it.Restaurants, locks)
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
