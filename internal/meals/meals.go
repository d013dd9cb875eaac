// Package meals picks a lunch and a dinner restaurant for one day's route
// under time-window, diet, price, and detour constraints. Selection cascades
// through relaxation stages and records a note for every stage it takes, so a
// caller always learns why a pick was loosened or skipped.
package meals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"cityroute/internal/geo"
	"cityroute/internal/models"
	"cityroute/internal/timewin"
)

// DefaultDetourLimitMin bounds the extra travel a meal stop may add
const DefaultDetourLimitMin = 15.0

// Weights is the candidate scoring weighting. Detour subtracts; rating and
// popularity add.
type Weights struct {
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"pop"`
	Detour     float64 `json:"detour"`
}

// DefaultWeights returns the historical scoring constants
func DefaultWeights() Weights {
	return Weights{Rating: 0.60, Popularity: 0.25, Detour: 0.15}
}

// Validate rejects weights that cannot produce a meaningful ranking
func (w Weights) Validate() error {
	if w.Rating < 0 || w.Popularity < 0 || w.Detour < 0 {
		return fmt.Errorf("meal weights must be non-negative")
	}
	if w.Rating+w.Popularity == 0 {
		return fmt.Errorf("meal weights need a positive rating or popularity term")
	}
	return nil
}

// Options configures one day's autopick run
type Options struct {
	// DetourLimitMin caps acceptable insertion detours; 0 means the default
	DetourLimitMin float64
	// CitySpeedKmh is clamped into the city speed band; 0 means the default
	CitySpeedKmh float64
	// DietTags are required tags (all must match) for the strict stage
	DietTags []string
	// PriceRange is the exact price tier for the strict stage; empty matches all
	PriceRange string
	// RadiusKm, when positive, pre-filters candidates around the route centroid
	RadiusKm float64
	// Weights overrides the scoring constants
	Weights *Weights
}

// UsedSet tracks restaurant ids already assigned somewhere in the trip.
// The caller owns it and threads one instance across a whole autopick run.
type UsedSet map[string]bool

// AutopickForDay chooses lunch and dinner for a day's ordered route points.
// Chosen ids are added to used, and lunch joins the set before dinner is
// picked so a day never repeats its own lunch.
func AutopickForDay(routePts []models.Coordinates, restaurants []models.Restaurant, opts Options, used UsedSet) (lunchID, dinnerID string, notes []string) {
	if used == nil {
		used = UsedSet{}
	}
	if opts.DetourLimitMin <= 0 {
		opts.DetourLimitMin = DefaultDetourLimitMin
	}
	if opts.CitySpeedKmh == 0 {
		opts.CitySpeedKmh = geo.DefaultCitySpeedKmh
	}

	pool := restaurants
	radiusRequested := opts.RadiusKm > 0

	if radiusRequested && len(routePts) > 0 {
		if centroid, ok := geo.Centroid(routePts); ok {
			var nearby []models.Restaurant
			for _, r := range restaurants {
				if geo.HaversineKm(r.GetCoords(), centroid) <= opts.RadiusKm {
					nearby = append(nearby, r)
				}
			}
			if len(nearby) > 0 {
				pool = nearby
			} else {
				notes = append(notes, fmt.Sprintf(
					"No restaurants within %.2f km of day centroid; falling back to global pool.",
					opts.RadiusKm))
			}
		}
	}

	// Relax/limit notes carry the radius context when a radius was requested
	fallbackPhrase := ""
	if radiusRequested {
		fallbackPhrase = "falling back to global pool due to radius constraint."
	}

	lunchID, lunchNotes := pickFromPool(routePts, pool, slotSpec{
		window: timewin.LunchWindow,
		open:   func(r *models.Restaurant) string { return r.OpenLunch },
	}, opts, used, fallbackPhrase)
	if lunchID != "" {
		used[lunchID] = true
	}

	dinnerID, dinnerNotes := pickFromPool(routePts, pool, slotSpec{
		window: timewin.DinnerWindow,
		open:   func(r *models.Restaurant) string { return r.OpenDinner },
	}, opts, used, fallbackPhrase)
	if dinnerID != "" {
		used[dinnerID] = true
	}

	notes = append(notes, lunchNotes...)
	notes = append(notes, dinnerNotes...)
	return lunchID, dinnerID, notes
}

// slotSpec binds a meal slot to its target window and open-hours field
type slotSpec struct {
	window timewin.Window
	open   func(*models.Restaurant) string
}

type candidate struct {
	models.Restaurant
	detourMin float64
	logPop    float64
}

// pickFromPool applies the cascade for one meal slot:
//  1. open in window, exact price, all diet tags, not already used
//  2. open in window, not already used
//  3. open in window (repeats allowed)
//  4. nothing open: no selection
func pickFromPool(routePts []models.Coordinates, pool []models.Restaurant, slot slotSpec, opts Options, avoid UsedSet, fallbackPhrase string) (string, []string) {
	var notes []string

	var filtered []models.Restaurant
	for i := range pool {
		r := &pool[i]
		if avoid[r.ID] {
			continue
		}
		if !timewin.IsOpenForWindow(slot.open(r), slot.window) {
			continue
		}
		if !passesPrice(r, opts.PriceRange) {
			continue
		}
		if !passesDiet(r, opts.DietTags) {
			continue
		}
		filtered = append(filtered, *r)
	}

	if len(filtered) == 0 {
		// Relax diet/price but still avoid repeats
		var relaxed []models.Restaurant
		for i := range pool {
			r := &pool[i]
			if avoid[r.ID] {
				continue
			}
			if timewin.IsOpenForWindow(slot.open(r), slot.window) {
				relaxed = append(relaxed, *r)
			}
		}
		if len(relaxed) > 0 {
			filtered = relaxed
			notes = append(notes, withPhrase("Relaxed diet/price filters due to no matches.", fallbackPhrase))
		} else {
			// Last resort: allow repeats, still require an open window
			var repeats []models.Restaurant
			for i := range pool {
				r := &pool[i]
				if timewin.IsOpenForWindow(slot.open(r), slot.window) {
					repeats = append(repeats, *r)
				}
			}
			if len(repeats) == 0 {
				notes = append(notes, "No restaurants open in the target window.")
				return "", notes
			}
			filtered = repeats
			notes = append(notes, withPhrase("Relaxed filters and allowed repeats (no other open options).", fallbackPhrase))
		}
	}

	cands := make([]candidate, 0, len(filtered))
	for _, r := range filtered {
		cands = append(cands, candidate{
			Restaurant: r,
			detourMin:  minDetourToRoute(routePts, r.GetCoords(), opts.CitySpeedKmh),
			logPop:     math.Log1p(float64(r.ReviewCount)),
		})
	}

	within := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if c.detourMin <= opts.DetourLimitMin {
			within = append(within, c)
		}
	}
	if len(within) > 0 {
		best := rankCandidates(within, opts)
		return best.ID, notes
	}

	// Nothing within the limit: take the nearest-by-detour feasible candidate
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].detourMin != cands[b].detourMin {
			return cands[a].detourMin < cands[b].detourMin
		}
		if cands[a].Rating != cands[b].Rating {
			return cands[a].Rating > cands[b].Rating
		}
		if cands[a].ReviewCount != cands[b].ReviewCount {
			return cands[a].ReviewCount > cands[b].ReviewCount
		}
		return cands[a].ID < cands[b].ID
	})
	best := cands[0]
	notes = append(notes, withPhrase(fmt.Sprintf(
		"No candidates within detour <= %g min; chose nearest feasible (detour ~ %.1f min).",
		opts.DetourLimitMin, best.detourMin), fallbackPhrase))
	return best.ID, notes
}

// rankCandidates scores within-limit candidates and returns the winner.
// Rating and popularity are min-max normalized; detour is capped at the limit
// and scaled to [0,1] so a long detour always costs the same penalty.
func rankCandidates(cands []candidate, opts Options) candidate {
	w := DefaultWeights()
	if opts.Weights != nil {
		w = *opts.Weights
	}

	ratings := make([]float64, len(cands))
	pops := make([]float64, len(cands))
	for i, c := range cands {
		ratings[i] = c.Rating
		pops[i] = c.logPop
	}
	nr := minMax(ratings)
	np := minMax(pops)

	scores := make([]float64, len(cands))
	for i, c := range cands {
		ndet := math.Min(c.detourMin, opts.DetourLimitMin) / opts.DetourLimitMin
		scores[i] = w.Rating*nr[i] + w.Popularity*np[i] - w.Detour*ndet
	}

	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		a, b := order[x], order[y]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if cands[a].Rating != cands[b].Rating {
			return cands[a].Rating > cands[b].Rating
		}
		if cands[a].ReviewCount != cands[b].ReviewCount {
			return cands[a].ReviewCount > cands[b].ReviewCount
		}
		return cands[a].ID < cands[b].ID
	})
	return cands[order[0]]
}

// minDetourToRoute is the least insertion cost over all consecutive route
// pairs; zero when the route has fewer than two points.
func minDetourToRoute(routePts []models.Coordinates, stop models.Coordinates, citySpeedKmh float64) float64 {
	if len(routePts) < 2 {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i < len(routePts)-1; i++ {
		d := geo.DetourMinutes(routePts[i], routePts[i+1], stop, citySpeedKmh)
		if d < best {
			best = d
		}
	}
	return best
}

func passesPrice(r *models.Restaurant, desired string) bool {
	if desired == "" {
		return true
	}
	return strings.TrimSpace(r.PriceLevel) == strings.TrimSpace(desired)
}

// passesDiet requires every desired tag to appear in the restaurant's
// pipe-separated tag list (case-insensitive).
func passesDiet(r *models.Restaurant, desired []string) bool {
	if len(desired) == 0 {
		return true
	}
	have := make(map[string]bool)
	for _, t := range strings.Split(r.DietTags, "|") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			have[t] = true
		}
	}
	for _, need := range desired {
		if !have[strings.ToLower(strings.TrimSpace(need))] {
			return false
		}
	}
	return true
}

func withPhrase(msg, phrase string) string {
	if phrase == "" {
		return msg
	}
	return msg + " " + phrase
}

func minMax(values []float64) []float64 {
	if len(values) == 0 {
		return values
	}
	vmin, vmax := values[0], values[0]
	for _, v := range values[1:] {
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}
	out := make([]float64, len(values))
	if math.Abs(vmax-vmin) < 1e-12 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - vmin) / (vmax - vmin)
	}
	return out
}
