// Package hotels ranks candidate hotels by proximity to the trip's day
// centroids plus quality signals. Ordering is fully deterministic: score,
// then rating, then review count, then id.
package hotels

import (
	"fmt"
	"math"
	"sort"

	"cityroute/internal/geo"
	"cityroute/internal/models"
)

// Defaults for the rating filter cascade
const (
	DefaultMinRating     = 4.0
	DefaultMinCandidates = 3
	DefaultRelaxTo       = 3.5
)

// Weights is the composite score weighting. Distance applies to
// (1 − normalized distance), so all three pull the score upward.
type Weights struct {
	Distance   float64 `json:"dist"`
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"pop"`
}

// DefaultWeights returns the historical scoring constants
func DefaultWeights() Weights {
	return Weights{Distance: 0.50, Rating: 0.35, Popularity: 0.15}
}

// Validate rejects weights that cannot produce a meaningful ranking
func (w Weights) Validate() error {
	if w.Distance < 0 || w.Rating < 0 || w.Popularity < 0 {
		return fmt.Errorf("hotel weights must be non-negative")
	}
	if w.Distance+w.Rating+w.Popularity == 0 {
		return fmt.Errorf("hotel weights must not all be zero")
	}
	return nil
}

// Options configures a ranking run. Zero values fall back to the defaults.
type Options struct {
	MinRating     float64
	MinCandidates int
	RelaxTo       float64
	Weights       *Weights
}

func (o Options) withDefaults() Options {
	if o.MinRating == 0 {
		o.MinRating = DefaultMinRating
	}
	if o.MinCandidates == 0 {
		o.MinCandidates = DefaultMinCandidates
	}
	if o.RelaxTo == 0 {
		o.RelaxTo = DefaultRelaxTo
	}
	return o
}

// Scored is one ranked hotel row, returned for debugging and explainability
type Scored struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	AvgDistKm   float64 `json:"avg_dist_km"`
	Score       float64 `json:"score"`
}

// Rank orders hotel ids best-first. See RankScored for the scored rows.
func Rank(hotels []models.Hotel, dayCentroids []models.Coordinates, opts Options) []string {
	ids, _ := RankScored(hotels, dayCentroids, opts)
	return ids
}

// RankScored scores and orders candidate hotels. The rating filter relaxes to
// opts.RelaxTo when fewer than opts.MinCandidates survive, and falls back to
// the full set rather than returning nothing when hotels exist.
func RankScored(hotels []models.Hotel, dayCentroids []models.Coordinates, opts Options) ([]string, []Scored) {
	if len(hotels) == 0 {
		return []string{}, []Scored{}
	}
	opts = opts.withDefaults()

	candidates := filterByRating(hotels, opts.MinRating)
	if len(candidates) < opts.MinCandidates {
		candidates = filterByRating(hotels, opts.RelaxTo)
	}
	if len(candidates) == 0 {
		candidates = hotels
	}

	avgDists := make([]float64, len(candidates))
	ratings := make([]float64, len(candidates))
	pops := make([]float64, len(candidates))
	for i := range candidates {
		avgDists[i] = avgDistanceKm(candidates[i].GetCoords(), dayCentroids)
		ratings[i] = candidates[i].Rating
		pops[i] = math.Log1p(float64(candidates[i].ReviewCount))
	}

	nd := minMax(avgDists)
	nr := minMax(ratings)
	np := minMax(pops)

	w := DefaultWeights()
	if opts.Weights != nil {
		w = *opts.Weights
	}

	scored := make([]Scored, len(candidates))
	for i := range candidates {
		scored[i] = Scored{
			ID:          candidates[i].ID,
			Name:        candidates[i].Name,
			Rating:      candidates[i].Rating,
			ReviewCount: candidates[i].ReviewCount,
			AvgDistKm:   avgDists[i],
			Score:       w.Distance*(1-nd[i]) + w.Rating*nr[i] + w.Popularity*np[i],
		}
	}

	sort.Slice(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		if scored[a].Rating != scored[b].Rating {
			return scored[a].Rating > scored[b].Rating
		}
		if scored[a].ReviewCount != scored[b].ReviewCount {
			return scored[a].ReviewCount > scored[b].ReviewCount
		}
		return scored[a].ID < scored[b].ID
	})

	ids := make([]string, len(scored))
	for i := range scored {
		ids[i] = scored[i].ID
	}
	return ids, scored
}

func filterByRating(hotels []models.Hotel, threshold float64) []models.Hotel {
	var out []models.Hotel
	for _, h := range hotels {
		if h.Rating >= threshold {
			out = append(out, h)
		}
	}
	return out
}

func avgDistanceKm(from models.Coordinates, points []models.Coordinates) float64 {
	if len(points) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range points {
		total += geo.HaversineKm(from, p)
	}
	return total / float64(len(points))
}

// minMax normalizes to [0,1]; an all-equal feature maps to a constant 0.5 so
// it neither divides by zero nor discriminates spuriously.
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
