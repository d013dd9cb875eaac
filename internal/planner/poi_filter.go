package planner

import (
	"math"
	"sort"

	"cityroute/internal/models"
)

// ApplyMustGo keeps only must-go POIs when onlyMustGo is set
func ApplyMustGo(pois []models.POI, onlyMustGo bool) []models.POI {
	if !onlyMustGo {
		return pois
	}
	var out []models.POI
	for _, p := range pois {
		if p.MustGo {
			out = append(out, p)
		}
	}
	return out
}

// ScorePOI is the composite popularity score used for the top-K cap:
// rating plus a damped review-count term.
func ScorePOI(p *models.POI) float64 {
	return p.Rating + 0.2*math.Log1p(float64(p.ReviewCount))
}

// CapTopK keeps the k best-scoring POIs, ties broken by id ascending.
// The bool reports whether anything was trimmed.
func CapTopK(pois []models.POI, k int) ([]models.POI, bool) {
	if k <= 0 || len(pois) <= k {
		return pois, false
	}
	ranked := make([]models.POI, len(pois))
	copy(ranked, pois)
	sort.Slice(ranked, func(a, b int) bool {
		sa, sb := ScorePOI(&ranked[a]), ScorePOI(&ranked[b])
		if sa != sb {
			return sa > sb
		}
		return ranked[a].ID < ranked[b].ID
	})
	return ranked[:k], true
}
