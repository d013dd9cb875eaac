// Package routing orders one day's POIs into an efficient open path using
// nearest-neighbor construction and bounded 2-opt improvement. Results are
// deterministic: start selection and every tie-break use fixed keys.
package routing

import (
	"log"

	"cityroute/internal/geo"
	"cityroute/internal/models"
)

// DefaultMaxIters caps full 2-opt passes over a day's route
const DefaultMaxIters = 200

// improvement below this tolerance does not count
const epsilon = 1e-9

// Options configures a single day's route construction
type Options struct {
	// Centroid, when set, picks the start POI nearest to it (unless StartID wins)
	Centroid *models.Coordinates
	// StartID forces the start POI when it names a POI in the set
	StartID string
	// CitySpeedKmh is clamped into the city speed band; 0 means the default
	CitySpeedKmh float64
	// MaxIters bounds 2-opt full passes; 0 means DefaultMaxIters
	MaxIters int
}

// Day builds a day's visit order. Returns the ordered POI ids, the estimated
// total travel time in minutes, and the total distance in kilometers.
func Day(pois []models.POI, opts Options) ([]string, float64, float64) {
	if len(pois) == 0 {
		return []string{}, 0, 0
	}

	speed := opts.CitySpeedKmh
	if speed == 0 {
		speed = geo.DefaultCitySpeedKmh
	}
	maxIters := opts.MaxIters
	if maxIters <= 0 {
		maxIters = DefaultMaxIters
	}

	ids := make([]string, len(pois))
	pts := make([]models.Coordinates, len(pois))
	for i := range pois {
		ids[i] = pois[i].ID
		pts[i] = pois[i].GetCoords()
	}

	start := chooseStartIndex(pts, ids, opts.Centroid, opts.StartID)
	orderPts, orderIDs := nearestNeighbor(pts, ids, start)
	orderPts, orderIDs = twoOpt(orderPts, orderIDs, maxIters)

	distKm := geo.PathLengthKm(orderPts)
	minutes := geo.KmToMinutes(distKm, speed)

	log.Printf("[ROUTING] day routed: n=%d start=%s dist=%.3fkm time=%.1fmin speed=%.1f",
		len(pois), orderIDs[0], distKm, minutes, speed)

	return orderIDs, minutes, distKm
}

// chooseStartIndex is layered and deterministic: locked start id, then the POI
// nearest the centroid hint, then the lexicographically smallest (lon, lat).
func chooseStartIndex(pts []models.Coordinates, ids []string, centroid *models.Coordinates, startID string) int {
	if startID != "" {
		for i, id := range ids {
			if id == startID {
				return i
			}
		}
	}

	if centroid != nil {
		best := 0
		bestD := geo.HaversineKm(*centroid, pts[0])
		for i := 1; i < len(pts); i++ {
			if d := geo.HaversineKm(*centroid, pts[i]); d < bestD {
				bestD = d
				best = i
			}
		}
		return best
	}

	best := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].Lon < pts[best].Lon ||
			(pts[i].Lon == pts[best].Lon && pts[i].Lat < pts[best].Lat) {
			best = i
		}
	}
	return best
}

// nearestNeighbor extends the path to the closest unvisited POI until done
func nearestNeighbor(pts []models.Coordinates, ids []string, start int) ([]models.Coordinates, []string) {
	n := len(pts)
	if n <= 1 {
		return pts, ids
	}

	visited := make([]bool, n)
	orderPts := make([]models.Coordinates, 0, n)
	orderIDs := make([]string, 0, n)

	cur := start
	visited[cur] = true
	orderPts = append(orderPts, pts[cur])
	orderIDs = append(orderIDs, ids[cur])

	for len(orderPts) < n {
		best := -1
		bestD := 0.0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := geo.HaversineKm(pts[cur], pts[j])
			if best == -1 || d < bestD {
				bestD = d
				best = j
			}
		}
		visited[best] = true
		orderPts = append(orderPts, pts[best])
		orderIDs = append(orderIDs, ids[best])
		cur = best
	}
	return orderPts, orderIDs
}

// twoOpt improves an open path by reversing segments that strictly shorten it.
// Both endpoints stay fixed; passes stop at maxIters or on a pass with no
// improvement.
func twoOpt(pts []models.Coordinates, ids []string, maxIters int) ([]models.Coordinates, []string) {
	if len(pts) < 4 {
		return pts, ids
	}

	improved := true
	for iters := 0; improved && iters < maxIters; iters++ {
		improved = false
		for i := 1; i < len(pts)-2; i++ {
			for j := i + 1; j < len(pts)-1; j++ {
				// replace edges (i-1,i) and (j,j+1) with (i-1,j) and (i,j+1)
				a, b := pts[i-1], pts[i]
				c, d := pts[j], pts[j+1]
				old := geo.HaversineKm(a, b) + geo.HaversineKm(c, d)
				alt := geo.HaversineKm(a, c) + geo.HaversineKm(b, d)
				if alt+epsilon < old {
					reverse(pts, i, j)
					reverseIDs(ids, i, j)
					improved = true
				}
			}
		}
	}
	return pts, ids
}

func reverse(s []models.Coordinates, i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseIDs(s []string, i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
