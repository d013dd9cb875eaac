// Package cluster partitions POIs into day-sized geographic groups using a
// seeded Lloyd's k-means. Output is deterministic for a fixed seed: identical
// input and seed produce identical membership and day labels.
package cluster

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"

	"cityroute/internal/models"
)

// Defaults for the clusterer knobs
const (
	DefaultSeed            = 42
	DefaultMaxIters        = 100
	DefaultMustGoWarnRatio = 0.60
)

// Options configures a clustering run. Zero values fall back to the defaults.
type Options struct {
	Seed            int64
	MaxIters        int
	MustGoWarnRatio float64
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxIters <= 0 {
		o.MaxIters = DefaultMaxIters
	}
	if o.MustGoWarnRatio <= 0 {
		o.MustGoWarnRatio = DefaultMustGoWarnRatio
	}
	return o
}

type xy struct {
	x, y float64
}

// lonScale makes 1 unit of scaled longitude match 1 unit of latitude near the
// city, keeping Euclidean k-means valid at city scale.
func lonScale(meanLatDeg float64) float64 {
	return math.Cos(meanLatDeg * math.Pi / 180)
}

func toXY(lat, lon, scaleX float64) xy {
	return xy{x: lon * scaleX, y: lat}
}

func xyToLatLon(p xy, scaleX float64) models.Coordinates {
	lon := 0.0
	if scaleX != 0 {
		lon = p.x / scaleX
	}
	return models.Coordinates{Lat: p.y, Lon: lon}
}

func sqDist(a, b xy) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return dx*dx + dy*dy
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// POIs groups pois into k geographic clusters and relabels them day1..dayK by
// centroid (longitude, latitude) ascending. k is clamped to [1, len(pois)].
func POIs(pois []models.POI, k int, opts Options) models.ClusterResult {
	if len(pois) == 0 {
		return models.ClusterResult{Clusters: []models.Cluster{}, Warnings: []string{"No POIs provided."}}
	}
	opts = opts.withDefaults()

	n := len(pois)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	meanLat := 0.0
	for i := range pois {
		meanLat += pois[i].Lat
	}
	meanLat /= float64(n)
	sx := lonScale(meanLat)

	pts := make([]xy, n)
	for i := range pois {
		pts[i] = toXY(pois[i].Lat, pois[i].Lon, sx)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	// Init centers as k distinct points
	centers := make([]xy, 0, k)
	for _, idx := range rng.Perm(n)[:k] {
		centers = append(centers, pts[idx])
	}

	labels := make([]int, n)
	assign := func() {
		for i, p := range pts {
			best := 0
			bestD := math.Inf(1)
			for j, c := range centers {
				if d := sqDist(p, c); d < bestD {
					bestD = d
					best = j
				}
			}
			labels[i] = best
		}
	}
	update := func() bool {
		changed := false
		for j := 0; j < k; j++ {
			var sum xy
			count := 0
			for i := range pts {
				if labels[i] == j {
					sum.x += pts[i].x
					sum.y += pts[i].y
					count++
				}
			}
			if count == 0 {
				// Re-seed an empty cluster to a random surviving point
				centers[j] = pts[rng.Intn(n)]
				changed = true
				continue
			}
			c := xy{x: sum.x / float64(count), y: sum.y / float64(count)}
			if c != centers[j] {
				centers[j] = c
				changed = true
			}
		}
		return changed
	}

	iters := 0
	for ; iters < opts.MaxIters; iters++ {
		assign()
		if !update() {
			break
		}
	}
	log.Printf("[CLUSTER] k-means done: n=%d k=%d iters=%d seed=%d", n, k, iters, opts.Seed)

	memberIdx := make([][]int, k)
	for i, lab := range labels {
		memberIdx[lab] = append(memberIdx[lab], i)
	}

	centroids := make([]models.Coordinates, k)
	for j := range centers {
		centroids[j] = xyToLatLon(centers[j], sx)
	}

	// Relabel day1..dayK by centroid (lon, lat) ascending so day labels do not
	// depend on k-means internals.
	order := make([]int, k)
	for j := range order {
		order[j] = j
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := centroids[order[a]], centroids[order[b]]
		if ca.Lon != cb.Lon {
			return ca.Lon < cb.Lon
		}
		return ca.Lat < cb.Lat
	})

	avgSize := int(math.Ceil(float64(n) / float64(k)))
	clusters := make([]models.Cluster, 0, k)
	var warnings []string

	for rank, j := range order {
		dayLabel := fmt.Sprintf("day%d", rank+1)
		poiIDs := make([]string, 0, len(memberIdx[j]))
		mustGo := 0
		for _, i := range memberIdx[j] {
			poiIDs = append(poiIDs, pois[i].ID)
			if pois[i].MustGo {
				mustGo++
			}
		}
		clusters = append(clusters, models.Cluster{
			DayLabel: dayLabel,
			POIIDs:   poiIDs,
			Centroid: models.Coordinates{Lat: round6(centroids[j].Lat), Lon: round6(centroids[j].Lon)},
		})

		if w, ok := densityWarning(dayLabel, mustGo, len(poiIDs), avgSize, opts.MustGoWarnRatio); ok {
			warnings = append(warnings, w)
		}
	}

	return models.ClusterResult{Clusters: clusters, Warnings: warnings}
}

// densityWarning flags a day at risk of overload from forced visits: a high
// must-go ratio combined with a size well above the average cluster size.
func densityWarning(dayLabel string, mustGo, size, avgSize int, warnRatio float64) (string, bool) {
	if size == 0 {
		return "", false
	}
	ratio := float64(mustGo) / float64(size)
	if ratio < warnRatio || size < avgSize+2 {
		return "", false
	}
	return fmt.Sprintf(
		"High must-go density in %s (%d/%d). Consider adding a day or unmarking some must-go items.",
		dayLabel, mustGo, size), true
}
