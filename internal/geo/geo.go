// Package geo provides great-circle distance and travel-time estimates for
// city-scale planning. All functions are pure.
package geo

import (
	"math"

	"cityroute/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances
const EarthRadiusKm = 6371.0088

// Speed band for city travel. Misconfigured inputs are clamped into this range.
const (
	DefaultCitySpeedKmh = 32.0
	MinCitySpeedKmh     = 10.0
	MaxCitySpeedKmh     = 50.0
)

// HaversineKm returns the great-circle distance between two points in
// kilometers. Accurate enough for city-scale routing and estimates.
func HaversineKm(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// PathLengthKm sums consecutive haversine segments along a path
func PathLengthKm(points []models.Coordinates) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += HaversineKm(points[i], points[i+1])
	}
	return total
}

// Centroid returns the arithmetic mean position of points.
// The boolean is false for an empty slice.
func Centroid(points []models.Coordinates) (models.Coordinates, bool) {
	if len(points) == 0 {
		return models.Coordinates{}, false
	}
	var latSum, lonSum float64
	for _, p := range points {
		latSum += p.Lat
		lonSum += p.Lon
	}
	n := float64(len(points))
	return models.Coordinates{Lat: latSum / n, Lon: lonSum / n}, true
}

// ClampSpeed bounds a city speed to the [MinCitySpeedKmh, MaxCitySpeedKmh] band
func ClampSpeed(speedKmh float64) float64 {
	return math.Max(MinCitySpeedKmh, math.Min(speedKmh, MaxCitySpeedKmh))
}

// KmToMinutes converts kilometers to minutes using a clamped city speed
func KmToMinutes(distanceKm, citySpeedKmh float64) float64 {
	return distanceKm / ClampSpeed(citySpeedKmh) * 60
}

// TravelMinutes estimates travel time between two points in minutes
func TravelMinutes(a, b models.Coordinates, citySpeedKmh float64) float64 {
	return KmToMinutes(HaversineKm(a, b), citySpeedKmh)
}

// DetourMinutes is the extra time to insert stop between prev and next:
// time(prev→stop) + time(stop→next) − time(prev→next), never negative.
func DetourMinutes(prev, next, stop models.Coordinates, citySpeedKmh float64) float64 {
	base := TravelMinutes(prev, next, citySpeedKmh)
	withStop := TravelMinutes(prev, stop, citySpeedKmh) + TravelMinutes(stop, next, citySpeedKmh)
	return math.Max(0, withStop-base)
}
