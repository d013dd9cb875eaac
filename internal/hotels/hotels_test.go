package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityroute/internal/models"
)

func testHotels() []models.Hotel {
	return []models.Hotel{
		{ID: "h1", Lat: 40.4410, Lon: -80.0000, Rating: 4.6, ReviewCount: 400},
		{ID: "h2", Lat: 40.4600, Lon: -79.9200, Rating: 4.2, ReviewCount: 900},
		{ID: "h3", Lat: 40.5200, Lon: -79.8500, Rating: 3.1, ReviewCount: 50},
	}
}

func testCentroids() []models.Coordinates {
	return []models.Coordinates{
		{Lat: 40.4405, Lon: -80.0005},
		{Lat: 40.4605, Lon: -79.9205},
	}
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, testCentroids(), Options{}))
}

func TestRankNeverDropsAllCandidates(t *testing.T) {
	// Every hotel is below even the relaxed threshold; the unfiltered set is
	// the fallback, so we still get an order.
	low := []models.Hotel{
		{ID: "a", Rating: 2.0, ReviewCount: 5},
		{ID: "b", Rating: 1.5, ReviewCount: 9},
	}
	ids := Rank(low, testCentroids(), Options{})
	assert.Len(t, ids, 2)
}

func TestRankRelaxesThreshold(t *testing.T) {
	// Only one hotel is >= 4.0, which is below MinCandidates, so the filter
	// relaxes to 3.5 and keeps two.
	hs := []models.Hotel{
		{ID: "top", Lat: 40.44, Lon: -80.00, Rating: 4.5, ReviewCount: 100},
		{ID: "mid", Lat: 40.44, Lon: -80.00, Rating: 3.7, ReviewCount: 100},
		{ID: "low", Lat: 40.44, Lon: -80.00, Rating: 2.0, ReviewCount: 100},
	}
	ids := Rank(hs, testCentroids(), Options{MinCandidates: 2})
	assert.ElementsMatch(t, []string{"top", "mid"}, ids)
}

func TestRankPrefersCloseWellRated(t *testing.T) {
	ids, scored := RankScored(testHotels(), testCentroids(), Options{})
	require.NotEmpty(t, ids)

	// h1 is close to both centroids and best rated
	assert.Equal(t, "h1", ids[0])
	assert.Equal(t, ids[0], scored[0].ID)
	assert.GreaterOrEqual(t, scored[0].Score, scored[len(scored)-1].Score)
}

func TestRankDeterministicTieBreak(t *testing.T) {
	// Identical hotels except for id: every feature normalizes to 0.5, so the
	// id is the only differentiator and must order ascending.
	same := []models.Hotel{
		{ID: "zeta", Lat: 40.44, Lon: -80.00, Rating: 4.5, ReviewCount: 100},
		{ID: "alpha", Lat: 40.44, Lon: -80.00, Rating: 4.5, ReviewCount: 100},
		{ID: "mid", Lat: 40.44, Lon: -80.00, Rating: 4.5, ReviewCount: 100},
	}
	ids := Rank(same, testCentroids(), Options{})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
}

func TestRankCustomWeights(t *testing.T) {
	// All weight on distance flips the order toward the nearest hotel even
	// when its rating is lower.
	hs := []models.Hotel{
		{ID: "near-lowrated", Lat: 40.4405, Lon: -80.0005, Rating: 3.6, ReviewCount: 10},
		{ID: "far-toprated", Lat: 40.5200, Lon: -79.8500, Rating: 4.9, ReviewCount: 900},
	}
	w := Weights{Distance: 1, Rating: 0, Popularity: 0}
	ids := Rank(hs, []models.Coordinates{{Lat: 40.4405, Lon: -80.0005}}, Options{Weights: &w})
	assert.Equal(t, "near-lowrated", ids[0])
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.Error(t, Weights{Distance: -1, Rating: 0.5, Popularity: 0.5}.Validate())
	assert.Error(t, Weights{}.Validate())
}
