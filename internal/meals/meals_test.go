package meals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityroute/internal/models"
)

func dayRoute() []models.Coordinates {
	return []models.Coordinates{
		{Lat: 40.4400, Lon: -80.0000},
		{Lat: 40.4410, Lon: -80.0010},
	}
}

func testRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			ID: "near", Lat: 40.4405, Lon: -80.0005, Rating: 4.8, ReviewCount: 300,
			PriceLevel: "$$", DietTags: "vegetarian",
			OpenLunch: "11:30-14:00", OpenDinner: "17:30-20:30",
		},
		{
			ID: "far", Lat: 40.4700, Lon: -79.9300, Rating: 4.9, ReviewCount: 1000,
			PriceLevel: "$$$", DietTags: "vegetarian",
			OpenLunch: "11:30-14:00", OpenDinner: "17:30-20:30",
		},
		{
			ID: "diner", Lat: 40.4402, Lon: -80.0002, Rating: 4.1, ReviewCount: 120,
			PriceLevel: "$", DietTags: "",
			OpenLunch: "11:00-15:00", OpenDinner: "17:00-21:00",
		},
	}
}

func notesText(notes []string) string {
	return strings.ToLower(strings.Join(notes, " "))
}

func TestAutopickBasic(t *testing.T) {
	used := UsedSet{}
	lunch, dinner, _ := AutopickForDay(dayRoute(), testRestaurants(), Options{}, used)

	require.NotEmpty(t, lunch)
	require.NotEmpty(t, dinner)
	assert.NotEqual(t, lunch, dinner, "lunch and dinner must differ")
	assert.True(t, used[lunch])
	assert.True(t, used[dinner])
}

func TestAutopickNoRepeatAcrossDays(t *testing.T) {
	used := UsedSet{}
	rests := testRestaurants()

	var picks []string
	for day := 0; day < 1; day++ {
		lunch, dinner, notes := AutopickForDay(dayRoute(), rests, Options{}, used)
		if lunch != "" {
			picks = append(picks, lunch)
		}
		if dinner != "" {
			picks = append(picks, dinner)
		}
		_ = notes
	}
	// Second day exhausts the 3-restaurant pool for one slot and must either
	// pick the remaining one or note a relaxation.
	lunch2, dinner2, notes2 := AutopickForDay(dayRoute(), rests, Options{}, used)
	all := append(append([]string{}, picks...), lunch2, dinner2)

	seen := map[string]int{}
	for _, id := range all {
		if id != "" {
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			assert.Contains(t, notesText(notes2), "allowed repeats",
				"repeat of %s without a relaxation note", id)
		}
	}
}

func TestAutopickDietFilter(t *testing.T) {
	lunch, _, _ := AutopickForDay(dayRoute(), testRestaurants(), Options{
		DietTags: []string{"vegetarian"},
	}, UsedSet{})
	assert.Contains(t, []string{"near", "far"}, lunch, "diner has no vegetarian tag")
}

func TestAutopickPriceFilter(t *testing.T) {
	lunch, dinner, _ := AutopickForDay(dayRoute(), testRestaurants(), Options{
		PriceRange: "$",
	}, UsedSet{})
	assert.Equal(t, "diner", lunch)
	// Dinner relaxes: diner is already used, nothing else is "$"
	assert.NotEmpty(t, dinner)
}

func TestAutopickRelaxNoteOnImpossibleDiet(t *testing.T) {
	_, _, notes := AutopickForDay(dayRoute(), testRestaurants(), Options{
		DietTags: []string{"halal"},
	}, UsedSet{})
	assert.Contains(t, notesText(notes), "relaxed diet/price filters")
}

func TestAutopickNothingOpen(t *testing.T) {
	closed := []models.Restaurant{
		{ID: "breakfast-only", Lat: 40.44, Lon: -80.00, Rating: 4.0, OpenLunch: "07:00-10:00", OpenDinner: "07:00-10:00"},
	}
	lunch, dinner, notes := AutopickForDay(dayRoute(), closed, Options{}, UsedSet{})
	assert.Empty(t, lunch)
	assert.Empty(t, dinner)
	assert.Contains(t, notesText(notes), "no restaurants open in the target window")
}

func TestAutopickRadiusPrefilterKeepsNearby(t *testing.T) {
	lunch, dinner, _ := AutopickForDay(dayRoute(), testRestaurants(), Options{
		RadiusKm: 0.5,
	}, UsedSet{})
	assert.NotEqual(t, "far", lunch)
	assert.NotEqual(t, "far", dinner)
}

func TestAutopickRadiusFallbackNote(t *testing.T) {
	_, _, notes := AutopickForDay(dayRoute(), testRestaurants(), Options{
		RadiusKm: 0.0001, // excludes everything
	}, UsedSet{})
	assert.Contains(t, notesText(notes), "falling back to global pool")
}

func TestAutopickDetourLimitFallback(t *testing.T) {
	farOnly := []models.Restaurant{
		{
			ID: "far", Lat: 40.5400, Lon: -79.8000, Rating: 4.9, ReviewCount: 1000,
			OpenLunch: "11:30-14:00", OpenDinner: "17:30-20:30",
		},
	}
	lunch, _, notes := AutopickForDay(dayRoute(), farOnly, Options{DetourLimitMin: 5}, UsedSet{})
	assert.Equal(t, "far", lunch)
	assert.Contains(t, notesText(notes), "chose nearest feasible")
}

func TestAutopickEmptyRoute(t *testing.T) {
	// With no route points every detour is zero; picks still happen
	lunch, dinner, _ := AutopickForDay(nil, testRestaurants(), Options{}, UsedSet{})
	assert.NotEmpty(t, lunch)
	assert.NotEmpty(t, dinner)
}

func TestAutopickDeterministic(t *testing.T) {
	first, fd, fn := AutopickForDay(dayRoute(), testRestaurants(), Options{}, UsedSet{})
	for i := 0; i < 3; i++ {
		l, d, n := AutopickForDay(dayRoute(), testRestaurants(), Options{}, UsedSet{})
		assert.Equal(t, first, l)
		assert.Equal(t, fd, d)
		assert.Equal(t, fn, n)
	}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.Error(t, Weights{Rating: -1}.Validate())
	assert.Error(t, Weights{Detour: 0.5}.Validate())
}
