package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPOIs(t *testing.T) {
	path := writeSeed(t, "pois.csv",
		"id,name,lat,lon,rating,review_count,must_go\n"+
			"poi1,Point State Park,40.4406,-79.9959,4.6,800,true\n"+
			"poi2,Market Square,40.4419,-79.9900,4.4,1200,\n")

	pois, err := LoadPOIs(path)
	require.NoError(t, err)
	require.Len(t, pois, 2)

	assert.Equal(t, "poi1", pois[0].ID)
	assert.Equal(t, "Point State Park", pois[0].Name)
	assert.InDelta(t, 40.4406, pois[0].Lat, 1e-9)
	assert.InDelta(t, -79.9959, pois[0].Lon, 1e-9)
	assert.Equal(t, 800, pois[0].ReviewCount)
	assert.True(t, pois[0].MustGo)
	assert.False(t, pois[1].MustGo)
}

func TestLoadPOIsSemicolonDelimiter(t *testing.T) {
	path := writeSeed(t, "pois.csv",
		"id;name;lat;lon;rating;review_count;must_go\n"+
			"poi1;Point State Park;40.4406;-79.9959;4.6;800;yes\n")

	pois, err := LoadPOIs(path)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "Point State Park", pois[0].Name)
	assert.True(t, pois[0].MustGo)
}

func TestLoadPOIsStripsBOM(t *testing.T) {
	path := writeSeed(t, "pois.csv",
		"\ufeffid,name,lat,lon,rating,review_count,must_go\n"+
			"poi1,Park,40.44,-79.99,4.6,800,1\n")

	pois, err := LoadPOIs(path)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "poi1", pois[0].ID)
}

func TestLoadRestaurants(t *testing.T) {
	path := writeSeed(t, "restaurants.csv",
		"id,name,lat,lon,rating,review_count,price_level,diet_tags,open_lunch,open_dinner\n"+
			"r1,Apteka,40.4650,-79.9480,4.7,600,$$,vegan|vegetarian,11:30-14:30,17:00-21:00\n")

	rs, err := LoadRestaurants(path)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "vegan|vegetarian", rs[0].DietTags)
	assert.Equal(t, "11:30-14:30", rs[0].OpenLunch)
	assert.Equal(t, "$$", rs[0].PriceLevel)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeSeed(t, "hotels.csv", "id,name,lat,lon,rating,review_count,price_level\n")

	_, err := LoadHotels(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appears to be empty or has no rows")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadPOIs(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseBoolSpellings(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", "Y"} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"", "false", "0", "no", "maybe"} {
		assert.False(t, parseBool(s), s)
	}
}
