// Package seed loads the demo POI, hotel, and restaurant tables from CSV
// files. Requests may omit any of the three; the planner then falls back to
// these seed tables.
package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cityroute/internal/models"
)

// Seed file names under the data directory
const (
	POIsFile        = "pois.csv"
	HotelsFile      = "hotels.csv"
	RestaurantsFile = "restaurants.csv"
)

// Tables holds the three seed tables
type Tables struct {
	POIs        []models.POI
	Hotels      []models.Hotel
	Restaurants []models.Restaurant
}

// Load reads all three seed tables from dataDir
func Load(dataDir string) (*Tables, error) {
	pois, err := LoadPOIs(filepath.Join(dataDir, POIsFile))
	if err != nil {
		return nil, err
	}
	hotels, err := LoadHotels(filepath.Join(dataDir, HotelsFile))
	if err != nil {
		return nil, err
	}
	restaurants, err := LoadRestaurants(filepath.Join(dataDir, RestaurantsFile))
	if err != nil {
		return nil, err
	}
	return &Tables{POIs: pois, Hotels: hotels, Restaurants: restaurants}, nil
}

// LoadPOIs reads a POI table from a CSV file
func LoadPOIs(path string) ([]models.POI, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	pois := make([]models.POI, 0, len(rows))
	for _, row := range rows {
		pois = append(pois, models.POI{
			ID:          row["id"],
			Name:        row["name"],
			Lat:         parseFloat(row["lat"]),
			Lon:         parseFloat(row["lon"]),
			Rating:      parseFloat(row["rating"]),
			ReviewCount: parseInt(row["review_count"]),
			MustGo:      parseBool(row["must_go"]),
		})
	}
	return pois, nil
}

// LoadHotels reads a hotel table from a CSV file
func LoadHotels(path string) ([]models.Hotel, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	hotels := make([]models.Hotel, 0, len(rows))
	for _, row := range rows {
		hotels = append(hotels, models.Hotel{
			ID:          row["id"],
			Name:        row["name"],
			Lat:         parseFloat(row["lat"]),
			Lon:         parseFloat(row["lon"]),
			Rating:      parseFloat(row["rating"]),
			ReviewCount: parseInt(row["review_count"]),
			PriceLevel:  row["price_level"],
		})
	}
	return hotels, nil
}

// LoadRestaurants reads a restaurant table from a CSV file
func LoadRestaurants(path string) ([]models.Restaurant, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	restaurants := make([]models.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, models.Restaurant{
			ID:          row["id"],
			Name:        row["name"],
			Lat:         parseFloat(row["lat"]),
			Lon:         parseFloat(row["lon"]),
			Rating:      parseFloat(row["rating"]),
			ReviewCount: parseInt(row["review_count"]),
			PriceLevel:  row["price_level"],
			DietTags:    row["diet_tags"],
			OpenLunch:   row["open_lunch"],
			OpenDinner:  row["open_dinner"],
		})
	}
	return restaurants, nil
}

// readCSV reads a CSV file into header-keyed rows. The delimiter is sniffed
// from the header line (comma or semicolon) and a UTF-8 BOM is stripped.
func readCSV(path string) ([]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	text := strings.TrimPrefix(string(raw), "\ufeff")
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s appears to be empty or has no rows", path)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// sniffDelimiter picks semicolon when the first line has more semicolons
// than commas, comma otherwise
func sniffDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseBool accepts the truthy spellings commonly seen in seed files
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
