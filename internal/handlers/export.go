package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cityroute/internal/database"
	"cityroute/internal/models"
)

// ExportRequest is the body of POST /export. Format is "json", "csv"
// (row per day), or "csv2" (row per stop).
type ExportRequest struct {
	ItineraryID string `json:"itinerary_id"`
	Format      string `json:"format"`
}

// ExportBundle is the materialized itinerary returned for format "json"
type ExportBundle struct {
	ItineraryID string             `json:"itinerary_id"`
	City        string             `json:"city"`
	HotelID     string             `json:"hotel_id,omitempty"`
	Prefs       models.Preferences `json:"prefs"`
	Warnings    []string           `json:"warnings"`
	Days        []models.DayPlan   `json:"days"`
}

// CSVExport wraps CSV text so the front end can save it as a file
type CSVExport struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	CSVText     string `json:"csv_text"`
}

// HandleExport handles POST /export
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	it, err := h.DB.Itineraries().Get(r.Context(), req.ItineraryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.handleNotFound(w, "Itinerary not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	// Materialize the day plans; ids that never stored are skipped
	dayPlans, err := h.DB.Days().GetByIDs(r.Context(), it.DayIDs)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "json"
	}

	log.Printf("[HTTP] POST /export: itin=%s format=%s days=%d", it.ID, format, len(dayPlans))

	switch format {
	case "json":
		h.writeJSON(w, http.StatusOK, ExportBundle{
			ItineraryID: it.ID,
			City:        it.City,
			HotelID:     it.HotelID,
			Prefs:       it.Prefs,
			Warnings:    it.Warnings,
			Days:        dayPlans,
		})
	case "csv":
		h.writeJSON(w, http.StatusOK, CSVExport{
			Filename:    it.ID + "_days.csv",
			ContentType: "text/csv",
			CSVText:     daysCSV(dayPlans),
		})
	case "csv2":
		h.writeJSON(w, http.StatusOK, CSVExport{
			Filename:    it.ID + "_stops.csv",
			ContentType: "text/csv",
			CSVText:     stopsCSV(it, dayPlans),
		})
	default:
		h.handleValidationError(w, "format must be 'json', 'csv', or 'csv2'")
	}
}

// daysCSV renders one row per day with pipe-joined visit ids
func daysCSV(dayPlans []models.DayPlan) string {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"day_id", "visit_ids", "lunch_id", "dinner_id", "total_time_minutes"})
	for _, d := range dayPlans {
		writer.Write([]string{
			d.ID,
			strings.Join(d.VisitIDs, "|"),
			d.LunchID,
			d.DinnerID,
			strconv.FormatFloat(d.TotalTimeMinutes, 'g', -1, 64),
		})
	}
	writer.Flush()
	return buf.String()
}

// stopsCSV renders one row per stop, ids only. POIs come first in routed
// order, then lunch and dinner on a continuing order index. A single hotel
// row appears once with no day id.
func stopsCSV(it *models.Itinerary, dayPlans []models.DayPlan) string {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	writer.Write([]string{
		"itinerary_id", "day_id", "order", "stop_type", "stop_id",
		"arrival_min", "depart_min", "planned_minutes", "notes",
	})

	if it.HotelID != "" {
		writer.Write([]string{it.ID, "", "", "hotel", it.HotelID, "", "", "", ""})
	}

	for _, d := range dayPlans {
		for i, pid := range d.VisitIDs {
			writer.Write([]string{it.ID, d.ID, strconv.Itoa(i + 1), "poi", pid, "", "", "", ""})
		}
		next := len(d.VisitIDs) + 1
		if d.LunchID != "" {
			writer.Write([]string{it.ID, d.ID, strconv.Itoa(next), "lunch", d.LunchID, "", "", "", ""})
			next++
		}
		if d.DinnerID != "" {
			writer.Write([]string{it.ID, d.ID, strconv.Itoa(next), "dinner", d.DinnerID, "", "", "", ""})
		}
	}
	writer.Flush()
	return buf.String()
}
