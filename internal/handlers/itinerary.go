package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cityroute/internal/database"
	"cityroute/internal/models"
)

// GenerateRequest is the body of POST /itinerary/generate. Any of the three
// entity tables may be omitted; the seed tables then fill in.
type GenerateRequest struct {
	City        string              `json:"city"`
	Prefs       *models.Preferences `json:"prefs"`
	POIs        []models.POI        `json:"pois"`
	Hotels      []models.Hotel      `json:"hotels"`
	Restaurants []models.Restaurant `json:"restaurants"`
	Locks       []models.Lock       `json:"locks"`
}

// defaultPrefs mirrors the request defaults for an omitted prefs object
func defaultPrefs() models.Preferences {
	return models.Preferences{Days: 3, TravelMode: "drive", DetourLimitMinutes: 15}
}

// HandleGenerate handles POST /itinerary/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	if req.City == "" {
		req.City = "Pittsburgh"
	}
	prefs := defaultPrefs()
	if req.Prefs != nil {
		prefs = *req.Prefs
	}

	pois, hotelList, restaurants := req.POIs, req.Hotels, req.Restaurants
	if pois == nil || hotelList == nil || restaurants == nil {
		tables, err := h.seeds()
		if err != nil {
			h.handleValidationError(w, "Seed file not found: "+err.Error())
			return
		}
		if pois == nil {
			pois = tables.POIs
		}
		if hotelList == nil {
			hotelList = tables.Hotels
		}
		if restaurants == nil {
			restaurants = tables.Restaurants
		}
	}

	log.Printf("[HTTP] POST /itinerary/generate: city=%s days=%d pois=%d hotels=%d restaurants=%d",
		req.City, prefs.Days, len(pois), len(hotelList), len(restaurants))

	res, err := h.Planner.Generate(r.Context(), req.City, prefs, pois, hotelList, restaurants, req.Locks)
	if err != nil {
		h.handlePlannerError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// RegenerateRequest is the body of POST /itinerary/regenerate
type RegenerateRequest struct {
	ItineraryID string        `json:"itinerary_id"`
	Locks       []models.Lock `json:"locks"`
}

// HandleRegenerate handles POST /itinerary/regenerate
func (h *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.ItineraryID == "" {
		h.handleValidationError(w, "itinerary_id is required")
		return
	}

	log.Printf("[HTTP] POST /itinerary/regenerate: itin=%s locks=%d", req.ItineraryID, len(req.Locks))

	res, err := h.Planner.Regenerate(r.Context(), req.ItineraryID, req.Locks)
	if err != nil {
		h.handlePlannerError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// ItineraryView is the ids-only representation returned by GET /itineraries/{id}
type ItineraryView struct {
	ID       string             `json:"id"`
	City     string             `json:"city"`
	Prefs    models.Preferences `json:"prefs"`
	DayIDs   []string           `json:"day_ids"`
	HotelID  string             `json:"hotel_id,omitempty"`
	Warnings []string           `json:"warnings"`
}

// HandleGetItinerary handles GET /itineraries/{id}
func (h *Handler) HandleGetItinerary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	it, err := h.DB.Itineraries().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.handleNotFound(w, "Itinerary not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ItineraryView{
		ID:       it.ID,
		City:     it.City,
		Prefs:    it.Prefs,
		DayIDs:   it.DayIDs,
		HotelID:  it.HotelID,
		Warnings: it.Warnings,
	})
}

// HandleGetDay handles GET /days/{id}
func (h *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	d, err := h.DB.Days().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.handleNotFound(w, "Day not found")
			return
		}
		h.handleInternalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}
