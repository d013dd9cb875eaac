package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// AutoPickRequest is the body of POST /restaurants/auto_pick. An empty
// day_ids list means every day of the itinerary.
type AutoPickRequest struct {
	ItineraryID    string   `json:"itinerary_id"`
	DayIDs         []string `json:"day_ids"`
	DetourLimitMin float64  `json:"detour_limit_min"`
}

// HandleAutoPick handles POST /restaurants/auto_pick
func (h *Handler) HandleAutoPick(w http.ResponseWriter, r *http.Request) {
	var req AutoPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.ItineraryID == "" {
		h.handleValidationError(w, "itinerary_id is required")
		return
	}

	log.Printf("[HTTP] POST /restaurants/auto_pick: itin=%s days=%d limit=%.1f",
		req.ItineraryID, len(req.DayIDs), req.DetourLimitMin)

	res, err := h.Planner.AutopickMeals(r.Context(), req.ItineraryID, req.DayIDs, req.DetourLimitMin, 0)
	if err != nil {
		h.handlePlannerError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
