// Package handlers implements the JSON API over the planning pipeline.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"cityroute/internal/database"
	"cityroute/internal/planner"
	"cityroute/internal/seed"
)

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB      database.Store
	Planner *planner.Planner

	// SeedDir is where the fallback CSV tables live. Tables load lazily on
	// first use and stay cached for the process lifetime.
	SeedDir string

	seedOnce   sync.Once
	seedTables *seed.Tables
	seedErr    error
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// seeds returns the cached seed tables, loading them on first call
func (h *Handler) seeds() (*seed.Tables, error) {
	h.seedOnce.Do(func() {
		h.seedTables, h.seedErr = seed.Load(h.SeedDir)
		if h.seedErr == nil {
			log.Printf("[SEED] loaded tables: pois=%d hotels=%d restaurants=%d",
				len(h.seedTables.POIs), len(h.seedTables.Hotels), len(h.seedTables.Restaurants))
		}
	})
	return h.seedTables, h.seedErr
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] Internal error: %v", err)
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred. Please try again.", nil)
}

// handlePlannerError maps pipeline errors onto HTTP statuses
func (h *Handler) handlePlannerError(w http.ResponseWriter, err error) {
	var verr *planner.ValidationError
	switch {
	case errors.As(err, &verr):
		h.handleValidationError(w, verr.Message)
	case errors.Is(err, database.ErrNotFound):
		h.handleNotFound(w, "Itinerary not found")
	default:
		h.handleInternalError(w, err)
	}
}

// HandleHealthCheck handles GET /api/v1/health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
