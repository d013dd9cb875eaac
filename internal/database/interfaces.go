package database

import (
	"context"
	"errors"

	"cityroute/internal/models"
)

// ErrNotFound is returned when a lookup references a missing id
var ErrNotFound = errors.New("not found")

// ItineraryRepository stores planned itineraries keyed by id
type ItineraryRepository interface {
	Put(ctx context.Context, it *models.Itinerary) error
	Get(ctx context.Context, id string) (*models.Itinerary, error)
}

// DayRepository stores day plans keyed by id
type DayRepository interface {
	Put(ctx context.Context, d *models.DayPlan) error
	Get(ctx context.Context, id string) (*models.DayPlan, error)
	// GetByIDs returns the plans that exist, in the order requested,
	// silently skipping unknown ids
	GetByIDs(ctx context.Context, ids []string) ([]models.DayPlan, error)
}

// Store is the persistence collaborator for the planning core. Ids come from
// explicit per-store sequences ("it-001", "day1", ...), monotonic for the
// store's lifetime and never reset behind the caller's back. A read of a key
// reflects the most recently completed write for that key.
type Store interface {
	Itineraries() ItineraryRepository
	Days() DayRepository

	// NextItineraryID returns the next "it-###" id
	NextItineraryID(ctx context.Context) (string, error)
	// NextDayID returns the next "day<N>" id, numbered globally, not per itinerary
	NextDayID(ctx context.Context) (string, error)

	Close() error
}
