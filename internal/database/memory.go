package database

import (
	"context"
	"fmt"
	"sync"

	"cityroute/internal/models"
)

// MemoryStore is the default Store: process-lifetime maps guarded by a
// RWMutex. Construct one per process (or per test) with NewMemoryStore.
type MemoryStore struct {
	mu          sync.RWMutex
	itineraries map[string]models.Itinerary
	days        map[string]models.DayPlan

	itinerarySeq int
	daySeq       int

	itineraryRepo ItineraryRepository
	dayRepo       DayRepository
}

// NewMemoryStore creates an empty in-memory store with fresh sequences
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		itineraries: make(map[string]models.Itinerary),
		days:        make(map[string]models.DayPlan),
	}
	s.itineraryRepo = &memoryItineraryRepository{store: s}
	s.dayRepo = &memoryDayRepository{store: s}
	return s
}

func (s *MemoryStore) Itineraries() ItineraryRepository { return s.itineraryRepo }
func (s *MemoryStore) Days() DayRepository              { return s.dayRepo }

// NextItineraryID returns "it-001", "it-002", ...
func (s *MemoryStore) NextItineraryID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerarySeq++
	return fmt.Sprintf("it-%03d", s.itinerarySeq), nil
}

// NextDayID returns "day1", "day2", ... numbered globally across itineraries
func (s *MemoryStore) NextDayID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daySeq++
	return fmt.Sprintf("day%d", s.daySeq), nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error { return nil }

type memoryItineraryRepository struct {
	store *MemoryStore
}

func (r *memoryItineraryRepository) Put(ctx context.Context, it *models.Itinerary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.itineraries[it.ID] = *it
	return nil
}

func (r *memoryItineraryRepository) Get(ctx context.Context, id string) (*models.Itinerary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	it, ok := r.store.itineraries[id]
	if !ok {
		return nil, fmt.Errorf("itinerary %s: %w", id, ErrNotFound)
	}
	return &it, nil
}

type memoryDayRepository struct {
	store *MemoryStore
}

func (r *memoryDayRepository) Put(ctx context.Context, d *models.DayPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.days[d.ID] = *d
	return nil
}

func (r *memoryDayRepository) Get(ctx context.Context, id string) (*models.DayPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.store.days[id]
	if !ok {
		return nil, fmt.Errorf("day %s: %w", id, ErrNotFound)
	}
	return &d, nil
}

func (r *memoryDayRepository) GetByIDs(ctx context.Context, ids []string) ([]models.DayPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.DayPlan, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.store.days[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
