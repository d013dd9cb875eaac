package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityroute/internal/models"
)

func TestMemorySequences(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.NextItineraryID(ctx)
	require.NoError(t, err)
	id2, err := s.NextItineraryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "it-001", id1)
	assert.Equal(t, "it-002", id2)

	d1, err := s.NextDayID(ctx)
	require.NoError(t, err)
	d2, err := s.NextDayID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "day1", d1)
	assert.Equal(t, "day2", d2)
}

func TestMemorySequencesIndependentPerStore(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryStore()
	b := NewMemoryStore()

	_, err := a.NextItineraryID(ctx)
	require.NoError(t, err)

	id, err := b.NextItineraryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "it-001", id, "fresh store starts a fresh sequence")
}

func TestMemoryItineraryRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	it := &models.Itinerary{
		ID:     "it-001",
		City:   "Pittsburgh",
		DayIDs: []string{"day1", "day2"},
	}
	require.NoError(t, s.Itineraries().Put(ctx, it))

	got, err := s.Itineraries().Get(ctx, "it-001")
	require.NoError(t, err)
	assert.Equal(t, "Pittsburgh", got.City)
	assert.Equal(t, []string{"day1", "day2"}, got.DayIDs)

	// Reads get a copy, not shared state
	got.City = "Nowhere"
	again, err := s.Itineraries().Get(ctx, "it-001")
	require.NoError(t, err)
	assert.Equal(t, "Pittsburgh", again.City)
}

func TestMemoryDayOverwrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Days().Put(ctx, &models.DayPlan{ID: "day1", VisitIDs: []string{"p1"}}))
	require.NoError(t, s.Days().Put(ctx, &models.DayPlan{ID: "day1", VisitIDs: []string{"p1"}, LunchID: "r1"}))

	got, err := s.Days().Get(ctx, "day1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.LunchID)
}

func TestMemoryDayGetByIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Days().Put(ctx, &models.DayPlan{ID: "day1"}))
	require.NoError(t, s.Days().Put(ctx, &models.DayPlan{ID: "day2"}))

	got, err := s.Days().GetByIDs(ctx, []string{"day2", "missing", "day1"})
	require.NoError(t, err)
	require.Len(t, got, 2, "unknown ids are skipped")
	assert.Equal(t, "day2", got[0].ID, "requested order preserved")
	assert.Equal(t, "day1", got[1].ID)
}

func TestMemoryNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Itineraries().Get(ctx, "it-999")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Days().Get(ctx, "day99")
	assert.True(t, errors.Is(err, ErrNotFound))
}
