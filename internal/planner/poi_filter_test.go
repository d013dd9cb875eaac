package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityroute/internal/models"
)

func TestApplyMustGo(t *testing.T) {
	pois := []models.POI{
		{ID: "a", MustGo: true},
		{ID: "b"},
		{ID: "c", MustGo: true},
	}

	assert.Len(t, ApplyMustGo(pois, false), 3)

	only := ApplyMustGo(pois, true)
	require.Len(t, only, 2)
	assert.Equal(t, "a", only[0].ID)
	assert.Equal(t, "c", only[1].ID)

	assert.Empty(t, ApplyMustGo([]models.POI{{ID: "x"}}, true))
}

func TestCapTopK(t *testing.T) {
	pois := []models.POI{
		{ID: "low", Rating: 3.0, ReviewCount: 10},
		{ID: "top", Rating: 4.9, ReviewCount: 1000},
		{ID: "mid", Rating: 4.0, ReviewCount: 100},
	}

	// No trim when k covers everything or is non-positive
	out, trimmed := CapTopK(pois, 3)
	assert.False(t, trimmed)
	assert.Len(t, out, 3)
	out, trimmed = CapTopK(pois, 0)
	assert.False(t, trimmed)
	assert.Len(t, out, 3)

	out, trimmed = CapTopK(pois, 2)
	assert.True(t, trimmed)
	require.Len(t, out, 2)
	assert.Equal(t, "top", out[0].ID)
	assert.Equal(t, "mid", out[1].ID)
}

func TestCapTopKTieBreakByID(t *testing.T) {
	pois := []models.POI{
		{ID: "zeta", Rating: 4.0, ReviewCount: 100},
		{ID: "alpha", Rating: 4.0, ReviewCount: 100},
	}
	out, trimmed := CapTopK(pois, 1)
	require.True(t, trimmed)
	assert.Equal(t, "alpha", out[0].ID)
}

func TestCapTopKDoesNotMutateInput(t *testing.T) {
	pois := []models.POI{
		{ID: "low", Rating: 1.0},
		{ID: "top", Rating: 5.0},
	}
	_, _ = CapTopK(pois, 1)
	assert.Equal(t, "low", pois[0].ID, "input order preserved")
}
