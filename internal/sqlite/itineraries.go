package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cityroute/internal/database"
	"cityroute/internal/models"
)

type itineraryRepository struct {
	store *Store
}

func (r *itineraryRepository) Put(ctx context.Context, it *models.Itinerary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary %s: %w", it.ID, err)
	}

	query := `INSERT INTO itineraries (id, doc) VALUES (?, ?)
	          ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.store.db.ExecContext(ctx, query, it.ID, string(doc)); err != nil {
		return fmt.Errorf("failed to store itinerary %s: %w", it.ID, err)
	}
	return nil
}

func (r *itineraryRepository) Get(ctx context.Context, id string) (*models.Itinerary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var doc string
	err := r.store.db.QueryRowContext(ctx,
		"SELECT doc FROM itineraries WHERE id = ?", id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("itinerary %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary %s: %w", id, err)
	}

	var it models.Itinerary
	if err := json.Unmarshal([]byte(doc), &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary %s: %w", id, err)
	}
	return &it, nil
}
