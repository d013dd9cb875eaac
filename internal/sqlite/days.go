package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cityroute/internal/database"
	"cityroute/internal/models"
)

type dayRepository struct {
	store *Store
}

func (r *dayRepository) Put(ctx context.Context, d *models.DayPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal day %s: %w", d.ID, err)
	}

	query := `INSERT INTO days (id, doc) VALUES (?, ?)
	          ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.store.db.ExecContext(ctx, query, d.ID, string(doc)); err != nil {
		return fmt.Errorf("failed to store day %s: %w", d.ID, err)
	}
	return nil
}

func (r *dayRepository) Get(ctx context.Context, id string) (*models.DayPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var doc string
	err := r.store.db.QueryRowContext(ctx,
		"SELECT doc FROM days WHERE id = ?", id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("day %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day %s: %w", id, err)
	}

	var d models.DayPlan
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal day %s: %w", id, err)
	}
	return &d, nil
}

// GetByIDs fetches plans one by one to preserve the requested order;
// day lists are small (one per trip day)
func (r *dayRepository) GetByIDs(ctx context.Context, ids []string) ([]models.DayPlan, error) {
	out := make([]models.DayPlan, 0, len(ids))
	for _, id := range ids {
		d, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
