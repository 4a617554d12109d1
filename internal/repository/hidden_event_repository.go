package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aina-app/aina-api/internal/models"
)

// HiddenEventRepository stores the suggestions a user dismissed.
type HiddenEventRepository struct {
	db *sqlx.DB
}

// NewHiddenEventRepository constructs the repository.
func NewHiddenEventRepository(db *sqlx.DB) *HiddenEventRepository {
	return &HiddenEventRepository{db: db}
}

// List returns the dismissed entries of userID, newest first.
func (r *HiddenEventRepository) List(ctx context.Context, userID string) ([]models.HiddenEvent, error) {
	const query = `SELECT id, user_id, event_key, created_at FROM hidden_events WHERE user_id = $1 ORDER BY created_at DESC`
	items := make([]models.HiddenEvent, 0)
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list hidden events: %w", err)
	}
	return items, nil
}

// ListKeys returns only the dismissed keys of userID.
func (r *HiddenEventRepository) ListKeys(ctx context.Context, userID string) ([]string, error) {
	keys := make([]string, 0)
	if err := r.db.SelectContext(ctx, &keys, `SELECT event_key FROM hidden_events WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("list hidden keys: %w", err)
	}
	return keys, nil
}

// Insert records a dismissal. Hiding the same key twice is a no-op.
func (r *HiddenEventRepository) Insert(ctx context.Context, userID, key string) error {
	const query = `INSERT INTO hidden_events (id, user_id, event_key, created_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, event_key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, key, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert hidden event: %w", err)
	}
	return nil
}

// Delete restores a dismissed suggestion. It returns sql.ErrNoRows when the
// key was not hidden.
func (r *HiddenEventRepository) Delete(ctx context.Context, userID, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hidden_events WHERE user_id = $1 AND event_key = $2`, userID, key)
	if err != nil {
		return fmt.Errorf("delete hidden event: %w", err)
	}
	return requireAffected(res)
}
