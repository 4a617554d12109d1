package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aina-app/aina-api/internal/models"
)

const eventColumns = `id, user_id, title, event_date, event_type, description, post_id, created_at, updated_at`

// EventRepository persists user-created calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListByUser returns the events of userID, optionally bounded by event_date.
func (r *EventRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error) {
	where := []string{"user_id = $1"}
	args := []interface{}{userID}
	if from != nil {
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)+1))
		args = append(args, *from)
	}
	if to != nil {
		where = append(where, fmt.Sprintf("event_date <= $%d", len(args)+1))
		args = append(args, *to)
	}

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY event_date ASC", eventColumns, strings.Join(where, " AND "))
	events := make([]models.ManualEvent, 0)
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID fetches an event owned by userID.
func (r *EventRepository) GetByID(ctx context.Context, id, userID string) (*models.ManualEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1 AND user_id = $2", eventColumns)
	var event models.ManualEvent
	if err := r.db.GetContext(ctx, &event, query, id, userID); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.ManualEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO events (id, user_id, title, event_date, event_type, description, post_id, created_at, updated_at)
VALUES (:id, :user_id, :title, :event_date, :event_type, :description, :post_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an event. It returns sql.ErrNoRows when the event does not
// belong to event.UserID.
func (r *EventRepository) Update(ctx context.Context, event *models.ManualEvent) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, event_date = :event_date, event_type = :event_type, description = :description,
post_id = :post_id, updated_at = :updated_at WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an event owned by userID.
func (r *EventRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
