package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aina-app/aina-api/internal/models"
)

// BusinessRepository reads shop profiles.
type BusinessRepository struct {
	db *sqlx.DB
}

// NewBusinessRepository constructs the repository.
func NewBusinessRepository(db *sqlx.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// FindByUserID returns the oldest business of userID.
func (r *BusinessRepository) FindByUserID(ctx context.Context, userID string) (*models.Business, error) {
	const query = `SELECT id, user_id, name, address, created_at FROM businesses WHERE user_id = $1 ORDER BY created_at ASC LIMIT 1`
	var business models.Business
	if err := r.db.GetContext(ctx, &business, query, userID); err != nil {
		return nil, err
	}
	return &business, nil
}

// ListOwners returns the oldest business of every user.
func (r *BusinessRepository) ListOwners(ctx context.Context) ([]models.Business, error) {
	const query = `SELECT DISTINCT ON (user_id) id, user_id, name, address, created_at FROM businesses
ORDER BY user_id, created_at ASC`
	items := make([]models.Business, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return items, nil
}
