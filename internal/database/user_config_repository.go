package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordsrs/pkg/models"
)

// UserConfigRepository stores per-user session settings.
type UserConfigRepository struct {
	db sqlx.ExtContext
}

// NewUserConfigRepository creates a new repository instance
func NewUserConfigRepository(db sqlx.ExtContext) *UserConfigRepository {
	return &UserConfigRepository{db: db}
}

// Get retrieves user configuration. Users without a stored row get the
// defaults: unlimited reviews, active.
func (r *UserConfigRepository) Get(ctx context.Context, userID string) (*models.UserConfig, error) {
	query := r.db.Rebind(`
		SELECT user_id, max_daily_reviews, is_active
		FROM user_configs
		WHERE user_id = ?`)

	cfg := &models.UserConfig{}
	err := sqlx.GetContext(ctx, r.db, cfg, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.UserConfig{UserID: userID, IsActive: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user config: %w", err)
	}
	return cfg, nil
}

// Save inserts or updates user configuration
func (r *UserConfigRepository) Save(ctx context.Context, cfg *models.UserConfig) error {
	if cfg.MaxDailyReviews < 0 {
		return fmt.Errorf("max daily reviews must not be negative, got %d", cfg.MaxDailyReviews)
	}

	query := r.db.Rebind(`
		INSERT INTO user_configs (user_id, max_daily_reviews, is_active)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			max_daily_reviews = excluded.max_daily_reviews,
			is_active = excluded.is_active`)

	if _, err := r.db.ExecContext(ctx, query, cfg.UserID, cfg.MaxDailyReviews, cfg.IsActive); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}
