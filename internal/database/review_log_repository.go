package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordsrs/pkg/models"
)

// ReviewLogRepository records every review event
type ReviewLogRepository struct {
	db sqlx.ExtContext
}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository(db sqlx.ExtContext) *ReviewLogRepository {
	return &ReviewLogRepository{db: db}
}

// Create inserts a review log entry
func (r *ReviewLogRepository) Create(ctx context.Context, entry *models.ReviewLog) error {
	if entry.ReviewedAt.IsZero() {
		entry.ReviewedAt = time.Now()
	}
	// Timestamps are compared as text on SQLite, so keep them in one zone.
	entry.ReviewedAt = entry.ReviewedAt.UTC()

	query := r.db.Rebind(`
		INSERT INTO review_logs (
			user_id, word_id, quality, is_correct, response_time_ms,
			interval_days, ease_factor, reviewed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		entry.UserID, entry.WordID, entry.Quality, entry.IsCorrect, entry.ResponseTimeMs,
		entry.Interval, entry.EaseFactor, entry.ReviewedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create review log: %w", err)
	}
	return nil
}

// ListByWord returns the review history of a word, most recent first
func (r *ReviewLogRepository) ListByWord(ctx context.Context, wordID int64) ([]models.ReviewLog, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, word_id, quality, is_correct, response_time_ms,
		       interval_days, ease_factor, reviewed_at
		FROM review_logs
		WHERE word_id = ?
		ORDER BY reviewed_at DESC, id DESC`)

	var logs []models.ReviewLog
	if err := sqlx.SelectContext(ctx, r.db, &logs, query, wordID); err != nil {
		return nil, fmt.Errorf("failed to get review logs: %w", err)
	}
	return logs, nil
}

// CountByUserSince counts a user's reviews at or after since
func (r *ReviewLogRepository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM review_logs WHERE user_id = ? AND reviewed_at >= ?")

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, userID, since.UTC()); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
