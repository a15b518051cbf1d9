package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

// Scheduling columns may be NULL on legacy rows; they are read as zero values
// and fixed up by sanitizeItem.
const wordColumns = `id, user_id, word, meaning, example, difficulty,
	COALESCE(learning_status, '') AS learning_status,
	COALESCE(interval_days, 0) AS interval_days,
	COALESCE(ease_factor, 0) AS ease_factor,
	COALESCE(repetitions, 0) AS repetitions,
	COALESCE(next_review_date, '') AS next_review_date,
	review_count, last_reviewed_at, version, created_at`

// WordRepository handles database operations for words. Its handle is
// either a *DB or a transaction.
type WordRepository struct {
	db  sqlx.ExtContext
	log *log.Logger
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db sqlx.ExtContext, logger *log.Logger) *WordRepository {
	return &WordRepository{db: db, log: logger}
}

// Create inserts a new word. ID, Version and CreatedAt are filled in.
func (r *WordRepository) Create(ctx context.Context, w *models.Word) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	if w.Difficulty == "" {
		w.Difficulty = srs.DifficultyMedium
	}
	w.Version = 1

	query := r.db.Rebind(`
		INSERT INTO words (
			user_id, word, meaning, example, difficulty,
			learning_status, interval_days, ease_factor, repetitions, next_review_date,
			review_count, last_reviewed_at, version, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		w.UserID, w.Word, w.Meaning, w.Example, w.Difficulty,
		w.LearningStatus, w.Interval, w.EaseFactor, w.Repetitions, w.NextReviewDate,
		w.ReviewCount, w.LastReviewedAt, w.Version, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var w models.Word
	err := sqlx.GetContext(ctx, r.db, &w, r.db.Rebind("SELECT "+wordColumns+" FROM words WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}
	r.clean(&w)
	return &w, nil
}

// ListByUser returns all words of a user, newest first
func (r *WordRepository) ListByUser(ctx context.Context, userID string) ([]models.Word, error) {
	words, err := r.listRaw(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range words {
		r.clean(&words[i])
	}
	return words, nil
}

// FindByText looks up a user's word case-insensitively.
func (r *WordRepository) FindByText(ctx context.Context, userID, text string) (*models.Word, error) {
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE user_id = ? AND LOWER(word) = LOWER(?)")

	var w models.Word
	err := sqlx.GetContext(ctx, r.db, &w, query, userID, strings.TrimSpace(text))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find word: %w", err)
	}
	r.clean(&w)
	return &w, nil
}

// Search returns words whose text or meaning contains q.
func (r *WordRepository) Search(ctx context.Context, userID, q string, limit int) ([]models.Word, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	query := r.db.Rebind(`SELECT ` + wordColumns + ` FROM words
		WHERE user_id = ? AND (LOWER(word) LIKE ? OR LOWER(meaning) LIKE ?)
		ORDER BY word
		LIMIT ?`)

	var words []models.Word
	if err := sqlx.SelectContext(ctx, r.db, &words, query, userID, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search words: %w", err)
	}
	for i := range words {
		r.clean(&words[i])
	}
	return words, nil
}

// UpdateContent modifies the text fields of a word, leaving its schedule alone.
func (r *WordRepository) UpdateContent(ctx context.Context, w *models.Word) error {
	query := r.db.Rebind(`
		UPDATE words SET
			meaning = ?,
			example = ?,
			difficulty = ?,
			version = version + 1
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, w.Meaning, w.Example, w.Difficulty, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	w.Version++
	return nil
}

// UpdateSchedule stores the outcome of a review. The write only succeeds if
// the row still has the given version; otherwise ErrStaleWrite is returned.
// It returns the row's new version.
func (r *WordRepository) UpdateSchedule(ctx context.Context, id, version int64, u srs.Update) (int64, error) {
	query := r.db.Rebind(`
		UPDATE words SET
			interval_days = ?,
			ease_factor = ?,
			repetitions = ?,
			next_review_date = ?,
			learning_status = ?,
			last_reviewed_at = ?,
			review_count = review_count + 1,
			version = version + 1
		WHERE id = ? AND version = ?`)

	res, err := r.db.ExecContext(ctx, query,
		u.Interval, u.EaseFactor, u.Repetitions, u.NextReviewDate, u.LearningStatus,
		u.LastReviewedAt, id, version,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update schedule: %w", err)
	}
	if n == 0 {
		return 0, r.missingOrStale(ctx, id)
	}
	return version + 1, nil
}

// Repair rewrites legacy rows of a user so every scheduling column holds a
// valid value. Missing or corrupt review dates become today, keeping the
// word due. Rows changed concurrently are skipped. It returns the number of
// rows rewritten. Run it inside DB.InTx to apply the rewrite atomically.
func (r *WordRepository) Repair(ctx context.Context, userID string, today time.Time) (int, error) {
	words, err := r.listRaw(ctx, userID)
	if err != nil {
		return 0, err
	}

	query := r.db.Rebind(`
		UPDATE words SET
			interval_days = ?,
			ease_factor = ?,
			repetitions = ?,
			next_review_date = ?,
			learning_status = ?,
			version = version + 1
		WHERE id = ? AND version = ?`)

	repaired := 0
	for _, w := range words {
		fields := sanitizeItem(&w.Item)
		date := repairDate(&w.Item, today)
		if !fields && !date {
			continue
		}

		res, err := r.db.ExecContext(ctx, query,
			w.Interval, w.EaseFactor, w.Repetitions, w.NextReviewDate, w.LearningStatus,
			w.ID, w.Version,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to repair word %d: %w", w.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			r.log.Debug("skipping word changed during repair", "word_id", w.ID)
			continue
		}
		repaired++
	}
	return repaired, nil
}

// Delete removes a word and its review history
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM words WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return expectOneRow(res)
}

func (r *WordRepository) listRaw(ctx context.Context, userID string) ([]models.Word, error) {
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE user_id = ? ORDER BY created_at DESC, id DESC")

	var words []models.Word
	if err := sqlx.SelectContext(ctx, r.db, &words, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

func (r *WordRepository) clean(w *models.Word) {
	if sanitizeItem(&w.Item) {
		r.log.Warn("sanitized malformed word schedule", "word_id", w.ID, "user_id", w.UserID)
	}
}

func (r *WordRepository) missingOrStale(ctx context.Context, id int64) error {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind("SELECT COUNT(*) FROM words WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to check word: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStaleWrite
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
