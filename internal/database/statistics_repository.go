package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordsrs/pkg/models"
)

const dailyStatsColumns = "user_id, date, words_learned, words_reviewed, correct_answers, total_questions, xp_earned"

// StatisticsRepository handles database operations for statistics
type StatisticsRepository struct {
	db sqlx.ExtContext
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(db sqlx.ExtContext) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// AddDaily adds the counters in delta to the row for (delta.UserID, delta.Date),
// creating the row on first use.
func (r *StatisticsRepository) AddDaily(ctx context.Context, delta models.DailyStats) error {
	query := r.db.Rebind(`
		INSERT INTO daily_stats (` + dailyStatsColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			words_learned = daily_stats.words_learned + excluded.words_learned,
			words_reviewed = daily_stats.words_reviewed + excluded.words_reviewed,
			correct_answers = daily_stats.correct_answers + excluded.correct_answers,
			total_questions = daily_stats.total_questions + excluded.total_questions,
			xp_earned = daily_stats.xp_earned + excluded.xp_earned`)

	_, err := r.db.ExecContext(ctx, query,
		delta.UserID, delta.Date, delta.WordsLearned, delta.WordsReviewed,
		delta.CorrectAnswers, delta.TotalQuestions, delta.XPEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily stats: %w", err)
	}
	return nil
}

// GetDailyStats returns the stats of one day. A day without activity yields
// a zeroed row rather than an error.
func (r *StatisticsRepository) GetDailyStats(ctx context.Context, userID, date string) (*models.DailyStats, error) {
	query := r.db.Rebind("SELECT " + dailyStatsColumns + " FROM daily_stats WHERE user_id = ? AND date = ?")

	var stats models.DailyStats
	err := sqlx.GetContext(ctx, r.db, &stats, query, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.DailyStats{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	return &stats, nil
}

// GetRange returns the stored days between from and to inclusive, oldest first.
// Days without activity are absent.
func (r *StatisticsRepository) GetRange(ctx context.Context, userID, from, to string) ([]models.DailyStats, error) {
	query := r.db.Rebind(`SELECT ` + dailyStatsColumns + ` FROM daily_stats
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`)

	var stats []models.DailyStats
	if err := sqlx.SelectContext(ctx, r.db, &stats, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to get stats range: %w", err)
	}
	return stats, nil
}

// GetUserSummary aggregates progress over all words of a user.
func (r *StatisticsRepository) GetUserSummary(ctx context.Context, userID string) (*models.Summary, error) {
	query := r.db.Rebind(`
		SELECT
			COUNT(*) AS total_words,
			COALESCE(SUM(CASE WHEN learning_status = 'mastered' THEN 1 ELSE 0 END), 0) AS mastered_words,
			COALESCE(SUM(review_count), 0) AS review_count,
			COALESCE(AVG(COALESCE(NULLIF(ease_factor, 0), 2.5)), 0) AS average_ease
		FROM words
		WHERE user_id = ?`)

	var summary models.Summary
	if err := sqlx.GetContext(ctx, r.db, &summary, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user summary: %w", err)
	}

	var user struct {
		Streak        int    `db:"streak"`
		LastStudyDate string `db:"last_study_date"`
	}
	err := sqlx.GetContext(ctx, r.db, &user, r.db.Rebind("SELECT streak, last_study_date FROM users WHERE id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user summary: %w", err)
	}

	summary.StreakDays = user.Streak
	summary.LastStudyDate = user.LastStudyDate
	if summary.TotalWords > 0 {
		summary.AverageScore = int(math.Round(float64(summary.MasteredWords) / float64(summary.TotalWords) * 100))
	}
	return &summary, nil
}
