package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordsrs/pkg/models"
)

const userColumns = "id, display_name, email, daily_goal, xp, level, streak, last_study_date, created_at"

// XPPerLevel is the amount of experience needed to gain one level.
const XPPerLevel = 100

// UserRepository handles database operations for users
type UserRepository struct {
	db sqlx.ExtContext
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, r.db, &user, r.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// GetAll returns all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := sqlx.SelectContext(ctx, r.db, &users, "SELECT "+userColumns+" FROM users ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// Create inserts a new user. A new user starts at level 1 with no experience.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Level < 1 {
		user.Level = 1
	}

	query := r.db.Rebind(`
		INSERT INTO users (id, display_name, email, daily_goal, xp, level, streak, last_study_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.DisplayName, user.Email, user.DailyGoal,
		user.XP, user.Level, user.Streak, user.LastStudyDate, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateDailyGoal changes how many new words a user studies per day.
func (r *UserRepository) UpdateDailyGoal(ctx context.Context, id string, goal int) error {
	if goal < 0 {
		return fmt.Errorf("daily goal must not be negative, got %d", goal)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE users SET daily_goal = ? WHERE id = ?"), goal, id)
	if err != nil {
		return fmt.Errorf("failed to update daily goal: %w", err)
	}
	return expectOneRow(res)
}

// AddXP adds experience and recomputes the level. It returns the updated user.
func (r *UserRepository) AddXP(ctx context.Context, id string, xp int) (*models.User, error) {
	query := r.db.Rebind(`
		UPDATE users SET
			xp = xp + ?,
			level = (xp + ?) / ? + 1
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, xp, xp, XPPerLevel, id)
	if err != nil {
		return nil, fmt.Errorf("failed to add xp: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// RecordStudyDay marks the calendar day of day as studied and maintains the streak:
// studying on consecutive days extends it, a gap restarts it at 1.
func (r *UserRepository) RecordStudyDay(ctx context.Context, id string, day time.Time) (int, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	today := day.Format(DateLayout)
	if user.LastStudyDate == today {
		return user.Streak, nil
	}

	streak := 1
	if user.LastStudyDate == day.AddDate(0, 0, -1).Format(DateLayout) {
		streak = user.Streak + 1
	}

	query := r.db.Rebind("UPDATE users SET streak = ?, last_study_date = ? WHERE id = ?")
	if _, err := r.db.ExecContext(ctx, query, streak, today, id); err != nil {
		return 0, fmt.Errorf("failed to record study day: %w", err)
	}
	return streak, nil
}
