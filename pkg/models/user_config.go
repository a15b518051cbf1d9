package models

// UserConfig holds per-user session settings.
type UserConfig struct {
	UserID string `json:"user_id" db:"user_id"`
	// Upper bound on due reviews shown per session, 0 means unlimited
	MaxDailyReviews int `json:"max_daily_reviews" db:"max_daily_reviews"`
	// Inactive users are skipped by background jobs
	IsActive bool `json:"is_active" db:"is_active"`
}
