package models

import "time"

// ReviewLog records a single review event and the schedule it produced.
type ReviewLog struct {
	ID             int64     `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	WordID         int64     `json:"word_id" db:"word_id"`
	Quality        int       `json:"quality" db:"quality"`
	IsCorrect      bool      `json:"is_correct" db:"is_correct"`
	ResponseTimeMs int64     `json:"response_time_ms" db:"response_time_ms"` // 0 for self-rated reviews
	Interval       int       `json:"interval" db:"interval_days"`
	EaseFactor     float64   `json:"ease_factor" db:"ease_factor"`
	ReviewedAt     time.Time `json:"reviewed_at" db:"reviewed_at"`
}
