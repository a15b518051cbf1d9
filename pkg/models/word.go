package models

import (
	"time"

	srs "github.com/example/wordsrs/internal/spaced_repetition"
)

// Word is a vocabulary item owned by one user, together with its schedule.
type Word struct {
	ID             int64          `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	Word           string         `json:"word" db:"word"`
	Meaning        string         `json:"meaning" db:"meaning"`
	Example        string         `json:"example" db:"example"`
	Difficulty     srs.Difficulty `json:"difficulty" db:"difficulty"`
	ReviewCount    int            `json:"review_count" db:"review_count"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at,omitempty" db:"last_reviewed_at"`
	Version        int64          `json:"version" db:"version"` // Optimistic concurrency token
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	srs.Item
}
