package spaced_repetition

import (
	"fmt"
	"time"
)

// LearningStatus is the caller-facing label of a word's place in the learning cycle.
// The due date, not the status, decides whether a word is up for review.
type LearningStatus string

const (
	StatusNew       LearningStatus = "new"
	StatusLearning  LearningStatus = "learning"
	StatusReviewing LearningStatus = "reviewing"
	StatusMastered  LearningStatus = "mastered"
)

// IsValid reports whether s is one of the known statuses.
func (s LearningStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReviewing, StatusMastered:
		return true
	}
	return false
}

func (s LearningStatus) String() string {
	return string(s)
}

// ParseLearningStatus converts stored text into a LearningStatus.
func ParseLearningStatus(s string) (LearningStatus, error) {
	status := LearningStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown learning status %q", s)
	}
	return status, nil
}

// Difficulty is the author-assigned difficulty of a word.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts user or file input into a Difficulty.
// An empty string maps to medium.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return DifficultyMedium, nil
	}
	d := Difficulty(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Item holds the scheduling fields of a vocabulary record.
// NextReviewDate is kept as persisted text: empty means the word was never
// scheduled, and legacy rows may hold values that do not parse.
type Item struct {
	Interval       int            `json:"interval" db:"interval_days"`
	EaseFactor     float64        `json:"ease_factor" db:"ease_factor"`
	Repetitions    int            `json:"repetitions" db:"repetitions"`
	NextReviewDate string         `json:"next_review_date" db:"next_review_date"`
	LearningStatus LearningStatus `json:"learning_status" db:"learning_status"`
}

// Scheduled is implemented by anything that carries an Item.
// Records embedding Item get it for free.
type Scheduled interface {
	Schedule() Item
}

// Schedule returns the item itself.
func (it Item) Schedule() Item {
	return it
}

// Review is the numeric outcome of one review event.
type Review struct {
	Interval       int
	EaseFactor     float64
	Repetitions    int
	NextReviewDate time.Time
}

// Update is the partial record written back to storage after a review.
type Update struct {
	Interval       int            `json:"interval"`
	EaseFactor     float64        `json:"ease_factor"`
	Repetitions    int            `json:"repetitions"`
	NextReviewDate string         `json:"next_review_date"`
	LearningStatus LearningStatus `json:"learning_status"`
	LastReviewedAt time.Time      `json:"last_reviewed_at"`
}

// Apply returns the item with the update's scheduling fields.
func (u Update) Apply(it Item) Item {
	it.Interval = u.Interval
	it.EaseFactor = u.EaseFactor
	it.Repetitions = u.Repetitions
	it.NextReviewDate = u.NextReviewDate
	it.LearningStatus = u.LearningStatus
	return it
}
