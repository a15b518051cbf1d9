package models

import (
	"time"
)

// User is a learner. ID is the identifier issued by the auth provider.
type User struct {
	ID            string    `json:"id" db:"id"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	Email         string    `json:"email" db:"email"`
	DailyGoal     int       `json:"daily_goal" db:"daily_goal"` // New words per day
	XP            int       `json:"xp" db:"xp"`
	Level         int       `json:"level" db:"level"`
	Streak        int       `json:"streak" db:"streak"`                   // Consecutive study days
	LastStudyDate string    `json:"last_study_date" db:"last_study_date"` // YYYY-MM-DD, empty if never
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
