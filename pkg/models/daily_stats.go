package models

// DailyStats tracks a user's activity on one calendar day.
type DailyStats struct {
	UserID         string `json:"user_id" db:"user_id"`
	Date           string `json:"date" db:"date"` // YYYY-MM-DD
	WordsLearned   int    `json:"words_learned" db:"words_learned"`
	WordsReviewed  int    `json:"words_reviewed" db:"words_reviewed"`
	CorrectAnswers int    `json:"correct_answers" db:"correct_answers"`
	TotalQuestions int    `json:"total_questions" db:"total_questions"`
	XPEarned       int    `json:"xp_earned" db:"xp_earned"`
}

// Summary aggregates a user's progress over all words.
type Summary struct {
	TotalWords    int     `json:"total_words" db:"total_words"`
	MasteredWords int     `json:"mastered_words" db:"mastered_words"`
	ReviewCount   int     `json:"review_count" db:"review_count"`
	AverageEase   float64 `json:"average_ease" db:"average_ease"`
	StreakDays    int     `json:"streak_days"`
	AverageScore  int     `json:"average_score"` // Percentage of mastered words
	LastStudyDate string  `json:"last_study_date"`
}
