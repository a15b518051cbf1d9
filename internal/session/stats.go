package session

import (
	"context"

	"github.com/example/wordsrs/internal/database"
	"github.com/example/wordsrs/pkg/models"
)

// Badges awarded by Achievements.
const (
	BadgeDailyGoal = "daily_goal_complete"
	BadgePerfect   = "perfect_score"
	BadgeHighXP    = "high_xp_earner"
)

// HighXPThreshold is the daily XP needed for BadgeHighXP.
const HighXPThreshold = 100

// GoalProgress reports how far the user is with today's goal of new words.
type GoalProgress struct {
	Goal      int  `json:"goal"`
	Learned   int  `json:"learned"`
	Progress  int  `json:"progress"`
	Remaining int  `json:"remaining"`
	Completed bool `json:"completed"`
}

// DailyGoalProgress compares the words learned today with the user's daily goal.
func (s *Service) DailyGoalProgress(ctx context.Context, userID string) (*GoalProgress, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.GetDailyStats(ctx, userID, s.today())
	if err != nil {
		return nil, err
	}
	return goalProgress(user.DailyGoal, stats.WordsLearned), nil
}

func goalProgress(goal, learned int) *GoalProgress {
	return &GoalProgress{
		Goal:      goal,
		Learned:   learned,
		Progress:  min(learned, goal),
		Remaining: max(0, goal-learned),
		Completed: learned >= goal,
	}
}

// WeeklyStats returns the last seven days ending today, oldest first.
// Days without activity are filled with zeroes.
func (s *Service) WeeklyStats(ctx context.Context, userID string) ([]models.DailyStats, error) {
	now := s.now()
	from := now.AddDate(0, 0, -6).Format(database.DateLayout)
	to := now.Format(database.DateLayout)

	stored, err := s.stats.GetRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.DailyStats, len(stored))
	for _, d := range stored {
		byDate[d.Date] = d
	}

	week := make([]models.DailyStats, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(database.DateLayout)
		day, ok := byDate[date]
		if !ok {
			day = models.DailyStats{UserID: userID, Date: date}
		}
		week = append(week, day)
	}
	return week, nil
}

// Summary returns the user's overall progress.
func (s *Service) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	return s.stats.GetUserSummary(ctx, userID)
}

// Achievements lists the badges earned with the given day of activity.
func Achievements(stats models.DailyStats, dailyGoal int) []string {
	var badges []string
	if dailyGoal > 0 && stats.WordsLearned >= dailyGoal {
		badges = append(badges, BadgeDailyGoal)
	}
	if stats.TotalQuestions > 0 && stats.CorrectAnswers == stats.TotalQuestions {
		badges = append(badges, BadgePerfect)
	}
	if stats.XPEarned >= HighXPThreshold {
		badges = append(badges, BadgeHighXP)
	}
	return badges
}
