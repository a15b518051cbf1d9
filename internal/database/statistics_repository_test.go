package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/internal/logging"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

func TestStatisticsRepository_AddDaily(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewStatisticsRepository(db)

	empty, err := repo.GetDailyStats(ctx, "u1", "2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, models.DailyStats{UserID: "u1", Date: "2025-06-15"}, *empty)

	require.NoError(t, repo.AddDaily(ctx, models.DailyStats{UserID: "u1", Date: "2025-06-15", WordsReviewed: 1, CorrectAnswers: 1, TotalQuestions: 1, XPEarned: 50}))
	require.NoError(t, repo.AddDaily(ctx, models.DailyStats{UserID: "u1", Date: "2025-06-15", WordsReviewed: 1, TotalQuestions: 1, XPEarned: 20}))
	require.NoError(t, repo.AddDaily(ctx, models.DailyStats{UserID: "u1", Date: "2025-06-15", WordsLearned: 1}))

	got, err := repo.GetDailyStats(ctx, "u1", "2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, models.DailyStats{
		UserID:         "u1",
		Date:           "2025-06-15",
		WordsLearned:   1,
		WordsReviewed:  2,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		XPEarned:       70,
	}, *got)
}

func TestStatisticsRepository_GetRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewStatisticsRepository(db)

	for _, date := range []string{"2025-06-16", "2025-06-09", "2025-06-12", "2025-06-10"} {
		require.NoError(t, repo.AddDaily(ctx, models.DailyStats{UserID: "u1", Date: date, WordsReviewed: 1}))
	}

	got, err := repo.GetRange(ctx, "u1", "2025-06-10", "2025-06-16")
	require.NoError(t, err)
	var dates []string
	for _, d := range got {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2025-06-10", "2025-06-12", "2025-06-16"}, dates)
}

func TestStatisticsRepository_GetUserSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewStatisticsRepository(db)

	summary, err := repo.GetUserSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalWords)
	assert.Zero(t, summary.AverageScore)

	words := NewWordRepository(db, logging.Discard())
	for _, text := range []string{"a", "b", "c"} {
		createWord(t, db, "u1", text)
	}
	mastered := createWord(t, db, "u1", "d")
	_, err = words.UpdateSchedule(ctx, mastered.ID, mastered.Version, srs.Update{
		Interval: 30, EaseFactor: 2.1, Repetitions: 5,
		NextReviewDate: "2025-07-15T00:00:00Z", LearningStatus: srs.StatusMastered, LastReviewedAt: t0,
	})
	require.NoError(t, err)
	_, err = NewUserRepository(db).RecordStudyDay(ctx, "u1", t0)
	require.NoError(t, err)

	summary, err = repo.GetUserSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalWords)
	assert.Equal(t, 1, summary.MasteredWords)
	assert.Equal(t, 1, summary.ReviewCount)
	assert.Equal(t, 25, summary.AverageScore)
	assert.InDelta(t, (2.5*3+2.1)/4, summary.AverageEase, 1e-9)
	assert.Equal(t, 1, summary.StreakDays)
	assert.Equal(t, "2025-06-15", summary.LastStudyDate)

	_, err = repo.GetUserSummary(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
