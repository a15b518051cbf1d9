package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/pkg/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", DisplayName: "Ada", Email: "ada@example.com", DailyGoal: 7}))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, 7, got.DailyGoal)
	assert.Equal(t, 1, got.Level)
	assert.Zero(t, got.XP)
	assert.Empty(t, got.LastStudyDate)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, repo.Create(ctx, &models.User{ID: "u1"}), "duplicate id")
}

func TestUserRepository_GetAll(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "a")
	createUser(t, db, "b")

	users, err := NewUserRepository(db).GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_UpdateDailyGoal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewUserRepository(db)

	require.NoError(t, repo.UpdateDailyGoal(ctx, "u1", 12))
	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 12, got.DailyGoal)

	assert.Error(t, repo.UpdateDailyGoal(ctx, "u1", -1))
	assert.ErrorIs(t, repo.UpdateDailyGoal(ctx, "nobody", 3), ErrNotFound)
}

func TestUserRepository_AddXP(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewUserRepository(db)

	tests := []struct {
		add       int
		wantXP    int
		wantLevel int
	}{
		{50, 50, 1},
		{49, 99, 1},
		{1, 100, 2},
		{250, 350, 4},
	}
	for _, tt := range tests {
		user, err := repo.AddXP(ctx, "u1", tt.add)
		require.NoError(t, err)
		assert.Equal(t, tt.wantXP, user.XP)
		assert.Equal(t, tt.wantLevel, user.Level)
	}

	_, err := repo.AddXP(ctx, "nobody", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_RecordStudyDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewUserRepository(db)

	streak, err := repo.RecordStudyDay(ctx, "u1", t0)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	streak, err = repo.RecordStudyDay(ctx, "u1", t0.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "same day counts once")

	streak, err = repo.RecordStudyDay(ctx, "u1", t0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	streak, err = repo.RecordStudyDay(ctx, "u1", t0.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "gap restarts the streak")

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-19", user.LastStudyDate)
	assert.Equal(t, 1, user.Streak)
}
