package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/pkg/models"
)

func TestUserConfigRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	repo := NewUserConfigRepository(db)

	cfg, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.UserConfig{UserID: "u1", IsActive: true}, *cfg)

	require.NoError(t, repo.Save(ctx, &models.UserConfig{UserID: "u1", MaxDailyReviews: 20, IsActive: true}))
	require.NoError(t, repo.Save(ctx, &models.UserConfig{UserID: "u1", MaxDailyReviews: 10, IsActive: false}))

	cfg, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxDailyReviews)
	assert.False(t, cfg.IsActive)

	assert.Error(t, repo.Save(ctx, &models.UserConfig{UserID: "u1", MaxDailyReviews: -1}))
}
