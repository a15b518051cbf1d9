package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/pkg/models"
)

func TestReviewLogRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createUser(t, db, "u1")
	w := createWord(t, db, "u1", "apple")
	repo := NewReviewLogRepository(db)

	for i, q := range []int{5, 2, 4} {
		entry := &models.ReviewLog{
			UserID:         "u1",
			WordID:         w.ID,
			Quality:        q,
			IsCorrect:      q >= 3,
			ResponseTimeMs: 1500,
			Interval:       i + 1,
			EaseFactor:     2.5,
			ReviewedAt:     t0.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, entry))
		assert.NotZero(t, entry.ID)
	}

	history, err := repo.ListByWord(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 4, history[0].Quality, "most recent first")
	assert.False(t, history[1].IsCorrect)
	assert.True(t, t0.Equal(history[2].ReviewedAt))

	count, err := repo.CountByUserSince(ctx, "u1", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByUserSince(ctx, "u1", t0.Add(-time.Hour).In(time.FixedZone("X", 5*3600)))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
