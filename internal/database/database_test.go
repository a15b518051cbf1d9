package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/internal/logging"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

var t0 = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, id string) *models.User {
	t.Helper()
	user := &models.User{ID: id, DisplayName: id, DailyGoal: 5}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createWord(t *testing.T, db *DB, userID, text string) *models.Word {
	t.Helper()
	w := &models.Word{
		UserID:  userID,
		Word:    text,
		Meaning: text + " meaning",
		Item:    srs.NewSM2(srs.FixedClock(t0)).InitialState(),
	}
	require.NoError(t, NewWordRepository(db, logging.Discard()).Create(context.Background(), w))
	return w
}
