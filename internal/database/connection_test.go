package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/internal/config"
	"github.com/example/wordsrs/pkg/models"
)

func TestConnect_CreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "words.db")
	cfg := &config.Config{DBType: config.DBTypeSQLite, DBPath: path}

	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
	assert.Equal(t, "sqlite3", db.DriverName())
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.db")

	first, err := Open(context.Background(), "sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), "sqlite3", path)
	require.NoError(t, err)
	defer second.Close()

	var tables int
	require.NoError(t, second.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'
		AND name IN ('users', 'words', 'review_logs', 'daily_stats', 'user_configs')`))
	assert.Equal(t, 5, tables)
}

func TestClose_Nil(t *testing.T) {
	var db *DB
	assert.NoError(t, db.Close())
}

func TestInTx(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		err := db.InTx(ctx, func(tx *sqlx.Tx) error {
			return NewUserRepository(tx).Create(ctx, &models.User{ID: "kept"})
		})
		require.NoError(t, err)

		_, err = NewUserRepository(db).GetByID(ctx, "kept")
		assert.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.InTx(ctx, func(tx *sqlx.Tx) error {
			require.NoError(t, NewUserRepository(tx).Create(ctx, &models.User{ID: "dropped"}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewUserRepository(db).GetByID(ctx, "dropped")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
