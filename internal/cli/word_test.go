package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/internal/database"
	"github.com/example/wordsrs/pkg/models"
)

func TestWordCatalog(t *testing.T) {
	h := newHarness(t)

	apple := runJSON[models.Word](h, "word", "add", "apple", "-m", "elma")
	runJSON[models.Word](h, "word", "add", "pineapple", "-m", "ananas")
	runJSON[models.Word](h, "word", "add", "pear", "-m", "armut")
	runJSON[any](h, "review", itoa(apple.ID), "--rating", "4")

	all := runJSON[[]models.Word](h, "word", "list")
	assert.Len(t, all, 3)

	learning := runJSON[[]models.Word](h, "word", "list", "--status", "learning")
	require.Len(t, learning, 1)
	assert.Equal(t, "apple", learning[0].Word)

	_, err := h.run("word", "list", "--status", "forgotten")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	found := runJSON[[]models.Word](h, "word", "search", "APPLE")
	assert.Len(t, found, 2)
	found = runJSON[[]models.Word](h, "word", "search", "apple", "--limit", "1")
	assert.Len(t, found, 1)

	history := runJSON[[]models.ReviewLog](h, "word", "history", itoa(apple.ID))
	require.Len(t, history, 1)
	assert.Equal(t, 4, history[0].Quality)

	text, err := h.run("word", "history", itoa(apple.ID))
	require.NoError(t, err)
	assert.Contains(t, text, "q=4 right")

	runJSON[map[string]int64](h, "word", "delete", itoa(apple.ID))
	assert.Len(t, runJSON[[]models.Word](h, "word", "list"), 2)

	_, err = h.run("word", "history", itoa(apple.ID))
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = h.run("word", "delete", "x")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTodayJSON_EmptyPoolsAreArrays(t *testing.T) {
	h := newHarness(t)
	runJSON[models.User](h, "user", "add", "ada", "--goal", "0")
	runJSON[models.Word](h, "-u", "ada", "word", "add", "apple")

	out, err := h.run("-u", "ada", "today", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"due":[]`)
	assert.Contains(t, out, `"new":[]`)
	assert.NotContains(t, out, "null")
}

func TestUserInactiveSkipsRepair(t *testing.T) {
	h := newHarness(t)
	runJSON[models.User](h, "user", "add", "bob", "--inactive")
	runJSON[models.User](h, "user", "add", "cy")

	db, err := database.Open(context.Background(), "sqlite3", h.db)
	require.NoError(t, err)
	db.MustExec(`INSERT INTO words (user_id, word) VALUES ('bob', 'legacy-bob')`)
	db.MustExec(`INSERT INTO words (user_id, word) VALUES ('cy', 'legacy-cy')`)
	require.NoError(t, db.Close())

	repaired := runJSON[map[string]int](h, "repair", "--all")
	assert.Equal(t, 1, repaired["repaired"])

	text, err := h.run("user", "add", "bob")
	require.NoError(t, err)
	assert.Contains(t, text, "Paused")

	runJSON[models.User](h, "user", "add", "bob", "--inactive=false")
	repaired = runJSON[map[string]int](h, "repair", "--all")
	assert.Equal(t, 1, repaired["repaired"])
}
