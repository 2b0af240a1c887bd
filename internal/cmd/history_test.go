package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harrison/treegen/internal/history"
	"github.com/harrison/treegen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, dbPath string, ids ...string) {
	t.Helper()
	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	for _, id := range ids {
		r := models.NewResult(id, "tree.txt")
		r.AddDir("root")
		r.AddSkip("some prose", models.ReasonSentence)
		require.NoError(t, store.RecordRun(context.Background(), r))
	}
}

func TestHistoryNoDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	stdout, _, err := executeCommand(t, nil, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded yet")
	assert.Contains(t, stdout, dbPath)
}

func TestHistoryListsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	seedHistory(t, dbPath, "run-one", "run-two", "run-three")

	stdout, _, err := executeCommand(t, nil, "history", "--db", dbPath, "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "RUN")
	assert.Contains(t, stdout, "run-three")
	assert.Contains(t, stdout, "run-two")
	assert.NotContains(t, stdout, "run-one")
}

func TestHistoryShowsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	seedHistory(t, dbPath, "run-one")

	stdout, _, err := executeCommand(t, nil, "history", "--db", dbPath, "run-one")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Run: run-one")
	assert.Contains(t, stdout, "Directories created: 1")
	assert.Contains(t, stdout, " - probable descriptive sentence: some prose")
}

func TestHistoryUnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	seedHistory(t, dbPath, "run-one")

	_, _, err := executeCommand(t, nil, "history", "--db", dbPath, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}
