package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/postcard/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM presets").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}

func TestDB_Reopen(t *testing.T) {
	t.Parallel()

	dbPath := t.TempDir() + "/postcard.db"

	db := sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO presets (id, name, topic_label, author_label, when_label, created_at, updated_at)
		VALUES ('p-1', 'compact', 'T', 'A', 'W', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	defer db.Close()

	var name string
	err = db.QueryRowContext(context.Background(), "SELECT name FROM presets WHERE id = 'p-1'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "compact", name)
}
