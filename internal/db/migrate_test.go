package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_RerunsCleanly(t *testing.T) {
	db := openTestDB(t)
	for range 2 {
		require.NoError(t, Migrate(db))
	}
}

func TestMigrate_SchemaObjects(t *testing.T) {
	db := openTestDB(t)

	for _, obj := range []struct{ kind, name string }{
		{"table", "kv_store"},
		{"table", "reminders"},
		{"index", "idx_reminders_pending"},
	} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, obj.kind, obj.name).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "%s %s", obj.kind, obj.name)
	}
}

// TestMigrate_UpgradePath_LegacyKVStore simulates a database created before
// kv_store tracked updated_at. Existing blobs must survive and gain the
// column with its default.
func TestMigrate_UpgradePath_LegacyKVStore(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES ('plans', '[]')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var value, updatedAt string
	err = db.QueryRow(`SELECT value, updated_at FROM kv_store WHERE key = 'plans'`).Scan(&value, &updatedAt)
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
	assert.Equal(t, "", updatedAt)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/planeasy.db"

	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
