package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// busyTimeoutMillis lets a command wait out a TUI save on the same file
// instead of failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

type pragma struct {
	name  string
	value string
}

// connPragmas are applied once after open. The pool is held to a single
// connection, so they cover every statement the process runs.
var connPragmas = []pragma{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"foreign_keys", "ON"},
	{"busy_timeout", fmt.Sprint(busyTimeoutMillis)},
}

// OpenDB opens the planeasy database at path, creating its directory when
// needed, and brings the schema up to date. Use MemoryPath for a throwaway
// database.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One process, one logical thread of work. A second pooled connection
	// would miss the pragmas and, for :memory:, see an empty database.
	database.SetMaxOpenConns(1)

	if err := configure(database); err != nil {
		database.Close()
		return nil, err
	}
	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func configure(database *sql.DB) error {
	if err := database.Ping(); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	for _, p := range connPragmas {
		stmt := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	return nil
}
