// Package sqlite implements the SQLite storage backend for stacked.
package sqlite

// Schema DDL. Every value lives in one key-value table; the stack list is
// stored whole under a single key.
const (
	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Connection settings applied on every Attach.
const (
	pragmaBusyTimeout = `PRAGMA busy_timeout = 5000;`
	pragmaJournalMode = `PRAGMA journal_mode = WAL;`
)

// schemaDDL lists the statements run on Attach, in order.
var schemaDDL = []string{
	pragmaBusyTimeout,
	pragmaJournalMode,
	createEntries,
}

// Queries.
const (
	selectValue = `SELECT value FROM entries WHERE key = ?`
	upsertValue = `INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)
