// Package sqlite stores key-value entries in a local SQLite database using
// the pure Go modernc.org/sqlite driver.
//
// The database lives at <data dir>/roster.db and holds one kv_entries
// table. Schema changes are numbered migrations embedded from
// migrations/; each runs in its own transaction together with its
// schema_migrations row.
package sqlite
