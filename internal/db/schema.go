package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the full database schema.
//
// created_at is written from Go rather than defaulted to CURRENT_TIMESTAMP so
// that the display-order tie-break (newest first among equal priorities) has
// sub-second resolution.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    price      REAL NOT NULL CHECK (price >= 0),
    url        TEXT NOT NULL,
    image_key  TEXT NOT NULL DEFAULT '',
    category   TEXT NOT NULL DEFAULT 'uncategorized',
    priority   INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_display_order
    ON items(priority, created_at DESC);

CREATE TABLE IF NOT EXISTS blobs (
    key          TEXT PRIMARY KEY,
    data         BLOB NOT NULL,
    content_type TEXT NOT NULL,
    etag         TEXT NOT NULL,
    created_at   DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
