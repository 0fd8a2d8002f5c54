package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. IDs use AUTOINCREMENT so a deleted
// record's ID is never handed out again.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    code        TEXT NOT NULL,
    name        TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'in_warehouse'
                CHECK (status IN ('in_warehouse', 'in_container', 'delayed', 'shipped')),
    customer    TEXT NOT NULL DEFAULT '',
    date        TEXT NOT NULL DEFAULT '',
    quantity    INTEGER NOT NULL DEFAULT 0,
    weight      TEXT NOT NULL DEFAULT '',
    destination TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS customers (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         TEXT NOT NULL,
    company      TEXT NOT NULL DEFAULT '',
    email        TEXT NOT NULL DEFAULT '',
    phone        TEXT NOT NULL DEFAULT '',
    address      TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('', 'active', 'inactive', 'pending')),
    type         TEXT NOT NULL DEFAULT 'regular'
                 CHECK (type IN ('regular', 'premium', 'vip', 'enterprise')),
    total_orders INTEGER NOT NULL DEFAULT 0,
    last_order   TEXT NOT NULL DEFAULT '',
    join_date    TEXT NOT NULL DEFAULT '',
    notes        TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
