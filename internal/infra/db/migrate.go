package db

import (
	"database/sql"
)

// MigrateUp creates the menu cache schema.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS menu_cache (
    cache_key  TEXT PRIMARY KEY,
    source_id  TEXT NOT NULL,
    week       INT NOT NULL,
    year       INT NOT NULL,
    offerings  JSONB NOT NULL,
    strategy   VARCHAR(20),
    closed     BOOLEAN NOT NULL DEFAULT FALSE,
    stored_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at TIMESTAMPTZ NOT NULL
)`); err != nil {
		return err
	}

	indexes := []string{
		// Lookup by source across weeks
		`CREATE INDEX IF NOT EXISTS idx_menu_cache_source ON menu_cache(source_id)`,
		// Expiry sweeps
		`CREATE INDEX IF NOT EXISTS idx_menu_cache_expires_at ON menu_cache(expires_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the menu cache schema. Use with caution: this deletes
// all cached menus.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_menu_cache_source`,
		`DROP INDEX IF EXISTS idx_menu_cache_expires_at`,
		`DROP TABLE IF EXISTS menu_cache`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
