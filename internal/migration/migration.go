// Package migration creates the database schema on startup. Statements
// are idempotent so repeated startups are safe.
package migration

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS video_data (
	aweme_id      TEXT PRIMARY KEY,
	user_name     TEXT NOT NULL DEFAULT '',
	fans_count    BIGINT NOT NULL DEFAULT 0,
	description   TEXT NOT NULL DEFAULT '',
	publish_time  TIMESTAMPTZ,
	duration      BIGINT NOT NULL DEFAULT 0,
	like_count    BIGINT NOT NULL DEFAULT 0,
	comment_count BIGINT NOT NULL DEFAULT 0,
	share_count   BIGINT NOT NULL DEFAULT 0,
	collect_count BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comment_data (
	id           BIGSERIAL PRIMARY KEY,
	user_id      TEXT NOT NULL DEFAULT '',
	user_name    TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	comment_time TIMESTAMPTZ,
	user_ip      TEXT NOT NULL DEFAULT '',
	like_count   BIGINT NOT NULL DEFAULT 0,
	aweme_id     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_comment_data_aweme_id ON comment_data (aweme_id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS video_data (
	aweme_id      TEXT PRIMARY KEY,
	user_name     TEXT NOT NULL DEFAULT '',
	fans_count    INTEGER NOT NULL DEFAULT 0,
	description   TEXT NOT NULL DEFAULT '',
	publish_time  TIMESTAMP,
	duration      INTEGER NOT NULL DEFAULT 0,
	like_count    INTEGER NOT NULL DEFAULT 0,
	comment_count INTEGER NOT NULL DEFAULT 0,
	share_count   INTEGER NOT NULL DEFAULT 0,
	collect_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comment_data (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      TEXT NOT NULL DEFAULT '',
	user_name    TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	comment_time TIMESTAMP,
	user_ip      TEXT NOT NULL DEFAULT '',
	like_count   INTEGER NOT NULL DEFAULT 0,
	aweme_id     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_comment_data_aweme_id ON comment_data (aweme_id);
`

// Run applies the schema for the given driver ("postgres" or "sqlite").
func Run(db *sqlx.DB, driver string) error {
	var schema string
	switch driver {
	case "postgres":
		schema = postgresSchema
	case "sqlite":
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
