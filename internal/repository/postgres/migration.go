package postgres

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_sessions (
	session_id TEXT PRIMARY KEY,
	game_type  TEXT NOT NULL,
	status     TEXT NOT NULL,
	model      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_game_sessions_status ON game_sessions (status);

CREATE TABLE IF NOT EXISTS friendships (
	user_identity   TEXT NOT NULL,
	friend_identity TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_identity, friend_identity)
);
`

// RunMigrations creates the engine's tables if they do not exist yet.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}
	return nil
}
