package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as UTC unix nanoseconds; seq breaks ties in listings.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			xp_reward INTEGER NOT NULL DEFAULT 100 CHECK (xp_reward >= 0),
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '🏆',
			xp_earned INTEGER NOT NULL CHECK (xp_earned >= 0),
			completed_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_achievements_completed_at ON achievements(completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
