package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the sqlite database and ensures the self-role tables exist.
// Foreign keys are switched on so role rows cascade with their message.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS role_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			message_id TEXT UNIQUE,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			selection_mode TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS role_message_roles (
			role_message_id INTEGER NOT NULL REFERENCES role_messages(id) ON DELETE CASCADE,
			role_id TEXT NOT NULL,
			emoji TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (role_message_id, role_id)
		);`,
		`CREATE TABLE IF NOT EXISTS role_cooldowns (
			user_id TEXT NOT NULL,
			role_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, role_id, guild_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_role_messages_guild ON role_messages(guild_id);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}
