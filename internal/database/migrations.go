package database

import (
	"context"
	"fmt"
)

// Constraint names referenced by the services when classifying errors.
const (
	UsernameUniqueConstraint   = "users_username_key"
	InviteCodeUniqueConstraint = "idx_todolists_invite_code"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGSERIAL PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_username_not_empty CHECK (username <> '')
	)`,

	`CREATE TABLE IF NOT EXISTS todolists (
		todolist_id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		shared_flag BOOLEAN NOT NULL DEFAULT FALSE,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		invite_code VARCHAR(5),
		CONSTRAINT todolists_invite_code_iff_shared CHECK (
			(shared_flag AND invite_code IS NOT NULL) OR (NOT shared_flag AND invite_code IS NULL)
		)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_todolists_invite_code
		ON todolists(invite_code) WHERE invite_code IS NOT NULL`,

	// No ON DELETE CASCADE: list deletion removes dependents explicitly, in order.
	`CREATE TABLE IF NOT EXISTS todolist_shares (
		todolist_id BIGINT NOT NULL REFERENCES todolists(todolist_id),
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		PRIMARY KEY (todolist_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		task_id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		progress VARCHAR(20) NOT NULL DEFAULT 'Uncompleted',
		assignee BIGINT REFERENCES users(user_id),
		date_due DATE,
		date_created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		todolist_id BIGINT NOT NULL REFERENCES todolists(todolist_id),
		owner_id BIGINT NOT NULL REFERENCES users(user_id),
		CONSTRAINT tasks_progress_check CHECK (progress IN ('Uncompleted', 'Completed')),
		CONSTRAINT tasks_description_not_empty CHECK (description <> '')
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todolists_user_id ON todolists(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todolist_shares_user_id ON todolist_shares(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_todolist_id ON tasks(todolist_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
