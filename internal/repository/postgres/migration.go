package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id            TEXT PRIMARY KEY,
	player1_controller TEXT NOT NULL,
	player2_controller TEXT NOT NULL,
	status             TEXT NOT NULL,
	winner             SMALLINT NOT NULL DEFAULT 0,
	rounds             INTEGER NOT NULL,
	total_moves        INTEGER NOT NULL,
	width              SMALLINT NOT NULL,
	height             SMALLINT NOT NULL,
	board_state        JSONB NOT NULL,
	moves              JSONB NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL,
	finished_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games (finished_at DESC);
`

// RunMigrations creates the history table when it does not exist yet.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
