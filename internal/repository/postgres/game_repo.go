package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/connect-four/internal/service/game"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameResult represents the result of a finished game
type GameResult struct {
	GameID            string    `json:"gameId"`
	Player1Controller string    `json:"player1"`
	Player2Controller string    `json:"player2"`
	Status            string    `json:"status"`
	Winner            int       `json:"winner"`
	Rounds            int       `json:"rounds"`
	TotalMoves        int       `json:"totalMoves"`
	Width             int       `json:"width"`
	Height            int       `json:"height"`
	CreatedAt         time.Time `json:"createdAt"`
	FinishedAt        time.Time `json:"finishedAt"`
}

// GameDetails is a result together with its final board and move list
type GameDetails struct {
	GameResult
	Board [][]int     `json:"board_state"`
	Moves []game.Turn `json:"moves"`
}

const resultColumns = `game_id, player1_controller, player2_controller, status, winner,
	rounds, total_moves, width, height, created_at, finished_at`

// SaveGame stores a finished game. Saving the same game twice overwrites it.
func (r *GameRepo) SaveGame(ctx context.Context, rec game.Record) error {
	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}
	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}

	query := `
	INSERT INTO games (game_id, player1_controller, player2_controller, status, winner, rounds, total_moves, width, height, board_state, moves, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (game_id) DO UPDATE SET
		status = EXCLUDED.status,
		winner = EXCLUDED.winner,
		rounds = EXCLUDED.rounds,
		total_moves = EXCLUDED.total_moves,
		board_state = EXCLUDED.board_state,
		moves = EXCLUDED.moves,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query,
		rec.GameID,
		rec.Controllers[0].String(),
		rec.Controllers[1].String(),
		string(rec.Status),
		int(rec.Winner),
		rec.Rounds,
		len(rec.Moves),
		rec.Width,
		rec.Height,
		boardJSON,
		movesJSON,
		rec.CreatedAt,
		rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (GameResult, error) {
	var result GameResult
	err := row.Scan(
		&result.GameID,
		&result.Player1Controller,
		&result.Player2Controller,
		&result.Status,
		&result.Winner,
		&result.Rounds,
		&result.TotalMoves,
		&result.Width,
		&result.Height,
		&result.CreatedAt,
		&result.FinishedAt,
	)
	return result, err
}

// GetGameByID retrieves a game with its board and moves, nil if unknown
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*GameDetails, error) {
	query := `SELECT ` + resultColumns + `, board_state, moves FROM games WHERE game_id = $1;`

	var details GameDetails
	var boardJSON, movesJSON []byte
	err := r.DB.QueryRowContext(ctx, query, gameID).Scan(
		&details.GameID,
		&details.Player1Controller,
		&details.Player2Controller,
		&details.Status,
		&details.Winner,
		&details.Rounds,
		&details.TotalMoves,
		&details.Width,
		&details.Height,
		&details.CreatedAt,
		&details.FinishedAt,
		&boardJSON,
		&movesJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	if err := json.Unmarshal(boardJSON, &details.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
	}
	if err := json.Unmarshal(movesJSON, &details.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	return &details, nil
}

// ListRecent returns the most recently finished games, newest first
func (r *GameRepo) ListRecent(ctx context.Context, limit int) ([]GameResult, error) {
	query := `SELECT ` + resultColumns + ` FROM games ORDER BY finished_at DESC LIMIT $1;`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []GameResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}
	return games, nil
}

// DeleteOlderThan removes games finished more than days ago
func (r *GameRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM games WHERE finished_at < NOW() - make_interval(days => $1);`

	res, err := r.DB.ExecContext(ctx, query, days)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old games: %w", err)
	}
	return res.RowsAffected()
}
