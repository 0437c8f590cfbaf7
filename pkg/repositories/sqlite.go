package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection serializes writers from the game loop and the workers
	db.SetMaxOpenConns(1)

	statements, err := readMigrations(migrations)
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range statements {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveGame(ctx context.Context, game *models.SavedGame) error {
	snapshot, err := json.Marshal(game.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v", err)
	}
	now := time.Now()

	q := `
	INSERT INTO games (id, name, current_round, snapshot, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		current_round = excluded.current_round,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at;
	`
	_, err = r.db.ExecContext(ctx, q, game.ID, game.Name, game.CurrentRound, string(snapshot), toMillis(now), toMillis(now))
	if err != nil {
		return fmt.Errorf("failed to save game: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadGame(ctx context.Context, gameID string) (*models.SavedGame, error) {
	q := `
	SELECT id, name, current_round, snapshot, created_at, updated_at FROM games WHERE id = ?;
	`
	game := &models.SavedGame{}
	var snapshot string
	var createdAt, updatedAt int64
	err := r.db.QueryRowContext(ctx, q, gameID).Scan(&game.ID, &game.Name, &game.CurrentRound, &snapshot, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}

	game.Snapshot, err = models.DecodeGameSnapshot([]byte(snapshot))
	if err != nil {
		return nil, err
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}

func (r *SQLiteRepository) ListGames(ctx context.Context) ([]*models.SavedGame, error) {
	q := `
	SELECT id, name, current_round, created_at, updated_at FROM games ORDER BY updated_at DESC, id;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %v", err)
	}
	defer rows.Close()

	games := []*models.SavedGame{}
	for rows.Next() {
		game := &models.SavedGame{}
		var createdAt, updatedAt int64
		if err := rows.Scan(&game.ID, &game.Name, &game.CurrentRound, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %v", err)
		}
		game.CreatedAt = fromMillis(createdAt)
		game.UpdatedAt = fromMillis(updatedAt)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %v", err)
	}

	return games, nil
}

func (r *SQLiteRepository) DeleteGame(ctx context.Context, gameID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?;`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted games: %v", err)
	}
	if n == 0 {
		return &ErrNotFound{}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_events WHERE game_id = ?;`, gameID); err != nil {
		return fmt.Errorf("failed to delete game events: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) AppendEvents(ctx context.Context, events []*models.GameEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO game_events (game_id, round, type, player_id, token, position, amount, balance, message, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, e := range events {
		_, err = tx.ExecContext(ctx, q, e.GameID, e.Round, e.Type, e.PlayerID, e.Token, e.Position, e.Amount, e.Balance, e.Message, e.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert game event: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, gameID string) ([]*models.GameEvent, error) {
	q := `
	SELECT game_id, round, type, player_id, token, position, amount, balance, message, timestamp
	FROM game_events WHERE game_id = ? ORDER BY id;
	`
	rows, err := r.db.QueryContext(ctx, q, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game events: %v", err)
	}
	defer rows.Close()

	events := []*models.GameEvent{}
	for rows.Next() {
		e := &models.GameEvent{}
		if err := rows.Scan(&e.GameID, &e.Round, &e.Type, &e.PlayerID, &e.Token, &e.Position, &e.Amount, &e.Balance, &e.Message, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan game event: %v", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game events: %v", err)
	}

	return events, nil
}
