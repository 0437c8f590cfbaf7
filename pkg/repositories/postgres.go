package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository stores games in Postgres over a single connection.
// A pgx.Conn is not safe for concurrent use, so every call holds lock.
type PostgresRepository struct {
	conn *pgx.Conn
	lock sync.Mutex
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	statements, err := readMigrations(migrations)
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range statements {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveGame(ctx context.Context, game *models.SavedGame) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	snapshot, err := json.Marshal(game.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v", err)
	}
	now := toMillis(time.Now())

	q := `
	INSERT INTO games (id, name, current_round, snapshot, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (id) DO UPDATE SET name = $2, current_round = $3, snapshot = $4, updated_at = $5;
	`
	if _, err := r.conn.Exec(ctx, q, game.ID, game.Name, game.CurrentRound, snapshot, now); err != nil {
		return fmt.Errorf("failed to save game: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadGame(ctx context.Context, gameID string) (*models.SavedGame, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT id, name, current_round, snapshot, created_at, updated_at FROM games WHERE id = $1;
	`
	game := &models.SavedGame{}
	var snapshot []byte
	var createdAt, updatedAt int64
	err := r.conn.QueryRow(ctx, q, gameID).Scan(&game.ID, &game.Name, &game.CurrentRound, &snapshot, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}

	game.Snapshot, err = models.DecodeGameSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}

func (r *PostgresRepository) ListGames(ctx context.Context) ([]*models.SavedGame, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	rows, err := r.conn.Query(ctx, "SELECT id, name, current_round, created_at, updated_at FROM games ORDER BY updated_at DESC, id")
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

func (r *PostgresRepository) DeleteGame(ctx context.Context, gameID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM games WHERE id = $1", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM game_events WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("failed to delete game events: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) AppendEvents(ctx context.Context, events []*models.GameEvent) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if len(events) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(events))
	for _, e := range events {
		rows = append(rows, []interface{}{e.GameID, e.Round, e.Type, e.PlayerID, e.Token, e.Position, e.Amount, e.Balance, e.Message, e.Timestamp})
	}

	columns := []string{"game_id", "round", "type", "player_id", "token", "position", "amount", "balance", "message", "timestamp"}
	if _, err := r.conn.CopyFrom(ctx, pgx.Identifier{"game_events"}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("failed to copy game events: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListEvents(ctx context.Context, gameID string) ([]*models.GameEvent, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT game_id, round, type, player_id, token, position, amount, balance, message, timestamp
	FROM game_events WHERE game_id = $1 ORDER BY id;
	`
	rows, err := r.conn.Query(ctx, q, gameID)
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
