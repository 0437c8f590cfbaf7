package models

import (
	"time"
)

// PlayerSnapshot is the persisted state of one player.
type PlayerSnapshot struct {
	Token                string `json:"token"`
	PlayerID             int    `json:"player_id"`
	Balance              int    `json:"balance"`
	IsJailed             bool   `json:"is_jailed"`
	SquarePosition       int    `json:"square_position"`
	MoveCountSinceJail   int    `json:"move_count_since_jail"`
	JailBailMode         bool   `json:"jail_bail_mode"`
	JailFeelingLuckyMode bool   `json:"jail_feeling_lucky_mode"`
	HasExited            bool   `json:"has_exited"`
	// Properties lists the board positions owned by the player
	Properties []int `json:"properties"`
}

// GameSnapshot is the persisted state of a game between turns.
type GameSnapshot struct {
	Players         []PlayerSnapshot `json:"players"`
	CurrentPlayerID int              `json:"current_player_id"`
	CurrentRound    int              `json:"current_round"`
}

// SavedGame is a snapshot stored under an id.
// Snapshot is nil when listing games.
type SavedGame struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CurrentRound int           `json:"current_round"`
	Snapshot     *GameSnapshot `json:"snapshot,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// GameEvent is a journaled game event.
type GameEvent struct {
	GameID    string `json:"game_id"`
	Round     int    `json:"round"`
	Type      string `json:"type"`
	PlayerID  int    `json:"player_id"`
	Token     string `json:"token,omitempty"`
	Position  int    `json:"position,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Balance   int    `json:"balance"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Standing is a player's place in a saved game.
type Standing struct {
	PlayerID   int    `json:"player_id"`
	Token      string `json:"token"`
	Balance    int    `json:"balance"`
	Properties []int  `json:"properties"`
	HasExited  bool   `json:"has_exited"`
}
