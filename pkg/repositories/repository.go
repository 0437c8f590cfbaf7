package repositories

import (
	"context"

	"github.com/cbodonnell/monopoly/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	// SaveGame inserts or replaces a saved game. CreatedAt is kept from the first save.
	SaveGame(ctx context.Context, game *models.SavedGame) error
	// LoadGame returns the saved game with its snapshot, or ErrNotFound.
	LoadGame(ctx context.Context, gameID string) (*models.SavedGame, error)
	// ListGames returns every saved game without snapshots, most recently updated first.
	ListGames(ctx context.Context) ([]*models.SavedGame, error)
	// DeleteGame removes a saved game and its events, or returns ErrNotFound.
	DeleteGame(ctx context.Context, gameID string) error
	AppendEvents(ctx context.Context, events []*models.GameEvent) error
	// ListEvents returns the events of a game in the order they were appended.
	ListEvents(ctx context.Context, gameID string) ([]*models.GameEvent, error)
}
