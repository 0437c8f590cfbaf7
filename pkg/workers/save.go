package workers

import (
	"context"

	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
)

type SaveGameWorker struct {
	repository   repositories.Repository
	saveGameChan <-chan SaveGameRequest
}

type NewSaveGameWorkerOptions struct {
	Repository   repositories.Repository
	SaveGameChan <-chan SaveGameRequest
}

type SaveGameRequest struct {
	Game *models.SavedGame
}

// NewSaveGameWorker creates a new SaveGameWorker.
// The worker saves the snapshots the game loop sends it at the end of each
// round, so that a crashed game can be resumed.
func NewSaveGameWorker(opts NewSaveGameWorkerOptions) *SaveGameWorker {
	return &SaveGameWorker{
		repository:   opts.Repository,
		saveGameChan: opts.SaveGameChan,
	}
}

// Start processes save requests until ctx is done, then saves whatever
// requests are still pending.
func (w *SaveGameWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return
		case req := <-w.saveGameChan:
			w.saveGame(ctx, req)
		}
	}
}

func (w *SaveGameWorker) drain(ctx context.Context) {
	for {
		select {
		case req := <-w.saveGameChan:
			w.saveGame(ctx, req)
		default:
			return
		}
	}
}

func (w *SaveGameWorker) saveGame(ctx context.Context, req SaveGameRequest) {
	if req.Game == nil {
		return
	}
	if err := w.repository.SaveGame(ctx, req.Game); err != nil {
		log.Error("Failed to save game %s: %v", req.Game.ID, err)
		return
	}
	log.Debug("Saved game %s at round %d", req.Game.ID, req.Game.CurrentRound)
}
