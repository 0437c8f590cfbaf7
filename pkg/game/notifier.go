package game

import (
	"time"

	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/queue"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
)

// Notifier receives the narrative of a game as it is played.
// Implementations must not affect the outcome of the game.
type Notifier interface {
	Notify(event types.Event)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(event types.Event)

func (f NotifierFunc) Notify(event types.Event) {
	f(event)
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(types.Event) {}

// MultiNotifier forwards each event to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(event types.Event) {
	for _, n := range m {
		n.Notify(event)
	}
}

// QueueNotifier enqueues events as journal entries for a worker to persist.
type QueueNotifier struct {
	gameID string
	queue  queue.Queue
}

func NewQueueNotifier(gameID string, q queue.Queue) *QueueNotifier {
	return &QueueNotifier{
		gameID: gameID,
		queue:  q,
	}
}

func (n *QueueNotifier) Notify(event types.Event) {
	entry := &models.GameEvent{
		GameID:    n.gameID,
		Round:     event.Round,
		Type:      string(event.Type),
		PlayerID:  event.PlayerID,
		Token:     event.Token,
		Position:  event.Position,
		Amount:    event.Amount,
		Balance:   event.Balance,
		Message:   event.Message,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := n.queue.Enqueue(entry); err != nil {
		log.Warn("Failed to enqueue %s event for game %s: %v", event.Type, n.gameID, err)
	}
}
