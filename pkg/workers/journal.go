package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/queue"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
)

type JournalWorker struct {
	repository repositories.Repository
	eventQueue queue.Queue
	interval   time.Duration
}

type NewJournalWorkerOptions struct {
	Repository repositories.Repository
	EventQueue queue.Queue
	Interval   time.Duration
}

// NewJournalWorker creates a new JournalWorker.
// The worker periodically drains game events from the queue and appends
// them to the repository.
func NewJournalWorker(opts NewJournalWorkerOptions) *JournalWorker {
	return &JournalWorker{
		repository: opts.Repository,
		eventQueue: opts.EventQueue,
		interval:   opts.Interval,
	}
}

// Start flushes the queue every interval until ctx is done, then flushes it once more.
func (w *JournalWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush appends every pending event to the repository.
func (w *JournalWorker) Flush(ctx context.Context) {
	pending, err := w.eventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read game events: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	events := make([]*models.GameEvent, 0, len(pending))
	for _, item := range pending {
		event, ok := item.(*models.GameEvent)
		if !ok {
			log.Warn("Unhandled journal item type: %T", item)
			continue
		}
		events = append(events, event)
	}

	if err := w.repository.AppendEvents(ctx, events); err != nil {
		log.Error("Failed to append %d game events: %v", len(events), err)
		return
	}
	log.Trace("Appended %d game events", len(events))
}
