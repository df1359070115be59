package cleanup

import (
	"context"
	"log"
	"time"
)

const (
	DefaultInterval = time.Hour
	finishedGameTTL = time.Hour
)

type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type FinishedGames interface {
	CleanupFinished(maxAge time.Duration) int
}

// Worker prunes old history rows and forgets finished live games.
type Worker struct {
	History       HistoryPruner
	Games         FinishedGames
	RetentionDays int
	Interval      time.Duration
}

func NewWorker(history HistoryPruner, games FinishedGames, retentionDays int) *Worker {
	return &Worker{
		History:       history,
		Games:         games,
		RetentionDays: retentionDays,
		Interval:      DefaultInterval,
	}
}

// Start runs a cleanup immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *Worker) RunOnce(ctx context.Context) {
	if w.Games != nil {
		w.Games.CleanupFinished(finishedGameTTL)
	}

	if w.History == nil || w.RetentionDays <= 0 {
		return
	}
	deletedCount, err := w.History.DeleteOlderThan(ctx, w.RetentionDays)
	if err != nil {
		log.Printf("[CLEANUP] Error pruning game history: %v", err)
		return
	}
	if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d games older than %d days", deletedCount, w.RetentionDays)
	}
}
