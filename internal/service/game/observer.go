package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Observer is told about every game the runner drives. Observers run on the
// game goroutine and must not block for long.
type Observer interface {
	GameStarted(ctx context.Context, snap Snapshot) error
	MoveMade(ctx context.Context, snap Snapshot) error
	GameFinished(ctx context.Context, snap Snapshot, record Record) error
}

// NopObserver can be embedded by observers that only care about some events.
type NopObserver struct{}

func (NopObserver) GameStarted(context.Context, Snapshot) error          { return nil }
func (NopObserver) MoveMade(context.Context, Snapshot) error             { return nil }
func (NopObserver) GameFinished(context.Context, Snapshot, Record) error { return nil }

// Registry keeps the latest snapshot of every game played in this process
// so the HTTP and WebSocket side can look them up.
type Registry struct {
	games map[string]Snapshot
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[string]Snapshot)}
}

func (r *Registry) put(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[snap.GameID] = snap
}

func (r *Registry) GameStarted(_ context.Context, snap Snapshot) error {
	r.put(snap)
	return nil
}

func (r *Registry) MoveMade(_ context.Context, snap Snapshot) error {
	r.put(snap)
	return nil
}

func (r *Registry) GameFinished(_ context.Context, snap Snapshot, _ Record) error {
	r.put(snap)
	return nil
}

func (r *Registry) Get(gameID string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.games[gameID]
	return snap, ok
}

// Active returns the games that are still being played.
func (r *Registry) Active() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]Snapshot, 0, len(r.games))
	for _, snap := range r.games {
		if !snap.Status.Finished() {
			active = append(active, snap)
		}
	}
	return active
}

// CleanupFinished drops games that ended more than maxAge ago and returns
// how many were removed.
func (r *Registry) CleanupFinished(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	now := time.Now()
	for id, snap := range r.games {
		if snap.FinishedAt != nil && now.Sub(*snap.FinishedAt) > maxAge {
			delete(r.games, id)
			count++
		}
	}
	if count > 0 {
		log.Printf("[GAME] Registry cleanup: removed %d finished games", count)
	}
	return count
}
