package game

import (
	"context"
	"fmt"
	"log"
)

type GameRepository interface {
	SaveGame(ctx context.Context, record Record) error
}

// Archiver stores every finished game.
type Archiver struct {
	NopObserver
	repo GameRepository
}

func NewArchiver(repo GameRepository) *Archiver {
	return &Archiver{repo: repo}
}

func (a *Archiver) GameFinished(ctx context.Context, _ Snapshot, record Record) error {
	if err := a.repo.SaveGame(ctx, record); err != nil {
		return fmt.Errorf("saving game %s: %w", record.GameID, err)
	}
	log.Printf("[GAME] Game %s saved successfully", record.GameID)
	return nil
}

type CacheRepository interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	RecordResult(ctx context.Context, record Record) error
}

// LiveCache mirrors the running game into a cache and counts results per
// controller once it ends.
type LiveCache struct {
	cache CacheRepository
}

func NewLiveCache(cache CacheRepository) *LiveCache {
	return &LiveCache{cache: cache}
}

func (l *LiveCache) GameStarted(ctx context.Context, snap Snapshot) error {
	return l.cache.SaveSnapshot(ctx, snap)
}

func (l *LiveCache) MoveMade(ctx context.Context, snap Snapshot) error {
	return l.cache.SaveSnapshot(ctx, snap)
}

func (l *LiveCache) GameFinished(ctx context.Context, snap Snapshot, record Record) error {
	if err := l.cache.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	return l.cache.RecordResult(ctx, record)
}
