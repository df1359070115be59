package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

const (
	statsPrefix = "stats:controller:"
	livePrefix  = "live:"

	DefaultSnapshotTTL = 2 * time.Hour
)

// Tally is the win/loss/draw count of one controller.
type Tally struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Draws  int64 `json:"draws"`
}

// StatsCache keeps live snapshots and per-controller results in Redis.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

func liveKey(gameID string) string {
	return livePrefix + gameID
}

func statsKey(c domain.Controller) string {
	return statsPrefix + c.String()
}

// outcomeField maps a game outcome to its hash field.
func outcomeField(outcome string) string {
	switch outcome {
	case "win":
		return "wins"
	case "loss":
		return "losses"
	default:
		return "draws"
	}
}

func (s *StatsCache) SaveSnapshot(ctx context.Context, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, liveKey(snap.GameID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot for game %s: %w", snap.GameID, err)
	}
	return nil
}

// LoadSnapshot returns the cached snapshot of a game, false when it expired
// or never existed.
func (s *StatsCache) LoadSnapshot(ctx context.Context, gameID string) (game.Snapshot, bool, error) {
	var snap game.Snapshot
	data, err := s.client.Get(ctx, liveKey(gameID)).Bytes()
	if err == redis.Nil {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("failed to load snapshot for game %s: %w", gameID, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// RecordResult counts the finished game once for each side.
func (s *StatsCache) RecordResult(ctx context.Context, record game.Record) error {
	pipe := s.client.TxPipeline()
	for i, player := range []domain.PlayerID{domain.Player1, domain.Player2} {
		pipe.HIncrBy(ctx, statsKey(record.Controllers[i]), outcomeField(record.Outcome(player)), 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record result of game %s: %w", record.GameID, err)
	}
	return nil
}

// Stats returns the tally of every controller that has finished a game.
func (s *StatsCache) Stats(ctx context.Context) (map[string]Tally, error) {
	stats := make(map[string]Tally)

	iter := s.client.Scan(ctx, 0, statsPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		stats[strings.TrimPrefix(key, statsPrefix)] = parseTally(fields)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan stats keys: %w", err)
	}
	return stats, nil
}

func parseTally(fields map[string]string) Tally {
	n := func(name string) int64 {
		v, _ := strconv.ParseInt(fields[name], 10, 64)
		return v
	}
	return Tally{Wins: n("wins"), Losses: n("losses"), Draws: n("draws")}
}
