package websocket

import (
	"context"

	"github.com/iamasit07/connect-four/internal/service/game"
)

// Message types sent to spectators.
const (
	TypeSnapshot = "snapshot"
	TypeMove     = "move"
	TypeFinished = "game_over"
	TypeError    = "error"
)

type Message struct {
	Type     string         `json:"type"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// Hub forwards game events to the spectators of each game.
type Hub struct {
	game.NopObserver
	conns *ConnectionManager
}

func NewHub(conns *ConnectionManager) *Hub {
	return &Hub{conns: conns}
}

func (h *Hub) MoveMade(_ context.Context, snap game.Snapshot) error {
	h.conns.BroadcastToGame(snap.GameID, Message{Type: TypeMove, Snapshot: &snap})
	return nil
}

func (h *Hub) GameFinished(_ context.Context, snap game.Snapshot, _ game.Record) error {
	h.conns.BroadcastToGame(snap.GameID, Message{Type: TypeFinished, Snapshot: &snap})
	return nil
}
