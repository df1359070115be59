package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/iamasit07/connect-four/pkg/httputil"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

type SnapshotSource interface {
	Get(gameID string) (game.Snapshot, bool)
}

// SnapshotCache holds snapshots outside this process, e.g. in Redis.
type SnapshotCache interface {
	LoadSnapshot(ctx context.Context, gameID string) (game.Snapshot, bool, error)
}

// Handler upgrades spectator requests into a live feed of one game.
type Handler struct {
	ConnManager *ConnectionManager
	Games       SnapshotSource
	Cache       SnapshotCache // optional, consulted when Games misses
	Signer      *auth.Signer
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, games SnapshotSource, signer *auth.Signer, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Games:       games,
		Signer:      signer,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// originChecker allows every origin when the list is empty.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Printf("[WS] Rejected origin %q", origin)
		return false
	}
}

// HandleWebSocket serves GET /ws?game=<id>&token=<jwt>.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game", http.StatusBadRequest)
		return
	}

	token, err := httputil.GetTokenFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if _, err := h.Signer.Authorize(token, gameID); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrWrongGame) {
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return
	}

	if _, ok := h.lookup(r.Context(), gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	spectatorID, err := uid.GenerateSpectatorID()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(spectatorID, gameID, conn)
}

// lookup finds the latest snapshot of a game, in process first and then in
// the cache.
func (h *Handler) lookup(ctx context.Context, gameID string) (game.Snapshot, bool) {
	if snap, ok := h.Games.Get(gameID); ok {
		return snap, true
	}
	if h.Cache == nil {
		return game.Snapshot{}, false
	}

	snap, ok, err := h.Cache.LoadSnapshot(ctx, gameID)
	if err != nil {
		log.Printf("[WS] Snapshot cache lookup failed for game %s: %v", gameID, err)
		return game.Snapshot{}, false
	}
	return snap, ok
}

func (h *Handler) handleConnection(spectatorID, gameID string, conn *websocket.Conn) {
	found := false
	err := h.ConnManager.AddConnection(spectatorID, gameID, conn, func() Message {
		snap, ok := h.lookup(context.Background(), gameID)
		if !ok {
			return Message{Type: TypeError, Message: "game not found"}
		}
		found = true
		return Message{Type: TypeSnapshot, Snapshot: &snap}
	})
	defer h.ConnManager.RemoveConnectionIfMatching(spectatorID, conn)
	if err != nil {
		log.Printf("[WS] Failed to send snapshot to %s: %v", spectatorID, err)
		return
	}
	// the game vanished between the handshake check and registration
	if !found {
		return
	}
	log.Printf("[WS] Spectator %s watching game %s", spectatorID, gameID)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(spectatorID, done)

	// spectators only listen; reading keeps pongs and close frames flowing
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Spectator %s disconnected unexpectedly: %v", spectatorID, err)
			}
			break
		}
	}
	log.Printf("[WS] Spectator %s left game %s", spectatorID, gameID)
}

func (h *Handler) keepAlive(spectatorID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(spectatorID); err != nil {
				return
			}
		}
	}
}
