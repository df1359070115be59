package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var errSpectatorGone = errors.New("spectator disconnected")

type spectator struct {
	conn   *websocket.Conn
	gameID string

	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex
}

// ConnectionManager tracks spectator connections and the game each watches.
type ConnectionManager struct {
	spectators map[string]*spectator
	mu         sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{spectators: make(map[string]*spectator)}
}

// AddConnection registers conn as a spectator of gameID and writes the
// message built by first before any broadcast can reach it.
func (cm *ConnectionManager) AddConnection(spectatorID, gameID string, conn *websocket.Conn, first func() Message) error {
	s := &spectator{conn: conn, gameID: gameID}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cm.mu.Lock()
	if old, exists := cm.spectators[spectatorID]; exists {
		old.conn.Close()
	}
	cm.spectators[spectatorID] = s
	cm.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(first())
}

// RemoveConnectionIfMatching closes conn only if it is still the one
// registered under spectatorID.
func (cm *ConnectionManager) RemoveConnectionIfMatching(spectatorID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if s, exists := cm.spectators[spectatorID]; exists && s.conn == conn {
		s.conn.Close()
		delete(cm.spectators, spectatorID)
	}
}

func (s *spectator) write(message any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(message)
}

func (s *spectator) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Ping sends a keep-alive ping to one spectator.
func (cm *ConnectionManager) Ping(spectatorID string) error {
	cm.mu.RLock()
	s, exists := cm.spectators[spectatorID]
	cm.mu.RUnlock()

	if !exists {
		return errSpectatorGone
	}
	return s.ping()
}

// BroadcastToGame sends message to everyone watching gameID. It returns the
// number of spectators that were sent the message successfully.
func (cm *ConnectionManager) BroadcastToGame(gameID string, message Message) int {
	cm.mu.RLock()
	targets := make([]*spectator, 0, len(cm.spectators))
	for _, s := range cm.spectators {
		if s.gameID == gameID {
			targets = append(targets, s)
		}
	}
	cm.mu.RUnlock()

	sent := 0
	for _, s := range targets {
		if err := s.write(message); err == nil {
			sent++
		}
	}
	return sent
}

// SpectatorCount returns how many connections watch gameID.
func (cm *ConnectionManager) SpectatorCount(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	count := 0
	for _, s := range cm.spectators {
		if s.gameID == gameID {
			count++
		}
	}
	return count
}

// CloseAll disconnects every spectator, used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for id, s := range cm.spectators {
		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()
		delete(cm.spectators, id)
	}
}
