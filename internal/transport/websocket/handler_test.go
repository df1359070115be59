package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/auth"
)

type testServer struct {
	*httptest.Server
	registry *game.Registry
	signer   *auth.Signer
	conns    *ConnectionManager
	game     *game.Game
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	registry := game.NewRegistry()
	signer := auth.NewSigner("test-secret", time.Minute)
	conns := NewConnectionManager()

	g, err := game.New(game.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	registry.GameStarted(context.Background(), g.Snapshot())

	h := NewHandler(conns, registry, signer, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, registry: registry, signer: signer, conns: conns, game: g}
}

func (s *testServer) url(gameID, token string) string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?game=" + gameID + "&token=" + token
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestSpectatorReceivesSnapshotThenMoves(t *testing.T) {
	srv := newTestServer(t)
	token, err := srv.signer.GenerateWatchToken(srv.game.ID)
	if err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(srv.url(srv.game.ID, token), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	first := readMessage(t, conn)
	if first.Type != TypeSnapshot || first.Snapshot == nil || first.Snapshot.GameID != srv.game.ID {
		t.Fatalf("expected the current snapshot first, got %+v", first)
	}
	if srv.conns.SpectatorCount(srv.game.ID) != 1 {
		t.Fatalf("spectator should be registered")
	}

	hub := NewHub(srv.conns)
	if _, err := srv.game.PlayHuman(3); err != nil {
		t.Fatal(err)
	}
	hub.MoveMade(context.Background(), srv.game.Snapshot())

	move := readMessage(t, conn)
	if move.Type != TypeMove || move.Snapshot.MoveCount != 1 || move.Snapshot.LastMove.Move.Column != 3 {
		t.Fatalf("unexpected move message %+v", move)
	}

	// other games are not broadcast to this spectator
	if n := srv.conns.BroadcastToGame("someone-else", Message{Type: TypeMove}); n != 0 {
		t.Fatalf("broadcast reached %d spectators of another game", n)
	}

	hub.GameFinished(context.Background(), srv.game.Snapshot(), srv.game.Record())
	if over := readMessage(t, conn); over.Type != TypeFinished {
		t.Fatalf("expected %s, got %s", TypeFinished, over.Type)
	}
}

func TestSpectatorRejected(t *testing.T) {
	srv := newTestServer(t)
	otherToken, err := srv.signer.GenerateWatchToken("another-game")
	if err != nil {
		t.Fatal(err)
	}
	unknownToken, err := srv.signer.GenerateWatchToken("missing")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		gameID string
		token  string
		status int
	}{
		{"garbage token", srv.game.ID, "not-a-jwt", http.StatusUnauthorized},
		{"token for another game", srv.game.ID, otherToken, http.StatusForbidden},
		{"unknown game", "missing", unknownToken, http.StatusNotFound},
		{"no game", "", otherToken, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(srv.url(tt.gameID, tt.token), nil)
			if err == nil {
				t.Fatalf("expected the handshake to fail")
			}
			if resp == nil || resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %+v", tt.status, resp)
			}
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if !check(r) {
		t.Errorf("requests without an Origin header should pass")
	}
	r.Header.Set("Origin", "http://localhost:3000")
	if !check(r) {
		t.Errorf("listed origin should pass")
	}
	r.Header.Set("Origin", "http://evil.example")
	if check(r) {
		t.Errorf("unlisted origin should be rejected")
	}
	if !originChecker(nil)(r) {
		t.Errorf("an empty list allows everything")
	}
}

type fakeSnapshotCache struct {
	snaps map[string]game.Snapshot
	err   error
}

func (f *fakeSnapshotCache) LoadSnapshot(_ context.Context, gameID string) (game.Snapshot, bool, error) {
	if f.err != nil {
		return game.Snapshot{}, false, f.err
	}
	snap, ok := f.snaps[gameID]
	return snap, ok, nil
}

// vanishingSource knows the game only for the first lookup.
type vanishingSource struct {
	snap  game.Snapshot
	calls int
}

func (v *vanishingSource) Get(string) (game.Snapshot, bool) {
	v.calls++
	return v.snap, v.calls == 1
}

func serveHandler(t *testing.T, h *Handler) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestSpectatorFallsBackToSnapshotCache(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Minute)
	cached := game.Snapshot{GameID: "remote", Width: 7, Height: 6, MoveCount: 4}
	cache := &fakeSnapshotCache{snaps: map[string]game.Snapshot{"remote": cached}}

	h := NewHandler(NewConnectionManager(), game.NewRegistry(), signer, nil)
	h.Cache = cache
	base := serveHandler(t, h)

	token, err := signer.GenerateWatchToken("remote")
	if err != nil {
		t.Fatal(err)
	}
	conn, _, err := websocket.DefaultDialer.Dial(base+"?game=remote&token="+token, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	msg := readMessage(t, conn)
	if msg.Type != TypeSnapshot || msg.Snapshot == nil || msg.Snapshot.GameID != "remote" || msg.Snapshot.MoveCount != 4 {
		t.Fatalf("expected the cached snapshot, got %+v", msg)
	}

	// a failing cache is treated as a miss
	broken := NewHandler(NewConnectionManager(), game.NewRegistry(), signer, nil)
	broken.Cache = &fakeSnapshotCache{err: errors.New("redis down")}
	_, resp, err := websocket.DefaultDialer.Dial(serveHandler(t, broken)+"?game=remote&token="+token, nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when the cache fails, got %v %+v", err, resp)
	}
}

func TestSpectatorDroppedWhenGameVanishes(t *testing.T) {
	signer := auth.NewSigner("test-secret", time.Minute)
	conns := NewConnectionManager()
	source := &vanishingSource{snap: game.Snapshot{GameID: "gone"}}
	base := serveHandler(t, NewHandler(conns, source, signer, nil))

	token, err := signer.GenerateWatchToken("gone")
	if err != nil {
		t.Fatal(err)
	}
	conn, _, err := websocket.DefaultDialer.Dial(base+"?game=gone&token="+token, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if msg := readMessage(t, conn); msg.Type != TypeError {
		t.Fatalf("expected an error message, got %+v", msg)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("connection should be closed after the error")
	}
	if n := conns.SpectatorCount("gone"); n != 0 {
		t.Fatalf("spectator should be removed, %d left", n)
	}
}
