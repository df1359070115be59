package http

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/service/game"
)

type LiveGames interface {
	Active() []game.Snapshot
}

type SpectatorCounter interface {
	SpectatorCount(gameID string) int
}

type WatchHandler struct {
	Games      LiveGames
	Spectators SpectatorCounter
}

func NewWatchHandler(games LiveGames, spectators SpectatorCounter) *WatchHandler {
	return &WatchHandler{Games: games, Spectators: spectators}
}

type liveGameResponse struct {
	GameID         string    `json:"gameId"`
	Player1        string    `json:"player1"`
	Player2        string    `json:"player2"`
	CurrentPlayer  int       `json:"currentPlayer"`
	Round          int       `json:"round"`
	MoveCount      int       `json:"moveCount"`
	SpectatorCount int       `json:"spectatorCount"`
	StartedAt      time.Time `json:"startedAt"`
}

// GetLiveGames returns the games being played right now. Watch tokens are
// never listed here.
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	active := h.Games.Active()
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartedAt.Before(active[j].StartedAt)
	})

	response := make([]liveGameResponse, 0, len(active))
	for _, g := range active {
		item := liveGameResponse{
			GameID:        g.GameID,
			Player1:       g.Controllers[0],
			Player2:       g.Controllers[1],
			CurrentPlayer: int(g.Current),
			Round:         g.Round,
			MoveCount:     g.MoveCount,
			StartedAt:     g.StartedAt,
		}
		if h.Spectators != nil {
			item.SpectatorCount = h.Spectators.SpectatorCount(g.GameID)
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}
