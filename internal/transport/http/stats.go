package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/repository/redis"
)

type StatsStore interface {
	Stats(ctx context.Context) (map[string]redis.Tally, error)
}

type StatsHandler struct {
	Store StatsStore
}

func NewStatsHandler(store StatsStore) *StatsHandler {
	return &StatsHandler{Store: store}
}

// GetStats serves GET /api/stats, keyed by controller ("human", "level-3").
func (h *StatsHandler) GetStats(c *gin.Context) {
	if h.Store == nil {
		storeDisabled(c, "stats")
		return
	}

	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[HTTP] Failed to fetch stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
