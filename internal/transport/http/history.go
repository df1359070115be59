package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/repository/postgres"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryStore interface {
	ListRecent(ctx context.Context, limit int) ([]postgres.GameResult, error)
	GetGameByID(ctx context.Context, gameID string) (*postgres.GameDetails, error)
}

type HistoryHandler struct {
	Store HistoryStore
}

func NewHistoryHandler(store HistoryStore) *HistoryHandler {
	return &HistoryHandler{Store: store}
}

// GetHistory serves GET /api/history?limit=n
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Store == nil {
		storeDisabled(c, "history")
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.Store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGameDetails serves GET /api/history/:id
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if h.Store == nil {
		storeDisabled(c, "history")
		return
	}

	details, err := h.Store.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[HTTP] Failed to fetch game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, details)
}

func storeDisabled(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": what + " is not configured"})
}
