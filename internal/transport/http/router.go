package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	History        *HistoryHandler
	Stats          *StatsHandler
	Watch          *WatchHandler
	WebSocket      http.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/live", cfg.Watch.GetLiveGames)
		api.GET("/history", cfg.History.GetHistory)
		api.GET("/history/:id", cfg.History.GetGameDetails)
		api.GET("/stats", cfg.Stats.GetStats)
	}

	if cfg.WebSocket != nil {
		router.GET("/ws", gin.WrapF(cfg.WebSocket))
	}

	return router
}
