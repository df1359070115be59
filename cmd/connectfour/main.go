package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/repository/postgres"
	"github.com/iamasit07/connect-four/internal/repository/redis"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/console"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/iamasit07/connect-four/pkg/httputil"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Game loop dependencies
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := bot.NewEngine(rand.New(rand.NewSource(seed)))
	registry := game.NewRegistry()
	observers := []game.Observer{registry}

	// 2. Optional game history
	var history *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		db, err := postgres.InitDB(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Printf("[DB] History disabled: %v", err)
		} else {
			defer db.Close()
			history = postgres.NewGameRepo(db)
			observers = append(observers, game.NewArchiver(history))
		}
	}

	// 3. Optional live cache and stats
	var stats *redis.StatsCache
	if cfg.RedisURL != "" {
		if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			defer client.Close()
			stats = redis.NewStatsCache(client, redis.DefaultSnapshotTTL)
			observers = append(observers, game.NewLiveCache(stats))
		}
	}

	// 4. Background retention
	go cleanup.NewWorker(pruner(history), registry, cfg.HistoryRetentionDays).Start(ctx)

	// 5. Optional spectator server
	var signer *auth.Signer
	var srv *http.Server
	if cfg.WatchPort != "" {
		signer = auth.NewSigner(cfg.JWTSecret, cfg.WatchTokenTTL)
		connManager := websocket.NewConnectionManager()
		defer connManager.CloseAll()
		observers = append(observers, websocket.NewHub(connManager))

		srv = newWatchServer(cfg, registry, connManager, signer, history, stats)
		go func() {
			log.Printf("Watch server starting on :%s", cfg.WatchPort)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Watch server error: %v", err)
			}
		}()
	}

	// 6. Console games
	out := console.NewRenderer(os.Stdout, cfg.Symbols)
	prompter := console.NewPrompter(os.Stdin, os.Stdout, cfg.BoardWidth)
	runner := game.NewRunner(engine, prompter, out, observers...)

	done := make(chan error, 1)
	go func() {
		done <- playGames(ctx, cfg, prompter, out, runner, signer)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Game loop stopped: %v", err)
		}
	case <-ctx.Done():
		fmt.Println()
	}
	out.Goodbye()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Watch server forced to shutdown: %v", err)
		}
	}
}

func playGames(ctx context.Context, cfg *config.Config, prompter *console.Prompter, out *console.Renderer, runner *game.Runner, signer *auth.Signer) error {
	out.Welcome()
	controllers, err := prompter.Controllers(ctx)
	if err != nil {
		return err
	}

	for {
		g, err := game.New(game.Settings{
			Width:       cfg.BoardWidth,
			Height:      cfg.BoardHeight,
			Controllers: controllers,
		})
		if err != nil {
			return err
		}

		if signer != nil {
			if watchURL, err := watchLink(cfg.WatchPort, signer, g.ID); err != nil {
				log.Printf("Failed to create watch token: %v", err)
			} else {
				out.Watching(watchURL)
			}
		}

		if err := runner.Run(ctx, g); err != nil {
			return err
		}

		again, err := prompter.PlayAgain(ctx)
		if err != nil || !again {
			return err
		}
	}
}

func watchLink(port string, signer *auth.Signer, gameID string) (string, error) {
	token, err := signer.GenerateWatchToken(gameID)
	if err != nil {
		return "", err
	}
	query := url.Values{"game": {gameID}, httputil.WatchTokenParam: {token}}
	return fmt.Sprintf("ws://localhost:%s/ws?%s", port, query.Encode()), nil
}

func newWatchServer(cfg *config.Config, registry *game.Registry, connManager *websocket.ConnectionManager, signer *auth.Signer, history *postgres.GameRepo, stats *redis.StatsCache) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	// disabled stores must reach the handlers as nil interfaces
	var historyStore transportHttp.HistoryStore
	if history != nil {
		historyStore = history
	}
	var statsStore transportHttp.StatsStore
	if stats != nil {
		statsStore = stats
	}

	wsHandler := websocket.NewHandler(connManager, registry, signer, cfg.AllowedOrigins)
	if stats != nil {
		wsHandler.Cache = stats
	}
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		History:        transportHttp.NewHistoryHandler(historyStore),
		Stats:          transportHttp.NewStatsHandler(statsStore),
		Watch:          transportHttp.NewWatchHandler(registry, connManager),
		WebSocket:      wsHandler.HandleWebSocket,
	})

	return &http.Server{
		Addr:    ":" + cfg.WatchPort,
		Handler: router,
	}
}

func pruner(history *postgres.GameRepo) cleanup.HistoryPruner {
	if history == nil {
		return nil
	}
	return history
}
