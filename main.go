package main

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mrsonam/impostor/game"
	"github.com/mrsonam/impostor/migrations"
	"github.com/mrsonam/impostor/notify"
	"github.com/mrsonam/impostor/shared/logger"
	"github.com/mrsonam/impostor/storage"
	"github.com/mrsonam/impostor/words"
)

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func run(ctx context.Context, cfg *Config) error {
	logger.Setup(cfg.verbose)

	var repo game.RoomRepo
	if cfg.dev {
		log.Warn().Msg("running with the in-memory store, rooms will not survive restarts")
		repo = storage.NewMemoryRoomStore()
	} else {
		if err := migrations.Migrate(cfg.postgresURL); err != nil {
			return err
		}
		store, err := storage.NewPostgresRoomStore(ctx, cfg.postgresURL)
		if err != nil {
			return err
		}
		defer store.Close()
		repo = store
	}

	hub := notify.NewHub()
	engine := game.NewService(repo, words.Pool)
	handler := game.NewHandler(engine, hub, hub, game.RandomSelector, cfg.publicURL)

	go sweepLoop(ctx, engine, cfg.roomIdle, cfg.sweepInterval)

	r := createServer(cfg.allowedOrigins)

	{
		room := r.Group("/api/room")
		room.POST("/create", handler.CreateRoomHandler)
		room.POST("/join", handler.JoinRoomHandler)
		room.POST("/leave", handler.LeaveRoomHandler)
		room.POST("/kick", handler.KickPlayerHandler)
		room.POST("/toggle-hints", handler.ToggleHintsHandler)
		room.POST("/loaded", handler.RoomLoadedHandler)
		room.GET("/state", handler.RoomStateHandler)
		room.GET("/word-stats", handler.WordStatsHandler)
		room.GET("/qr", handler.QRHandler)
	}
	{
		g := r.Group("/api/game")
		g.POST("/start", handler.StartGameHandler)
		g.POST("/new", handler.NewGameHandler)
		g.POST("/clue", handler.SubmitClueHandler)
		g.POST("/end", handler.EndGameHandler)
		g.GET("/private-view", handler.PrivateViewHandler)
	}
	r.GET("/ws/:roomid", handler.SubscribeHandler)

	addr := fmt.Sprintf("%s:%d", cfg.bind, cfg.port)
	log.Info().Str("addr", addr).Msg("listening")
	return r.Run(addr)
}

func createServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func sweepLoop(ctx context.Context, engine *game.Service, maxIdle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := engine.CleanupInactiveRooms(ctx, maxIdle)
			if err != nil {
				log.Error().Err(err).Msg("inactivity sweep failed")
				continue
			}
			if deleted > 0 {
				log.Info().Int("deleted", deleted).Msg("swept inactive rooms")
			}
		}
	}
}
