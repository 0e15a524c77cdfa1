package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/byabasaija/matatu-engine/internal/api/handlers"
	"github.com/byabasaija/matatu-engine/internal/config"
	"github.com/byabasaija/matatu-engine/internal/database"
	"github.com/byabasaija/matatu-engine/internal/game"
	"github.com/byabasaija/matatu-engine/internal/middleware"
)

// SetupRoutes configures every HTTP and WebSocket route the tournament
// engine exposes (spec §6 "External interfaces").
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, mgr *game.MatchManager) {
	history := database.NewHistoryStore(db)
	// CRITICAL: No-cache middleware MUST be first in development
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] Aggressive no-cache headers enabled for all routes")
	}

	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		matches := v1.Group("/matches")
		{
			// createMatch (spec §6)
			matches.POST("", handlers.CreateMatch(mgr, cfg, history))
			// public state view
			matches.GET("/:matchId", handlers.GetMatchSnapshot(mgr))
			// private hand view, reconnect-token authenticated
			matches.GET("/:matchId/hand", handlers.GetHand(mgr, cfg))
			// durable audit trail (SPEC_FULL.md §6 "Match history log")
			matches.GET("/:matchId/history", handlers.GetMatchHistory(history))
			// command/event transport: startMatch, voteSkipPreparation,
			// playCards, drawCard, passTurn, votePlayAgain, resetForNewGame
			matches.GET("/:matchId/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleMatchWebSocket(mgr, cfg))
		}
	}
}
