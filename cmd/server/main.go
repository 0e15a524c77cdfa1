package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/byabasaija/matatu-engine/internal/api"
	"github.com/byabasaija/matatu-engine/internal/config"
	"github.com/byabasaija/matatu-engine/internal/database"
	"github.com/byabasaija/matatu-engine/internal/game"
	"github.com/byabasaija/matatu-engine/internal/migrations"
	"github.com/byabasaija/matatu-engine/internal/redis"
	"github.com/byabasaija/matatu-engine/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Every dispatched event is also appended to the durable audit trail.
	ws.History = database.NewHistoryStore(db)

	// Wire the match engine: Redis-backed persistence, Redis-fanout event
	// sink, and the background housekeeping sweep (disconnect-forfeit +
	// waiting-match expiry).
	sink := ws.NewRedisEventSink(rdb)
	store := redis.NewMatchStore(rdb, 0)
	matchCfg := game.DefaultMatchConfig()
	matchCfg.PreparationCountdown = cfg.PreparationCountdown()
	matchCfg.AutoPassDeadline = cfg.AutoPassDeadline()

	mgr := game.NewMatchManager(func() game.Shuffler {
		return game.NewShuffler(time.Now().UnixNano())
	}, sink, matchCfg, store)
	mgr.StartHousekeeping(cfg.HousekeepingInterval())
	defer mgr.StopHousekeeping()

	// Every API instance listens for match deltas published by any
	// instance, including itself, and fans them out to its own WebSocket
	// clients.
	ws.StartEventSubscriber(context.Background(), rdb)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, db, rdb, cfg, mgr)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting matatu-engine server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
