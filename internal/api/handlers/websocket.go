package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/byabasaija/matatu-engine/internal/config"
	"github.com/byabasaija/matatu-engine/internal/game"
	"github.com/byabasaija/matatu-engine/internal/ws"
)

// HandleMatchWebSocket upgrades a client into a match's live command/event
// channel.
func HandleMatchWebSocket(mgr *game.MatchManager, cfg *config.Config) gin.HandlerFunc {
	return ws.HandleWebSocket(mgr, cfg)
}
