package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/byabasaija/matatu-engine/internal/auth"
	"github.com/byabasaija/matatu-engine/internal/config"
	"github.com/byabasaija/matatu-engine/internal/database"
	"github.com/byabasaija/matatu-engine/internal/game"
)

type seatRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type createMatchRequest struct {
	Players []seatRequest `json:"players" binding:"required,min=2,max=4"`
}

// CreateMatch seats a new match and mints each seat a reconnect token (spec
// §6 createMatch).
func CreateMatch(mgr *game.MatchManager, cfg *config.Config, history *database.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		seats := make([]game.SeatRequest, len(req.Players))
		for i, p := range req.Players {
			seats[i] = game.SeatRequest{PlayerID: p.PlayerID, Name: p.Name}
		}

		m, err := mgr.CreateMatch(seats)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mgr.Persist(m)
		if history != nil {
			if err := history.RecordMatchCreated(m.ID(), seats[0].PlayerID, len(seats)); err != nil {
				log.Printf("[MATCH] failed to record match history: %v", err)
			}
		}

		ttl := time.Duration(cfg.ReconnectTokenTTLMin) * time.Minute
		tokens := make(map[string]string, len(seats))
		for _, s := range seats {
			tok, err := auth.IssueReconnectToken(cfg.JWTSecret, m.ID(), s.PlayerID, ttl)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reconnect token"})
				return
			}
			tokens[s.PlayerID] = tok
		}

		c.JSON(http.StatusCreated, gin.H{
			"matchId":  m.ID(),
			"tokens":   tokens,
			"snapshot": m.Snapshot(),
		})
	}
}

// GetMatchSnapshot returns the public state view spec §6 calls for.
func GetMatchSnapshot(mgr *game.MatchManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := mgr.Get(c.Param("matchId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		c.JSON(http.StatusOK, m.Snapshot())
	}
}

// GetMatchHistory returns a match's durable header and its append-only
// audit trail (SPEC_FULL.md §6 "Match history log"), for rules-dispute
// lookups independent of whether the match is still live in the engine.
func GetMatchHistory(history *database.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if history == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
			return
		}
		matchID := c.Param("matchId")
		record, err := history.GetMatchRecord(matchID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "match history not found"})
			return
		}
		events, err := history.ListMatchEvents(matchID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match events"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": record, "events": events})
	}
}

// GetHand returns the requesting player's own cards, authenticated by
// reconnect token so one player can never read another's hand (spec §6
// "Hand view").
func GetHand(mgr *game.MatchManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Param("matchId")
		token := c.Query("token")
		tokMatchID, playerID, err := auth.ParseReconnectToken(cfg.JWTSecret, token)
		if err != nil || tokMatchID != matchID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reconnect token"})
			return
		}
		m, ok := mgr.Get(matchID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		hand, gerr := m.GetHand(playerID)
		if gerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gerr.Error()})
			return
		}
		c.JSON(http.StatusOK, hand)
	}
}
