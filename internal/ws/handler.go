package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/byabasaija/matatu-engine/internal/auth"
	"github.com/byabasaija/matatu-engine/internal/config"
	"github.com/byabasaija/matatu-engine/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer before upgrade
	},
}

// Client is one player's live WebSocket connection into a match room.
type Client struct {
	conn     *websocket.Conn
	playerID string
	matchID  string
	send     chan []byte
}

// Hub fans match deltas out to every connected client in a room, keyed on
// matchID the same way the teacher's Hub keyed on gameID.
type Hub struct {
	clients    map[string]*Client            // playerID -> Client
	matchRooms map[string]map[string]*Client // matchID -> playerID -> Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		matchRooms: make(map[string]map[string]*Client),
	}
}

// GameHub is the process-wide hub. The WebSocket upgrade handler and the
// Redis event subscriber in this package both use it directly.
var GameHub = NewHub()

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.playerID] = c
	room, ok := h.matchRooms[c.matchID]
	if !ok {
		room = make(map[string]*Client)
		h.matchRooms[c.matchID] = room
	}
	room[c.playerID] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.playerID]; ok && cur == c {
		delete(h.clients, c.playerID)
	}
	if room, ok := h.matchRooms[c.matchID]; ok {
		if cur, ok := room[c.playerID]; ok && cur == c {
			delete(room, c.playerID)
		}
		if len(room) == 0 {
			delete(h.matchRooms, c.matchID)
		}
	}
	close(c.send)
}

// BroadcastToMatch sends a message to every connected player in a match.
func (h *Hub) BroadcastToMatch(matchID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, exists := h.matchRooms[matchID]
	if !exists {
		return
	}
	for _, client := range room {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] client send buffer full for player %s in match %s, dropping message", client.playerID, matchID)
		}
	}
}

// SendToPlayer sends a message to a specific player, wherever their room is.
func (h *Hub) SendToPlayer(playerID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}
	h.mu.RLock()
	client, exists := h.clients[playerID]
	h.mu.RUnlock()
	if !exists {
		log.Printf("[WS] SendToPlayer no client for player %s", playerID)
		return
	}
	select {
	case client.send <- data:
	default:
		log.Printf("[WS] SendToPlayer dropped message for player %s (buffer full)", playerID)
	}
}

// WSMessage is the envelope every inbound command and outbound event uses.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type playCardsPayload struct {
	Cards        []game.Card `json:"cards"`
	DeclaredSuit *game.Suit  `json:"declaredSuit,omitempty"`
}

func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	select {
	case c.send <- data:
	default:
	}
}

// writePump writes queued messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for player %s: %v", c.playerID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for player %s: %v", c.playerID, err)
				return
			}
		}
	}
}

// readPump dispatches inbound commands to the match engine, one WSMessage at
// a time, persisting the match after every command (the write-through point
// spec's delta-on-every-command contract implies).
func (c *Client) readPump(mgr *game.MatchManager) {
	defer func() {
		GameHub.unregister(c)
		if m, ok := mgr.Get(c.matchID); ok {
			m.MarkConnected(c.playerID, false)
			mgr.Persist(m)
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}

		m, ok := mgr.Get(c.matchID)
		if !ok {
			c.sendError("match not found")
			continue
		}

		var res game.Result
		switch msg.Type {
		case "startMatch":
			res = m.StartMatch()
		case "voteSkipPreparation":
			res = m.VoteSkipPreparation(c.playerID)
		case "unvoteSkipPreparation":
			res = m.UnvoteSkipPreparation(c.playerID)
		case "playCards":
			var p playCardsPayload
			if err := json.Unmarshal(msg.Data, &p); err != nil {
				c.sendError("malformed playCards payload")
				continue
			}
			res = m.PlayCards(c.playerID, p.Cards, p.DeclaredSuit)
		case "drawCard":
			res = m.DrawCard(c.playerID)
		case "passTurn":
			res = m.PassTurn(c.playerID)
		case "votePlayAgain":
			res = m.VotePlayAgain(c.playerID)
		case "unvotePlayAgain":
			res = m.UnvotePlayAgain(c.playerID)
		case "resetForNewGame":
			res = m.ResetForNewGame(c.playerID)
		default:
			c.sendError("unknown command: " + msg.Type)
			continue
		}

		if res.Err != nil {
			c.sendError(res.Err.Error())
		}
		mgr.Persist(m)
	}
}

// HandleWebSocket upgrades a client into a match's live command/event
// channel. The reconnect token carries both matchID and playerID, so a
// rejoin never trusts an unauthenticated query parameter for identity.
func HandleWebSocket(mgr *game.MatchManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		matchID, playerID, err := auth.ParseReconnectToken(cfg.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reconnect token"})
			return
		}

		m, ok := mgr.Get(matchID)
		if !ok {
			m, ok = mgr.Rehydrate(matchID)
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		if res := m.MarkConnected(playerID, true); res.Err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": res.Err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade failed: %v", err)
			return
		}

		client := &Client{conn: conn, playerID: playerID, matchID: matchID, send: make(chan []byte, 16)}
		GameHub.register(client)
		mgr.Persist(m)

		go client.writePump()
		client.readPump(mgr)
	}
}
