package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/byabasaija/matatu-engine/internal/database"
	"github.com/byabasaija/matatu-engine/internal/game"
)

// History records every dispatched event to the durable audit trail. It is
// nil in tests and in any deployment without a configured database; writes
// are skipped rather than failing the dispatch.
var History *database.HistoryStore

const matchEventsChannel = "match_events"

// RedisEventSink implements game.EventSink by publishing every engine event
// to Redis instead of calling back into the Hub directly, so a fleet of API
// instances all react to a match's deltas regardless of which instance owns
// it (grounded on the teacher's idle_events/game_events pub/sub idiom).
type RedisEventSink struct {
	rdb *redis.Client
}

func NewRedisEventSink(rdb *redis.Client) *RedisEventSink {
	return &RedisEventSink{rdb: rdb}
}

func (s *RedisEventSink) OnEvent(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[WS] failed to marshal event: %v", err)
		return
	}
	if err := s.rdb.Publish(context.Background(), matchEventsChannel, data).Err(); err != nil {
		log.Printf("[WS] failed to publish event: %v", err)
	}
}

// StartEventSubscriber listens for engine events published on
// matchEventsChannel (by this instance's own RedisEventSink or any other)
// and fans them out to whatever clients are connected to this instance's
// Hub.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, matchEventsChannel)
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] match_events subscriber started")
		for msg := range ch {
			var ev game.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[WS] invalid event payload: %v", err)
				continue
			}
			dispatchEvent(ev)
		}
	}()
}

// dispatchEvent turns an engine event into the wire message its room's
// clients expect.
func dispatchEvent(ev game.Event) {
	payload := map[string]interface{}{
		"type":    string(ev.Kind),
		"matchId": ev.MatchID,
		"snapshot": ev.Snapshot,
	}
	switch ev.Kind {
	case game.EventRoundEnded:
		payload["eliminated"] = ev.Eliminated
	case game.EventGameFinished:
		payload["winner"] = ev.Winner
	case game.EventPreparationEnded:
		payload["reason"] = ev.Reason
	case game.EventPlayerForfeited:
		payload["playerId"] = ev.PlayerID
	}
	GameHub.BroadcastToMatch(ev.MatchID, payload)
	recordHistory(ev)
}

// recordHistory appends the event to the durable audit trail (SPEC_FULL.md
// §6 "Match history log"). Best-effort: a failure here never affects the
// live match.
func recordHistory(ev game.Event) {
	if History == nil {
		return
	}
	playerID := ev.PlayerID
	detail := ""
	switch ev.Kind {
	case game.EventGameFinished:
		playerID = ev.Winner
		if err := History.RecordMatchFinished(ev.MatchID, ev.Winner); err != nil {
			log.Printf("[WS] failed to record match finish: %v", err)
		}
	case game.EventRoundEnded:
		if data, err := json.Marshal(ev.Eliminated); err == nil {
			detail = string(data)
		}
	}
	if err := History.RecordEvent(ev.MatchID, ev.Snapshot.RoundNumber, playerID, string(ev.Kind), detail); err != nil {
		log.Printf("[WS] failed to record match event: %v", err)
	}
}
