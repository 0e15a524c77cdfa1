package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/byabasaija/matatu-engine/internal/game"
)

const matchKeyPrefix = "match:"

// MatchStore implements game.Persister against go-redis, keyed on matchID
// (spec §9 "expose an injectable Match store interface so tests can use an
// in-memory store and production can swap in a persistent one"). Values are
// plain JSON, same shape the teacher's saveGameToRedis/loadGameFromRedis
// pair wrote.
type MatchStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchStore wires a Persister. ttl bounds how long a finished or
// abandoned match's state lingers in Redis before eviction; 0 disables
// expiry.
func NewMatchStore(client *redis.Client, ttl time.Duration) *MatchStore {
	return &MatchStore{client: client, ttl: ttl}
}

func (s *MatchStore) Save(state game.MatchState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), matchKeyPrefix+state.ID, data, s.ttl).Err()
}

func (s *MatchStore) Load(matchID string) (game.MatchState, bool, error) {
	data, err := s.client.Get(context.Background(), matchKeyPrefix+matchID).Bytes()
	if err == redis.Nil {
		return game.MatchState{}, false, nil
	}
	if err != nil {
		return game.MatchState{}, false, err
	}
	var state game.MatchState
	if err := json.Unmarshal(data, &state); err != nil {
		return game.MatchState{}, false, err
	}
	return state, true, nil
}

func (s *MatchStore) Delete(matchID string) error {
	return s.client.Del(context.Background(), matchKeyPrefix+matchID).Err()
}
