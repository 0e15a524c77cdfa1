package database

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/byabasaija/matatu-engine/internal/models"
)

// HistoryStore persists the durable match header and its append-only event
// trail (SPEC_FULL.md §6 "Match history log"), replacing the teacher's
// escrow-ledger writes with a rules-dispute audit log. It is a secondary,
// best-effort record: the live engine's state lives in internal/redis, not
// here, so a write failure here is logged and swallowed by callers rather
// than surfaced to the player.
type HistoryStore struct {
	db *sqlx.DB
}

func NewHistoryStore(db *sqlx.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// RecordMatchCreated inserts the durable header row for a newly seated
// match.
func (h *HistoryStore) RecordMatchCreated(matchID, creatorID string, playerCount int) error {
	_, err := h.db.Exec(
		`INSERT INTO matches (match_id, creator_id, player_count, status, created_at)
		 VALUES ($1, $2, $3, 'waiting', $4)
		 ON CONFLICT (match_id) DO NOTHING`,
		matchID, creatorID, playerCount, time.Now(),
	)
	return err
}

// RecordMatchFinished marks a match's header row finished with its winner.
func (h *HistoryStore) RecordMatchFinished(matchID, winnerID string) error {
	_, err := h.db.Exec(
		`UPDATE matches SET status = 'finished', winner_id = $2, finished_at = $3 WHERE match_id = $1`,
		matchID, sql.NullString{String: winnerID, Valid: winnerID != ""}, time.Now(),
	)
	return err
}

// RecordEvent appends one row to the match's audit trail.
func (h *HistoryStore) RecordEvent(matchID string, roundNumber int, playerID, command, detail string) error {
	_, err := h.db.Exec(
		`INSERT INTO match_events (match_id, round_number, player_id, command, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		matchID, roundNumber, playerID, command, nullIfEmpty(detail), time.Now(),
	)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// GetMatchRecord loads a match's durable header row, for rules-dispute
// lookups against a match that may have long since left the live engine's
// Redis-backed state.
func (h *HistoryStore) GetMatchRecord(matchID string) (models.MatchRecord, error) {
	var rec models.MatchRecord
	err := h.db.Get(&rec, `SELECT * FROM matches WHERE match_id = $1`, matchID)
	return rec, err
}

// ListMatchEvents returns a match's full audit trail in chronological order.
func (h *HistoryStore) ListMatchEvents(matchID string) ([]models.MatchEvent, error) {
	events := []models.MatchEvent{}
	err := h.db.Select(&events,
		`SELECT * FROM match_events WHERE match_id = $1 ORDER BY created_at ASC`, matchID)
	return events, err
}
