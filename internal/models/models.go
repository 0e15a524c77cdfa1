package models

import (
	"database/sql"
	"time"
)

// Player is the durable record behind a reconnect token; the live hand and
// turn state belong to game.Player and never touches the database.
type Player struct {
	ID          int          `db:"id" json:"id"`
	PlayerID    string       `db:"player_id" json:"player_id"`
	DisplayName string       `db:"display_name" json:"display_name"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	LastActive  sql.NullTime `db:"last_active" json:"last_active,omitempty"`
}

// MatchRecord is the durable header row for a match, created on
// createMatch and updated once, when the match finishes (SPEC_FULL.md §6
// "Match history log").
type MatchRecord struct {
	ID          int          `db:"id" json:"id"`
	MatchID     string       `db:"match_id" json:"match_id"`
	CreatorID   string       `db:"creator_id" json:"creator_id"`
	PlayerCount int          `db:"player_count" json:"player_count"`
	Status      string       `db:"status" json:"status"`
	WinnerID    sql.NullString `db:"winner_id" json:"winner_id,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	FinishedAt  sql.NullTime `db:"finished_at" json:"finished_at,omitempty"`
}

// MatchEvent is one row of the append-only audit trail replacing the
// teacher's escrow ledger: every mutating command's resulting delta,
// recorded for rules-dispute debugging (not spectator replay, not
// persistent statistics — both remain out of scope).
type MatchEvent struct {
	ID         int       `db:"id" json:"id"`
	MatchID    string    `db:"match_id" json:"match_id"`
	RoundNumber int      `db:"round_number" json:"round_number"`
	PlayerID   string    `db:"player_id" json:"player_id"`
	Command    string    `db:"command" json:"command"`
	Detail     *string   `db:"detail" json:"detail,omitempty"` // JSON-encoded command-specific payload
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
