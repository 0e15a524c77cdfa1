package game

import "time"

// MatchState is the exported, JSON-friendly projection of a Match's private
// fields (spec §9 "Global registry": "expose an injectable Match store
// interface so tests can use an in-memory store and production can swap in
// a persistent one"). internal/redis serializes this, never the Match
// itself, since Match carries a mutex and timer handles that cannot
// round-trip.
type MatchState struct {
	ID            string   `json:"id"`
	CreatorID     string   `json:"creator_id"`
	Players       []PlayerState `json:"players"`
	ActivePlayerIDs []string `json:"active_player_ids"`
	DrawPile      []Card   `json:"draw_pile"`
	DiscardPile   []Card   `json:"discard_pile"`
	CurrentIndex  int      `json:"current_index"`
	Direction     int      `json:"direction"`
	DeclaredSuit  *Suit    `json:"declared_suit,omitempty"`
	DrawStack     int      `json:"draw_stack"`
	Phase         Phase    `json:"phase"`
	RoundNumber   int      `json:"round_number"`
	PendingPassPlayerID *string `json:"pending_pass_player_id,omitempty"`
	DrewThisTurn  []string `json:"drew_this_turn"`
	PrepVotes     []string `json:"prep_votes"`
	PlayAgainVotes []string `json:"play_again_votes"`
}

// PlayerState is the serializable projection of a Player.
type PlayerState struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Hand        []Card `json:"hand"`
	Safe        bool   `json:"safe"`
	Eliminated  bool   `json:"eliminated"`
	Connected   bool   `json:"connected"`
}

// ExportState snapshots everything needed to rehydrate this match in
// another process (SPEC_FULL.md §6 "Redis-backed reconnect"). Timers are
// not part of the export; RestoreMatch re-arms whatever the restored phase
// requires.
func (m *Match) ExportState() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := MatchState{
		ID:           m.id,
		CreatorID:    m.creatorID,
		CurrentIndex: m.currentIndex,
		Direction:    m.direction,
		DeclaredSuit: m.declaredSuit,
		DrawStack:    m.drawStack,
		Phase:        m.phase,
		RoundNumber:  m.roundNumber,
		PendingPassPlayerID: m.pendingPassPlayerID,
	}
	if m.drawPile != nil {
		st.DrawPile = append([]Card(nil), m.drawPile.Cards...)
	}
	st.DiscardPile = append([]Card(nil), m.discardPile...)
	for _, p := range m.players {
		st.Players = append(st.Players, PlayerState{
			ID: p.ID, Name: p.Name, Hand: append([]Card(nil), p.Hand...),
			Safe: p.Safe, Eliminated: p.Eliminated, Connected: p.Connected,
		})
	}
	for _, p := range m.activePlayers {
		st.ActivePlayerIDs = append(st.ActivePlayerIDs, p.ID)
	}
	for id := range m.drewThisTurn {
		st.DrewThisTurn = append(st.DrewThisTurn, id)
	}
	for id := range m.prepVotes {
		st.PrepVotes = append(st.PrepVotes, id)
	}
	for id := range m.playAgainVotes {
		st.PlayAgainVotes = append(st.PlayAgainVotes, id)
	}
	return st
}

// RestoreMatch rebuilds a live Match from a MatchState, ready to resume
// serving commands (preparation/auto-pass timers re-arm only where the
// restored state still requires them; a restored "preparation" phase
// re-arms a fresh full-length countdown rather than trying to recover
// elapsed time, which is acceptable since reconnect is the rare path).
func RestoreMatch(st MatchState, shuffler Shuffler, sink EventSink, cfg MatchConfig) *Match {
	m := &Match{
		id:             st.ID,
		creatorID:      st.CreatorID,
		shuffler:       shuffler,
		sink:           sink,
		cfg:            cfg,
		currentIndex:   st.CurrentIndex,
		direction:      st.Direction,
		declaredSuit:   st.DeclaredSuit,
		drawStack:      st.DrawStack,
		phase:          st.Phase,
		roundNumber:    st.RoundNumber,
		pendingPassPlayerID: st.PendingPassPlayerID,
		drewThisTurn:   make(map[string]bool),
		prepVotes:      make(map[string]bool),
		playAgainVotes: make(map[string]bool),
		autoPassTimers: make(map[string]*time.Timer),
		drawPile:       &Deck{Cards: append([]Card(nil), st.DrawPile...)},
		discardPile:    append([]Card(nil), st.DiscardPile...),
	}
	byID := make(map[string]*Player, len(st.Players))
	for _, ps := range st.Players {
		p := &Player{ID: ps.ID, Name: ps.Name, Hand: append([]Card(nil), ps.Hand...),
			Safe: ps.Safe, Eliminated: ps.Eliminated, Connected: ps.Connected}
		m.players = append(m.players, p)
		byID[p.ID] = p
	}
	for _, id := range st.ActivePlayerIDs {
		if p, ok := byID[id]; ok {
			m.activePlayers = append(m.activePlayers, p)
		}
	}
	for _, id := range st.DrewThisTurn {
		m.drewThisTurn[id] = true
	}
	for _, id := range st.PrepVotes {
		m.prepVotes[id] = true
	}
	for _, id := range st.PlayAgainVotes {
		m.playAgainVotes[id] = true
	}
	if m.phase == PhasePreparation {
		m.armPreparationTimer()
	}
	if m.phase == PhasePlaying && m.pendingPassPlayerID != nil {
		m.armAutoPassTimerLocked(*m.pendingPassPlayerID)
	}
	return m
}
