package game

import (
	"sync"
	"time"
)

// MatchConfig carries the tunables spec.md leaves as constants-in-prose
// (30s preparation countdown, 5s auto-pass) as injected values instead, so
// internal/config can surface them to operators (SPEC_FULL.md §2 config).
type MatchConfig struct {
	PreparationCountdown time.Duration
	AutoPassDeadline     time.Duration
	HandSize             int
}

// DefaultMatchConfig mirrors the literal durations named in spec §4.4/§4.6.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		PreparationCountdown: 30 * time.Second,
		AutoPassDeadline:     5 * time.Second,
		HandSize:             8,
	}
}

// Match is the aggregate of spec §3. All public methods take mu before
// touching state and release it before returning, matching the teacher's
// GameState.mu idiom — this is the mutex side of spec §5's "actor mailbox
// or match-wide mutex" choice (decided in DESIGN.md).
type Match struct {
	mu sync.Mutex

	id          string
	creatorID   string
	players     []*Player // original seating, stable for the life of the match
	activePlayers []*Player // current-round rotation; shrinks as players go safe

	drawPile    *Deck
	discardPile []Card

	currentIndex int
	direction    int
	declaredSuit *Suit
	drawStack    int

	phase       Phase
	roundNumber int

	pendingPassPlayerID *string
	drewThisTurn        map[string]bool

	prepVotes      map[string]bool
	playAgainVotes map[string]bool

	shuffler Shuffler
	sink     EventSink
	cfg      MatchConfig

	prepTimer      *time.Timer
	autoPassTimers map[string]*time.Timer

	createdAt time.Time
}

// NewMatch seats 2-4 players in a fresh match in the waiting phase (spec §3
// "Lifecycle"). The first seat is the distinguished creator.
func NewMatch(id string, seats []SeatRequest, shuffler Shuffler, sink EventSink, cfg MatchConfig) (*Match, *EngineError) {
	if len(seats) < 2 || len(seats) > 4 {
		return nil, newErr(ErrInsufficientPlayers, "a match needs between 2 and 4 players")
	}
	m := &Match{
		id:             id,
		creatorID:      seats[0].PlayerID,
		shuffler:       shuffler,
		sink:           sink,
		cfg:            cfg,
		phase:          PhaseWaiting,
		direction:      1,
		drewThisTurn:   make(map[string]bool),
		prepVotes:      make(map[string]bool),
		playAgainVotes: make(map[string]bool),
		autoPassTimers: make(map[string]*time.Timer),
		createdAt:      time.Now(),
	}
	for _, s := range seats {
		m.players = append(m.players, newPlayer(s.PlayerID, s.Name))
	}
	return m, nil
}

func (m *Match) ID() string { return m.id }

// findPlayer looks a player up by id across the original seating (players
// carry no back-reference per spec §9, so every lookup routes here).
func (m *Match) findPlayer(id string) *Player {
	for _, p := range m.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Match) activeIndexOf(id string) int {
	for i, p := range m.activePlayers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *Match) currentPlayer() *Player {
	if len(m.activePlayers) == 0 || m.currentIndex < 0 || m.currentIndex >= len(m.activePlayers) {
		return nil
	}
	return m.activePlayers[m.currentIndex]
}

func (m *Match) topDiscard() Card {
	return m.discardPile[len(m.discardPile)-1]
}

func (m *Match) effectiveTopSuit() Suit {
	if m.declaredSuit != nil {
		return *m.declaredSuit
	}
	return m.topDiscard().Suit
}

func (m *Match) connectedCount() int {
	n := 0
	for _, p := range m.players {
		if p.Connected {
			n++
		}
	}
	return n
}

// emit publishes an event carrying a fresh snapshot. Called with mu held;
// sinks must not call back into the Match synchronously.
func (m *Match) emit(kind EventKind, mutate func(*Event)) {
	ev := Event{Kind: kind, MatchID: m.id, Snapshot: m.snapshotLocked()}
	if mutate != nil {
		mutate(&ev)
	}
	m.sink.OnEvent(ev)
}

// Snapshot returns the current egress view (spec §6).
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() Snapshot {
	snap := Snapshot{
		MatchID:     m.id,
		Phase:       m.phase,
		RoundNumber: m.roundNumber,
		Direction:   m.direction,
		DrawStack:   m.drawStack,
	}
	if len(m.discardPile) > 0 {
		snap.TopDiscard = m.topDiscard().String()
	}
	if m.declaredSuit != nil {
		s := *m.declaredSuit
		snap.DeclaredSuit = &s
	}
	if m.drawPile != nil {
		snap.DrawPileSize = m.drawPile.Remaining()
	}
	snap.DiscardPileSize = len(m.discardPile)
	if m.pendingPassPlayerID != nil {
		id := *m.pendingPassPlayerID
		snap.PendingPassID = &id
	}
	for id := range m.drewThisTurn {
		snap.DrewThisTurn = append(snap.DrewThisTurn, id)
	}

	cur := m.currentPlayer()
	if cur != nil {
		snap.CurrentPlayerID = cur.ID
		snap.CurrentPlayerName = cur.Name
	}

	for _, p := range m.players {
		snap.Players = append(snap.Players, PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			HandSize:     len(p.Hand),
			IsSafe:       p.Safe,
			IsEliminated: p.Eliminated,
			IsConnected:  p.Connected,
			IsCurrent:    cur != nil && cur.ID == p.ID,
		})
	}

	if m.phase == PhasePreparation {
		pv := &PreparationView{
			Votes:          len(m.prepVotes),
			TotalConnected: m.connectedCount(),
		}
		for id := range m.prepVotes {
			pv.VotedPlayerIDs = append(pv.VotedPlayerIDs, id)
		}
		pv.CanSkip = pv.Votes > 0 && pv.Votes >= pv.TotalConnected
		snap.Preparation = pv
	}

	return snap
}

// GetHand returns a player's own cards (spec §6 "Hand view"). Never call
// this for a player other than the requester at the transport boundary.
func (m *Match) GetHand(playerID string) (HandView, *EngineError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return HandView{}, newErr(ErrPlayerState, "unknown player")
	}
	cards := make([]Card, len(p.Hand))
	copy(cards, p.Hand)
	return HandView{PlayerID: playerID, Cards: cards}, nil
}

// MarkConnected flips a player's liveness flag (spec §5 "Cancellation
// semantics"). No other engine state changes as a result.
func (m *Match) MarkConnected(playerID string, connected bool) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.findPlayer(playerID)
	if p == nil {
		return errResult(m.snapshotLocked(), newErr(ErrPlayerState, "unknown player"))
	}
	p.Connected = connected
	if connected {
		p.disconnectedAt = nil
	} else {
		now := time.Now()
		p.disconnectedAt = &now
	}
	m.emit(EventStateUpdated, nil)
	return okResult(m.snapshotLocked())
}
