package game

import "time"

// captureSink records every event a Match emits, for assertions on event
// ordering and payload (grounded on the teacher's mockBroadcaster idiom from
// jason-s-yu-cambia-service's game_test.go).
type captureSink struct {
	events []Event
}

func (s *captureSink) OnEvent(ev Event) {
	s.events = append(s.events, ev)
}

func (s *captureSink) last() *Event {
	if len(s.events) == 0 {
		return nil
	}
	return &s.events[len(s.events)-1]
}

// newBareMatch builds a Match already in the playing phase with the given
// seats, skipping NewMatch's seat-count check and startRoundLocked's
// dealing so tests can drop players straight into a hand-crafted state.
func newBareMatch(playerIDs ...string) (*Match, *captureSink) {
	sink := &captureSink{}
	m := &Match{
		id:             "test-match",
		creatorID:      playerIDs[0],
		shuffler:       NewShuffler(1),
		sink:           sink,
		cfg:            DefaultMatchConfig(),
		phase:          PhasePlaying,
		direction:      1,
		roundNumber:    1,
		drewThisTurn:   make(map[string]bool),
		prepVotes:      make(map[string]bool),
		playAgainVotes: make(map[string]bool),
		autoPassTimers: make(map[string]*time.Timer),
		createdAt:      time.Now(),
		drawPile:       NewDeck(),
	}
	for _, id := range playerIDs {
		p := newPlayer(id, id)
		m.players = append(m.players, p)
		m.activePlayers = append(m.activePlayers, p)
	}
	return m, sink
}
