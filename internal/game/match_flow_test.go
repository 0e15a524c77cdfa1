package game

import "testing"

func TestPlayCardsRejectsOutOfTurn(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.players[0].Hand = []Card{{Suit: Hearts, Rank: Three}}
	m.players[1].Hand = []Card{{Suit: Hearts, Rank: Four}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("b", []Card{{Suit: Hearts, Rank: Four}}, nil)
	if res.Err == nil || res.Err.Kind != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", res.Err)
	}
}

func TestPlayCardsNormalCardAdvancesTurn(t *testing.T) {
	m, sink := newBareMatch("a", "b")
	card := Card{Suit: Hearts, Rank: Three}
	m.players[0].Hand = []Card{card, {Suit: Spades, Rank: King}}
	m.players[1].Hand = []Card{{Suit: Clubs, Rank: Nine}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{card}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if m.currentIndex != 1 {
		t.Errorf("expected turn to pass to seat 1, got %d", m.currentIndex)
	}
	if sink.last().Kind != EventStateUpdated {
		t.Errorf("expected trailing StateUpdated event, got %v", sink.last().Kind)
	}
}

func TestPlayCardsJackSkipsOneInThreePlayerMatch(t *testing.T) {
	m, _ := newBareMatch("a", "b", "c")
	jack := Card{Suit: Hearts, Rank: Jack}
	m.players[0].Hand = []Card{jack, {Suit: Spades, Rank: King}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{jack}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if m.currentIndex != 2 {
		t.Errorf("a single Jack in a 3-player match should skip seat 1 and land on seat 2, got %d", m.currentIndex)
	}
}

func TestPlayCardsPureJackStackKeepsTurnInTwoPlayerMatch(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	jacks := []Card{{Suit: Hearts, Rank: Jack}, {Suit: Spades, Rank: Jack}}
	m.players[0].Hand = append(append([]Card{}, jacks...), Card{Suit: Spades, Rank: King})
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", jacks, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if m.currentIndex != 0 {
		t.Errorf("a pure Jack stack should keep the turn in a 2-player match, got index %d", m.currentIndex)
	}
}

func TestPlayCardsQueenReversesDirection(t *testing.T) {
	m, _ := newBareMatch("a", "b", "c")
	queen := Card{Suit: Hearts, Rank: Queen}
	m.players[0].Hand = []Card{queen, {Suit: Spades, Rank: King}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{queen}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if m.direction != -1 {
		t.Errorf("a single Queen should flip direction, got %d", m.direction)
	}
}

func TestPlayCardsAceAddsToDrawStackAndPassesTurn(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	ace := Card{Suit: Hearts, Rank: Ace}
	m.players[0].Hand = []Card{ace, {Suit: Spades, Rank: King}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{ace}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if m.drawStack != 4 {
		t.Errorf("expected draw stack of 4, got %d", m.drawStack)
	}
	if m.currentIndex != 1 {
		t.Errorf("an Ace must always pass the turn, got index %d", m.currentIndex)
	}
}

func TestPlayCardsCounterMismatchedSuitRejected(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	ace := Card{Suit: Hearts, Rank: Ace}
	m.players[0].Hand = []Card{ace}
	m.discardPile = []Card{{Suit: Spades, Rank: Two}}
	m.drawStack = 2

	res := m.PlayCards("a", []Card{ace}, nil)
	if res.Err == nil || res.Err.Kind != ErrCounterRequired {
		t.Fatalf("expected ErrCounterRequired, got %v", res.Err)
	}
}

func TestPlayCardsEmptyHandWithActivePlayersRemainingAdvancesByDirectionNotSlicePosition(t *testing.T) {
	m, sink := newBareMatch("a", "b", "c")
	m.currentIndex = 2 // c's turn
	last := Card{Suit: Hearts, Rank: Three}
	m.players[2].Hand = []Card{last}
	m.players[0].Hand = []Card{{Suit: Clubs, Rank: Nine}}
	m.players[1].Hand = []Card{{Suit: Diamonds, Rank: Nine}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("c", []Card{last}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if len(m.activePlayers) != 2 {
		t.Fatalf("expected c to leave the rotation, got %d active players", len(m.activePlayers))
	}
	if got := m.activePlayers[m.currentIndex].ID; got != "a" {
		t.Errorf("expected turn to land on a via the direction-aware advance from c, got %q", got)
	}
	if sink.last().Kind != EventStateUpdated {
		t.Errorf("expected a plain StateUpdated since the round continues, got %v", sink.last().Kind)
	}
}

func TestPlayCardsEmptyHandWithActivePlayersRemainingHonorsReverseDirection(t *testing.T) {
	m, _ := newBareMatch("a", "b", "c")
	m.direction = -1
	m.currentIndex = 0 // a's turn, moving a->c->b
	last := Card{Suit: Hearts, Rank: Three}
	m.players[0].Hand = []Card{last}
	m.players[1].Hand = []Card{{Suit: Clubs, Rank: Nine}}
	m.players[2].Hand = []Card{{Suit: Diamonds, Rank: Nine}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{last}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}
	if got := m.activePlayers[m.currentIndex].ID; got != "c" {
		t.Errorf("expected turn to land on c per reverse direction, got %q", got)
	}
}

func TestPlayCardsEmptyHandEndsRoundAndFinishesGame(t *testing.T) {
	m, sink := newBareMatch("a", "b")
	last := Card{Suit: Hearts, Rank: Three}
	m.players[0].Hand = []Card{last}
	m.players[1].Hand = []Card{{Suit: Clubs, Rank: Nine}}
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}

	res := m.PlayCards("a", []Card{last}, nil)
	if res.Err != nil {
		t.Fatalf("expected legal play, got %v", res.Err)
	}

	ev := sink.last()
	if ev == nil || ev.Kind != EventGameFinished {
		t.Fatalf("expected the last event to be GameFinished, got %v", ev)
	}
	if ev.Winner != "a" {
		t.Errorf("expected player a to win, got %q", ev.Winner)
	}
	if m.phase != PhaseFinished {
		t.Errorf("expected match to reach PhaseFinished, got %v", m.phase)
	}
}
