package game

import "testing"

func TestDrawCardWithActivePenaltyDischargesWholeStackAndPassesTurn(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.discardPile = []Card{{Suit: Hearts, Rank: Two}}
	m.drawStack = 2

	res := m.DrawCard("a")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if m.drawStack != 0 {
		t.Errorf("expected the draw stack to clear, got %d", m.drawStack)
	}
	if len(m.players[0].Hand) != 2 {
		t.Errorf("expected the player to draw the full penalty, got %d cards", len(m.players[0].Hand))
	}
	if m.currentIndex != 1 {
		t.Errorf("expected the turn to pass to seat 1, got %d", m.currentIndex)
	}
}

func TestDrawCardVoluntaryWithPlayableCardArmsPendingPass(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	// Stack the draw pile so the voluntary draw yields a card matching the
	// discard suit, leaving the player with something playable.
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}
	m.drawPile.Cards = []Card{{Suit: Hearts, Rank: Six}}

	res := m.DrawCard("a")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if m.pendingPassPlayerID == nil || *m.pendingPassPlayerID != "a" {
		t.Fatal("expected a pending pass to be armed for the drawing player")
	}
	if m.currentIndex != 0 {
		t.Error("turn should not advance while a pending pass is outstanding")
	}
}

func TestDrawCardVoluntaryWithNothingPlayableAdvancesTurn(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}
	m.drawPile.Cards = []Card{{Suit: Clubs, Rank: Nine}}

	res := m.DrawCard("a")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if m.pendingPassPlayerID != nil {
		t.Error("expected no pending pass when the drawn card is unplayable")
	}
	if m.currentIndex != 1 {
		t.Errorf("expected the turn to pass immediately, got index %d", m.currentIndex)
	}
}

func TestDrawCardRejectsSecondVoluntaryDrawSameTurn(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.discardPile = []Card{{Suit: Hearts, Rank: Five}}
	m.drawPile.Cards = []Card{{Suit: Clubs, Rank: Nine}, {Suit: Diamonds, Rank: Ten}}
	m.drewThisTurn["a"] = true

	res := m.DrawCard("a")
	if res.Err == nil || res.Err.Kind != ErrAlreadyDrew {
		t.Fatalf("expected ErrAlreadyDrew, got %v", res.Err)
	}
}

func TestPassTurnRejectsWithoutPendingPass(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	res := m.PassTurn("a")
	if res.Err == nil || res.Err.Kind != ErrNoPendingPass {
		t.Fatalf("expected ErrNoPendingPass, got %v", res.Err)
	}
}

func TestPassTurnRejectsSecondPassOncePassed(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	id := "a"
	m.pendingPassPlayerID = &id

	res := m.PassTurn("a")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if m.currentIndex != 1 {
		t.Fatalf("expected turn to advance to seat 1, got %d", m.currentIndex)
	}

	// The pending pass is already cleared; passing again must be rejected
	// rather than silently re-advancing the turn a second time.
	res = m.PassTurn("a")
	if res.Err == nil || res.Err.Kind != ErrNoPendingPass {
		t.Fatalf("expected a second PassTurn to be rejected, got %v", res.Err)
	}
	if m.currentIndex != 1 {
		t.Errorf("turn must not advance twice, still expected index 1, got %d", m.currentIndex)
	}
}

func TestDrawNCardsReshufflesDiscardPileWhenDrawPileExhausted(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	top := Card{Suit: Hearts, Rank: King}
	m.drawPile.Cards = nil
	m.discardPile = []Card{
		{Suit: Spades, Rank: Two}, {Suit: Clubs, Rank: Three}, top,
	}

	drawn := m.drawNCardsLocked(2)
	if len(drawn) != 2 {
		t.Fatalf("expected 2 cards drawn via reshuffle, got %d", len(drawn))
	}
	if len(m.discardPile) != 1 || m.discardPile[0] != top {
		t.Fatalf("expected the discard pile to be reduced to just its top card, got %v", m.discardPile)
	}
}

func TestDrawNCardsInjectsFreshDeckWhenBothPilesExhausted(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.drawPile.Cards = nil
	m.discardPile = []Card{{Suit: Hearts, Rank: King}} // only the top card, nothing to reshuffle

	drawn := m.drawNCardsLocked(3)
	if len(drawn) != 3 {
		t.Fatalf("expected a fresh deck to be injected to satisfy the draw, got %d cards", len(drawn))
	}
	if m.drawPile.Remaining() != 52-3 {
		t.Errorf("expected 49 cards left after injecting a fresh deck and drawing 3, got %d", m.drawPile.Remaining())
	}
}
