package game

import "testing"

func TestCheckRoundEndEliminatesLoneSurvivorOfTheRoundAndFinishesTournament(t *testing.T) {
	m, sink := newBareMatch("a", "b", "c")
	// c was eliminated in an earlier round; b already went safe this round,
	// leaving a as the sole active player still holding cards.
	m.players[2].Eliminated = true
	m.activePlayers = m.activePlayers[:1] // only a

	m.checkRoundEndLocked()

	if !m.players[0].Eliminated {
		t.Fatal("the lone active player must be eliminated as this round's loser")
	}

	ev := sink.last()
	if ev == nil {
		t.Fatal("expected an event to be emitted")
	}
	// Only b is left un-eliminated once a loses this round, so round end
	// cascades straight into tournament end.
	if ev.Kind != EventGameFinished {
		t.Fatalf("expected GameFinished once only one player remains, got %v", ev.Kind)
	}
	if ev.Winner != "b" {
		t.Errorf("expected b to win, got %q", ev.Winner)
	}
}

func TestCheckRoundEndStartsNextRoundWhenLoneLoserLeavesMultipleSurvivors(t *testing.T) {
	m, sink := newBareMatch("a", "b", "c")
	// b already went safe this round; a is the lone active loser, but both
	// a and c remain in the tournament (c was never eliminated).
	m.activePlayers = m.activePlayers[:1] // only a

	before := m.roundNumber
	m.checkRoundEndLocked()

	if !m.players[0].Eliminated {
		t.Fatal("the lone active player must be eliminated as this round's loser")
	}
	if sink.last() == nil || sink.last().Kind != EventStateUpdated {
		t.Fatalf("expected a fresh StateUpdated for the next round, got %v", sink.last())
	}
	if m.roundNumber != before+1 {
		t.Errorf("expected round to advance from %d, got %d", before, m.roundNumber)
	}
	if m.phase != PhasePlaying {
		t.Errorf("expected next round to start in PhasePlaying, got %v", m.phase)
	}
	if m.players[1].Eliminated || m.players[2].Eliminated {
		t.Error("b and c should remain in the tournament going into the next round")
	}
}

func TestCheckRoundEndIsANoOpWithMultipleActivePlayers(t *testing.T) {
	m, sink := newBareMatch("a", "b", "c")
	before := m.roundNumber

	m.checkRoundEndLocked()

	if sink.last() != nil {
		t.Fatalf("expected no event while more than one player is still active, got %v", sink.last())
	}
	if m.roundNumber != before {
		t.Error("round number must not change while the round is still in progress")
	}
}

func TestPlayAgainVoteGatesResetForNewGame(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.phase = PhaseFinished
	m.players[0].Eliminated = false
	m.players[1].Eliminated = true

	res := m.ResetForNewGame("a")
	if res.Err == nil || res.Err.Kind != ErrNotAllVoted {
		t.Fatalf("expected ErrNotAllVoted before any votes, got %v", res.Err)
	}

	m.VotePlayAgain("a")
	res = m.ResetForNewGame("a")
	if res.Err == nil || res.Err.Kind != ErrNotAllVoted {
		t.Fatalf("expected ErrNotAllVoted until b also votes, got %v", res.Err)
	}

	m.VotePlayAgain("b")
	res = m.ResetForNewGame("a")
	if res.Err != nil {
		t.Fatalf("expected reset to succeed once all connected players voted, got %v", res.Err)
	}
	if m.phase != PhasePlaying {
		t.Fatalf("expected a fresh tournament to start, got phase %v", m.phase)
	}
	for _, p := range m.players {
		if p.Eliminated {
			t.Errorf("player %s should be un-eliminated after a reset", p.ID)
		}
	}
}

func TestResetForNewGameRejectsNonCreator(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.phase = PhaseFinished
	m.VotePlayAgain("a")
	m.VotePlayAgain("b")

	res := m.ResetForNewGame("b")
	if res.Err == nil || res.Err.Kind != ErrNotCreator {
		t.Fatalf("expected ErrNotCreator, got %v", res.Err)
	}
}

func TestResetForNewGameRejectsTooFewConnectedPlayers(t *testing.T) {
	m, _ := newBareMatch("a", "b")
	m.phase = PhaseFinished
	m.players[1].Connected = false
	m.VotePlayAgain("a")

	res := m.ResetForNewGame("a")
	if res.Err == nil || res.Err.Kind != ErrInsufficientPlayers {
		t.Fatalf("expected ErrInsufficientPlayers with only one connected player, got %v", res.Err)
	}
}
