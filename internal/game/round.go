package game

import "time"

// startRoundLocked deals a fresh round to every non-eliminated player (spec
// §4.5 "New round"). Called for round 1 out of preparation and for every
// subsequent round out of a round-end check; per spec §4.6 subsequent
// rounds never re-enter preparation.
func (m *Match) startRoundLocked(roundNumber int) {
	m.roundNumber = roundNumber
	m.direction = 1
	m.declaredSuit = nil
	m.drawStack = 0
	m.currentIndex = 0
	m.pendingPassPlayerID = nil
	m.drewThisTurn = make(map[string]bool)
	m.cancelAllAutoPassTimersLocked()

	m.activePlayers = nil
	for _, p := range m.players {
		if p.Eliminated {
			continue
		}
		p.Safe = false
		p.Hand = nil
		m.activePlayers = append(m.activePlayers, p)
	}

	deck := NewDeck()
	deck.Shuffle(m.shuffler)
	m.drawPile = deck

	for i := 0; i < m.cfg.HandSize; i++ {
		for _, p := range m.activePlayers {
			c, ok := m.drawPile.Draw()
			if !ok {
				break
			}
			p.Hand = append(p.Hand, c)
		}
	}

	top, ok := m.drawPile.Draw()
	if ok {
		m.discardPile = []Card{top}
	}

	m.phase = PhasePlaying
	m.emit(EventStateUpdated, nil)
}

// removeFromActiveLocked drops a player out of this round's rotation and
// repoints currentIndex at nextPlayerID — the seat the caller has already
// computed via the direction-aware advance (advanceIndex/finalAdvance) as
// rightfully next to act. This is deliberately not re-derived from the
// departing player's raw slice position: that position carries no
// information about direction or skip-chain length, both of which the
// caller's advance already accounts for.
func (m *Match) removeFromActiveLocked(playerID, nextPlayerID string) {
	idx := m.activeIndexOf(playerID)
	if idx < 0 {
		return
	}
	m.activePlayers = append(m.activePlayers[:idx], m.activePlayers[idx+1:]...)
	if len(m.activePlayers) == 0 {
		m.currentIndex = 0
		return
	}
	if next := m.activeIndexOf(nextPlayerID); next >= 0 {
		m.currentIndex = next
	} else if m.currentIndex >= len(m.activePlayers) {
		m.currentIndex = 0
	}
}

// onPlayerWentSafeLocked implements spec §4.3 step 7: the originator's hand
// emptied mid-resolution, so they leave the rotation entirely instead of
// receiving a turn-index update. nextPlayerID is the seat the caller
// computed as next to act, independent of where the departing player
// happened to sit in activePlayers.
func (m *Match) onPlayerWentSafeLocked(p *Player, nextPlayerID string) {
	p.Safe = true
	m.removeFromActiveLocked(p.ID, nextPlayerID)
	m.checkRoundEndLocked()
}

// checkRoundEndLocked implements spec §4.5 "Round end"/"Tournament end".
func (m *Match) checkRoundEndLocked() {
	if len(m.activePlayers) > 1 {
		return
	}
	var eliminated []string
	if len(m.activePlayers) == 1 {
		loser := m.activePlayers[0]
		loser.Eliminated = true
		eliminated = append(eliminated, loser.ID)
		m.activePlayers = nil
	}
	m.emit(EventRoundEnded, func(ev *Event) { ev.Eliminated = eliminated })
	m.checkTournamentEndLocked()
}

func (m *Match) checkTournamentEndLocked() {
	var remaining []*Player
	for _, p := range m.players {
		if !p.Eliminated {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) <= 1 {
		m.phase = PhaseFinished
		winner := ""
		if len(remaining) == 1 {
			winner = remaining[0].ID
		}
		m.emit(EventGameFinished, func(ev *Event) { ev.Winner = winner })
		return
	}
	m.startRoundLocked(m.roundNumber + 1)
}

// VotePlayAgain and UnvotePlayAgain track intent to start a fresh
// tournament once the current one has finished (spec §4.5).
func (m *Match) VotePlayAgain(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseFinished {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "tournament has not finished"))
	}
	m.playAgainVotes[playerID] = true
	m.emit(EventStateUpdated, nil)
	return okResult(m.snapshotLocked())
}

func (m *Match) UnvotePlayAgain(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseFinished {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "tournament has not finished"))
	}
	delete(m.playAgainVotes, playerID)
	m.emit(EventStateUpdated, nil)
	return okResult(m.snapshotLocked())
}

// ResetForNewGame rebuilds the roster from connected players and starts a
// fresh tournament, gated on creator consent and unanimous connected
// consent (spec §4.5).
func (m *Match) ResetForNewGame(requesterID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseFinished {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "tournament has not finished"))
	}
	if requesterID != m.creatorID {
		return errResult(m.snapshotLocked(), newErr(ErrNotCreator, "only the match creator may reset"))
	}
	if !m.playAgainVotes[m.creatorID] || !m.allConnectedVotedPlayAgain() {
		return errResult(m.snapshotLocked(), newErr(ErrNotAllVoted, "not all connected players voted to play again"))
	}

	var kept []*Player
	for _, p := range m.players {
		if p.Connected {
			kept = append(kept, p)
		}
	}
	if len(kept) < 2 {
		return errResult(m.snapshotLocked(), newErr(ErrInsufficientPlayers, "not enough connected players to restart"))
	}
	for _, p := range kept {
		p.Safe = false
		p.Eliminated = false
		p.Hand = nil
	}
	m.players = kept
	m.playAgainVotes = make(map[string]bool)
	m.startRoundLocked(1)
	return okResult(m.snapshotLocked())
}

func (m *Match) allConnectedVotedPlayAgain() bool {
	for _, p := range m.players {
		if p.Connected && !m.playAgainVotes[p.ID] {
			return false
		}
	}
	return true
}

// ForfeitDisconnected auto-forfeits the current player if they have been
// disconnected past grace (SPEC_FULL.md §6 "Disconnect grace + forfeit").
// Meant to be called periodically by the match manager's housekeeping
// ticker, one match at a time.
func (m *Match) ForfeitDisconnected(grace time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePlaying {
		return
	}
	cur := m.currentPlayer()
	if cur == nil || cur.Connected || cur.disconnectedAt == nil {
		return
	}
	if time.Since(*cur.disconnectedAt) < grace {
		return
	}

	// Conserve the forfeited hand by folding it back into the draw pile
	// rather than discarding the cards from play (spec §3 invariant 1).
	m.drawPile.addCards(cur.Hand)
	m.drawPile.Shuffle(m.shuffler)
	cur.Hand = nil

	forfeitedID := cur.ID
	next := advanceIndex(m.currentIndex, m.direction, 1, len(m.activePlayers))
	nextPlayerID := m.activePlayers[next].ID
	m.onPlayerWentSafeLocked(cur, nextPlayerID)
	m.emit(EventPlayerForfeited, func(ev *Event) { ev.PlayerID = forfeitedID })
}

func (m *Match) cancelAllAutoPassTimersLocked() {
	for id, t := range m.autoPassTimers {
		t.Stop()
		delete(m.autoPassTimers, id)
	}
}
