package game

// DrawCard implements spec §4.4. A draw with an active penalty discharges
// the whole draw stack and always ends the turn; a voluntary draw (no
// penalty) only ends the turn immediately if the new card still leaves the
// player with nothing playable.
func (m *Match) DrawCard(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.findPlayer(playerID)
	cur := m.currentPlayer()
	if m.phase != PhasePlaying {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "match is not in the playing phase"))
	}
	if p == nil || p.Eliminated || p.Safe {
		return errResult(m.snapshotLocked(), newErr(ErrPlayerState, "player is eliminated or already safe"))
	}
	if cur == nil || cur.ID != playerID {
		return errResult(m.snapshotLocked(), newErr(ErrNotYourTurn, "it is not this player's turn"))
	}

	penalty := m.drawStack > 0
	target := 1
	if penalty {
		target = m.drawStack
	} else if m.drewThisTurn[playerID] {
		return errResult(m.snapshotLocked(), newErr(ErrAlreadyDrew, "player already drew voluntarily this turn"))
	}

	drawn := m.drawNCardsLocked(target)
	p.Hand = append(p.Hand, drawn...)

	if penalty {
		m.drawStack = 0
		m.clearPendingPassLocked(playerID)
		m.currentIndex = advanceIndex(m.currentIndex, m.direction, 1, len(m.activePlayers))
	} else if p.hasPlayableCard(m.effectiveTopSuit(), m.topDiscard().Rank) {
		id := playerID
		m.pendingPassPlayerID = &id
		m.drewThisTurn[playerID] = true
		m.armAutoPassTimerLocked(playerID)
	} else {
		m.clearPendingPassLocked(playerID)
		m.currentIndex = advanceIndex(m.currentIndex, m.direction, 1, len(m.activePlayers))
	}

	m.emit(EventStateUpdated, nil)
	return okResult(m.snapshotLocked())
}

// PassTurn ends a player's turn after a voluntary draw left them holding a
// playable card they choose not to play (spec §4.4 step 5; only valid while
// pendingPassPlayerID names the caller).
func (m *Match) PassTurn(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingPassPlayerID == nil || *m.pendingPassPlayerID != playerID {
		return errResult(m.snapshotLocked(), newErr(ErrNoPendingPass, "no pending pass for this player"))
	}
	m.clearPendingPassLocked(playerID)
	m.currentIndex = advanceIndex(m.currentIndex, m.direction, 1, len(m.activePlayers))
	m.emit(EventStateUpdated, nil)
	return okResult(m.snapshotLocked())
}

// drawNCardsLocked draws n cards, reshuffling the discard pile (keeping its
// top) and, if that still isn't enough, injecting a fresh 52-card deck
// (spec §4.1, §4.4 step 4). It may return fewer than n only in the
// practically-unreachable case where both piles are exhausted even after
// injection.
func (m *Match) drawNCardsLocked(n int) []Card {
	out := make([]Card, 0, n)
	for len(out) < n {
		c, ok := m.drawPile.Draw()
		if ok {
			out = append(out, c)
			continue
		}
		if len(m.discardPile) > 1 {
			m.discardPile = reshuffleDiscardInto(m.drawPile, m.discardPile, m.shuffler)
			continue
		}
		injectFreshDeck(m.drawPile, m.shuffler)
		c2, ok2 := m.drawPile.Draw()
		if !ok2 {
			break
		}
		out = append(out, c2)
	}
	return out
}

// clearPendingPassLocked releases the pending-pass slot and drew-this-turn
// marker for a player, and cancels any armed auto-pass timer. Called both
// when the player resolves their own pending pass and whenever their turn
// otherwise ends.
func (m *Match) clearPendingPassLocked(playerID string) {
	if m.pendingPassPlayerID != nil && *m.pendingPassPlayerID == playerID {
		m.pendingPassPlayerID = nil
	}
	delete(m.drewThisTurn, playerID)
	m.cancelAutoPassTimerLocked(playerID)
}

func (m *Match) armAutoPassTimerLocked(playerID string) {
	m.cancelAutoPassTimerLocked(playerID)
	matchID, id := m.id, playerID
	m.autoPassTimers[playerID] = afterFunc(m.cfg.AutoPassDeadline, func() {
		m.fireAutoPass(matchID, id)
	})
}

func (m *Match) cancelAutoPassTimerLocked(playerID string) {
	if t, ok := m.autoPassTimers[playerID]; ok {
		t.Stop()
		delete(m.autoPassTimers, playerID)
	}
}

// fireAutoPass is the timer's entry point back into the serialization
// point (spec §5). It re-checks everything under lock since the pending
// pass may already have been resolved by a real command.
func (m *Match) fireAutoPass(matchID, playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.id != matchID || m.phase != PhasePlaying {
		return
	}
	if m.pendingPassPlayerID == nil || *m.pendingPassPlayerID != playerID {
		return
	}
	p := m.findPlayer(playerID)
	if p != nil && p.hasPlayableCard(m.effectiveTopSuit(), m.topDiscard().Rank) {
		return
	}
	m.clearPendingPassLocked(playerID)
	m.currentIndex = advanceIndex(m.currentIndex, m.direction, 1, len(m.activePlayers))
	m.emit(EventStateUpdated, nil)
}
