package game

// PlayCards validates and applies a (possibly stacked) play (spec §4.2,
// §4.3). Either the whole command commits or nothing changes — validation
// runs entirely before any mutation begins.
func (m *Match) PlayCards(playerID string, cards []Card, declaredSuit *Suit) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.findPlayer(playerID)
	cur := m.currentPlayer()

	in := ValidationInput{
		Phase:         m.phase,
		PlayerExists:  p != nil,
		IsCurrentTurn: p != nil && cur != nil && cur.ID == playerID,
		Cards:         cards,
		DeclaredSuit:  declaredSuit,
		DrawStack:     m.drawStack,
		ActivePlayers: len(m.activePlayers),
	}
	if p != nil {
		in.PlayerSafe = p.Safe
		in.PlayerElim = p.Eliminated
		in.Hand = p.Hand
	}
	if len(m.discardPile) > 0 {
		in.TopDiscard = m.topDiscard()
		in.EffectiveSuit = m.effectiveTopSuit()
	}

	if err := validatePlay(in); err != nil {
		return errResult(m.snapshotLocked(), err)
	}

	for _, c := range cards {
		p.removeCard(c)
		m.discardPile = append(m.discardPile, c)
	}

	res := resolveEffects(cards, declaredSuit, len(m.activePlayers), m.direction)
	m.drawStack += res.DrawAdd
	m.direction = res.NewDirection
	m.declaredSuit = res.NewDeclaredSuit
	m.clearPendingPassLocked(p.ID)

	if len(p.Hand) == 0 {
		// The resolved effect still names the seat next to act even though
		// the originator themselves is leaving the rotation: KeepsTurn can
		// never actually apply to a departing player, so it degenerates to
		// "one step past them" instead.
		steps := res.AdvanceSteps
		if res.KeepsTurn {
			steps = 1
		}
		next := advanceIndex(m.currentIndex, m.direction, steps, len(m.activePlayers))
		nextPlayerID := m.activePlayers[next].ID

		// When the round ends, onPlayerWentSafeLocked already emits
		// RoundEnded/GameFinished (or a fresh StateUpdated for the next round
		// via startRoundLocked); a trailing StateUpdated would bury whichever
		// of those was the real terminal event. When the round continues it
		// emits nothing, so the StateUpdated is sent here in that case only.
		round := m.roundNumber
		m.onPlayerWentSafeLocked(p, nextPlayerID)
		if m.phase == PhasePlaying && m.roundNumber == round {
			m.emit(EventStateUpdated, nil)
		}
	} else {
		if !res.KeepsTurn {
			m.currentIndex = advanceIndex(m.currentIndex, m.direction, res.AdvanceSteps, len(m.activePlayers))
		}
		m.emit(EventStateUpdated, nil)
	}

	return okResult(m.snapshotLocked())
}
