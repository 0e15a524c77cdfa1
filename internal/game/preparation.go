package game

// StartMatch transitions a waiting match into preparation and arms the
// countdown (spec §3 Lifecycle, §4.6).
func (m *Match) StartMatch() Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseWaiting {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "match already started"))
	}

	m.phase = PhasePreparation
	m.emit(EventPreparationStarted, nil)
	m.armPreparationTimer()
	return okResult(m.snapshotLocked())
}

func (m *Match) armPreparationTimer() {
	matchID := m.id
	m.prepTimer = afterFunc(m.cfg.PreparationCountdown, func() {
		m.firePreparationTimeout(matchID)
	})
}

// firePreparationTimeout is the timer's entry point back into the
// serialization point (spec §5: timer firings post through the same
// mailbox user commands do). It re-validates everything under lock because
// the phase may have already moved on by the time the timer fires.
func (m *Match) firePreparationTimeout(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.id != matchID || m.phase != PhasePreparation {
		return
	}
	m.transitionToPlayingLocked(PrepEndedByTimeout)
}

// VoteSkipPreparation records a connected player's vote to skip the
// countdown. Disconnected players never count toward quorum.
func (m *Match) VoteSkipPreparation(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePreparation {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "not in preparation"))
	}
	p := m.findPlayer(playerID)
	if p == nil || !p.Connected {
		return errResult(m.snapshotLocked(), newErr(ErrPlayerState, "player is not connected"))
	}

	m.prepVotes[playerID] = true
	if m.allConnectedVoted() {
		m.transitionToPlayingLocked(PrepEndedByVote)
		return okResult(m.snapshotLocked())
	}
	m.emit(EventPreparationUpdated, nil)
	return okResult(m.snapshotLocked())
}

// UnvoteSkipPreparation withdraws a prior skip vote.
func (m *Match) UnvoteSkipPreparation(playerID string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePreparation {
		return errResult(m.snapshotLocked(), newErr(ErrGamePhase, "not in preparation"))
	}
	delete(m.prepVotes, playerID)
	m.emit(EventPreparationUpdated, nil)
	return okResult(m.snapshotLocked())
}

func (m *Match) allConnectedVoted() bool {
	connected := 0
	for _, p := range m.players {
		if p.Connected {
			connected++
		}
	}
	if connected == 0 {
		return false
	}
	voted := 0
	for _, p := range m.players {
		if p.Connected && m.prepVotes[p.ID] {
			voted++
		}
	}
	return voted == connected
}

// transitionToPlayingLocked ends preparation and deals round one. Must be
// called with mu held. Subsequent rounds never re-enter preparation (spec
// §4.6: "re-entering preparation after a round is not supported").
func (m *Match) transitionToPlayingLocked(reason PreparationEndReason) {
	if m.prepTimer != nil {
		m.prepTimer.Stop()
		m.prepTimer = nil
	}
	m.emit(EventPreparationEnded, func(ev *Event) { ev.Reason = reason })
	m.phase = PhasePlaying
	m.startRoundLocked(1)
}
